package repository

import (
	"app/internal/domain/model"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

var testIdentity = model.Identity{ID: "user-1", Token: "test-token"}

// メソッド・パス・ヘッダを検証してから応答するテストサーバー
func newCartServer(t *testing.T, wantMethod string, status int, body string) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, wantMethod, r.Method)
		assert.Equal(t, "/cart/user-1", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "device-abc", r.Header.Get("X-Device-ID"))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
}

func TestRemoteCartHTTPClient_Fetch(t *testing.T) {
	srv := newCartServer(t, http.MethodGet, http.StatusOK,
		`{"items":[{"productId":"sku-1","quantity":2,"unitPrice":100,"selectedVariants":{"color":"red"}}]}`)
	defer srv.Close()

	c := NewRemoteCartHTTPClient(srv.URL, "device-abc")

	items, err := c.Fetch(context.Background(), testIdentity)
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, "sku-1", items[0].ProductID)
	assert.Equal(t, int64(2), items[0].Quantity)
	assert.Equal(t, map[string]string{"color": "red"}, items[0].SelectedVariants)
}

// サーバーにまだ何も無い => 空スライス（エラーではない）
func TestRemoteCartHTTPClient_Fetch_EmptyBody(t *testing.T) {
	srv := newCartServer(t, http.MethodGet, http.StatusOK, `{"items":[]}`)
	defer srv.Close()

	c := NewRemoteCartHTTPClient(srv.URL, "device-abc")

	items, err := c.Fetch(context.Background(), testIdentity)
	assert.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestRemoteCartHTTPClient_Fetch_NotFoundIsEmpty(t *testing.T) {
	srv := newCartServer(t, http.MethodGet, http.StatusNotFound, `{"error":"not found"}`)
	defer srv.Close()

	c := NewRemoteCartHTTPClient(srv.URL, "device-abc")

	items, err := c.Fetch(context.Background(), testIdentity)
	assert.NoError(t, err)
	assert.Empty(t, items)
}

func TestRemoteCartHTTPClient_Fetch_ServerError(t *testing.T) {
	srv := newCartServer(t, http.MethodGet, http.StatusInternalServerError, `{"error":"boom"}`)
	defer srv.Close()

	c := NewRemoteCartHTTPClient(srv.URL, "device-abc")

	_, err := c.Fetch(context.Background(), testIdentity)
	assert.Error(t, err)
}

// Replaceは {items: [...]} を全量POSTする
func TestRemoteCartHTTPClient_Replace(t *testing.T) {
	var got remoteCartBody
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/cart/user-1", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"items":[]}`))
	}))
	defer srv.Close()

	c := NewRemoteCartHTTPClient(srv.URL, "device-abc")

	err := c.Replace(context.Background(), testIdentity, []model.CartItem{
		{ProductID: "sku-1", Quantity: 3, UnitPrice: 500},
	})
	assert.NoError(t, err)
	assert.Len(t, got.Items, 1)
	assert.Equal(t, "sku-1", got.Items[0].ProductID)
}

// nilでも空の {items: []} を送る
func TestRemoteCartHTTPClient_Replace_NilItems(t *testing.T) {
	var raw []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewRemoteCartHTTPClient(srv.URL, "device-abc")

	assert.NoError(t, c.Replace(context.Background(), testIdentity, nil))
	assert.JSONEq(t, `{"items":[]}`, string(raw))
}

func TestRemoteCartHTTPClient_Delete(t *testing.T) {
	srv := newCartServer(t, http.MethodDelete, http.StatusOK, `{"message":"deleted"}`)
	defer srv.Close()

	c := NewRemoteCartHTTPClient(srv.URL, "device-abc")

	assert.NoError(t, c.Delete(context.Background(), testIdentity))
}

func TestRemoteCartHTTPClient_Delete_ServerError(t *testing.T) {
	srv := newCartServer(t, http.MethodDelete, http.StatusBadGateway, `{"error":"bad"}`)
	defer srv.Close()

	c := NewRemoteCartHTTPClient(srv.URL, "device-abc")

	assert.Error(t, c.Delete(context.Background(), testIdentity))
}
