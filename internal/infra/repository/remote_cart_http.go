package repository

import (
	"app/internal/domain/model"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// RemoteCartServiceのHTTP実装。
// GET/POST/DELETE /cart/{identity} を叩く。
type RemoteCartHTTPClient struct {
	baseURL  string
	deviceID string
	http     *http.Client
}

// DI。deviceIDはログ突合せ用にヘッダで送る。
func NewRemoteCartHTTPClient(baseURL string, deviceID string) *RemoteCartHTTPClient {
	return &RemoteCartHTTPClient{
		baseURL:  strings.TrimRight(baseURL, "/"),
		deviceID: deviceID,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type remoteCartBody struct {
	Items []model.CartItem `json:"items"`
}

func (c *RemoteCartHTTPClient) Fetch(ctx context.Context, identity model.Identity) ([]model.CartItem, error) {
	req, err := c.newRequest(ctx, http.MethodGet, identity, nil)
	if err != nil {
		return nil, err
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	// 未保存は空扱い
	if res.StatusCode == http.StatusNotFound {
		return []model.CartItem{}, nil
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("remote cart fetch: status %d", res.StatusCode)
	}

	var body remoteCartBody
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, err
	}
	if body.Items == nil {
		return []model.CartItem{}, nil
	}

	return body.Items, nil
}

func (c *RemoteCartHTTPClient) Replace(ctx context.Context, identity model.Identity, items []model.CartItem) error {
	if items == nil {
		items = []model.CartItem{}
	}

	payload, err := json.Marshal(remoteCartBody{Items: items})
	if err != nil {
		return err
	}

	req, err := c.newRequest(ctx, http.MethodPost, identity, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	io.Copy(io.Discard, res.Body)

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("remote cart replace: status %d", res.StatusCode)
	}

	return nil
}

func (c *RemoteCartHTTPClient) Delete(ctx context.Context, identity model.Identity) error {
	req, err := c.newRequest(ctx, http.MethodDelete, identity, nil)
	if err != nil {
		return err
	}

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	io.Copy(io.Discard, res.Body)

	if res.StatusCode != http.StatusOK && res.StatusCode != http.StatusNoContent {
		return fmt.Errorf("remote cart delete: status %d", res.StatusCode)
	}

	return nil
}

func (c *RemoteCartHTTPClient) newRequest(ctx context.Context, method string, identity model.Identity, body io.Reader) (*http.Request, error) {
	endpoint := c.baseURL + "/cart/" + url.PathEscape(identity.ID)

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+identity.Token)
	if c.deviceID != "" {
		req.Header.Set("X-Device-ID", c.deviceID)
	}

	return req, nil
}
