package usecase

import (
	"app/internal/domain/model"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newWishlist(t *testing.T, store *EngFakeStore) *WishlistEngine {
	t.Helper()

	e, err := NewWishlistEngine(context.Background(), store, testLogger())
	if err != nil {
		t.Fatalf("NewWishlistEngine failed: %v", err)
	}
	return e
}

// 同じ商品を2回追加 => 1件だけ（set）
func TestWishlistEngine_AddIsIdempotent(t *testing.T) {
	e := newWishlist(t, NewEngFakeStore())
	ctx := context.Background()

	p := model.ProductSnapshot{ProductID: "sku-1", Name: "Tシャツ", UnitPrice: 2000}
	e.Add(ctx, p)
	e.Add(ctx, p)

	assert.Len(t, e.Items(), 1)
}

// 無い商品のRemoveはエラーにならない
func TestWishlistEngine_RemoveAbsentIsNoop(t *testing.T) {
	e := newWishlist(t, NewEngFakeStore())

	e.Remove(context.Background(), "sku-404")

	assert.Empty(t, e.Items())
}

// ミューテーションごとに保存され、別エンジンで復元できる
func TestWishlistEngine_PersistsAndRestores(t *testing.T) {
	store := NewEngFakeStore()
	ctx := context.Background()

	e1 := newWishlist(t, store)
	e1.Add(ctx, model.ProductSnapshot{ProductID: "sku-1", Name: "Tシャツ", UnitPrice: 2000})
	e1.Add(ctx, model.ProductSnapshot{ProductID: "sku-2", Name: "パーカー", UnitPrice: 4500})
	e1.Remove(ctx, "sku-1")

	e2 := newWishlist(t, store)
	items := e2.Items()
	assert.Len(t, items, 1)
	assert.Equal(t, "sku-2", items[0].ProductID)
}

// カートと違ってウィッシュリストはリモートを持たない（ローカルだけ）
func TestWishlistEngine_HasNoRemoteSync(t *testing.T) {
	//store以外の依存を受け取らないことが仕様。コンストラクタのシグネチャで担保される。
	store := NewEngFakeStore()
	e := newWishlist(t, store)
	e.Add(context.Background(), model.ProductSnapshot{ProductID: "sku-1"})

	_, err := store.Get(context.Background(), KeyWishlist)
	assert.NoError(t, err)
}
