package usecase

import (
	"app/internal/domain/model"
	repo "app/internal/repository"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
)

// WishlistEngine はウィッシュリストの持ち主。
// カートと違ってローカルだけの永続化で、リモート同期は持たない（意図した非対称）。
type WishlistEngine struct {
	mu    sync.Mutex
	state model.WishlistState

	store repo.DurableStore
	log   *slog.Logger
}

// NewWishlistEngine は前回の状態をDurableStoreから復元して起動する。
func NewWishlistEngine(ctx context.Context, store repo.DurableStore, log *slog.Logger) (*WishlistEngine, error) {
	e := &WishlistEngine{
		store: store,
		log:   log,
	}

	raw, err := store.Get(ctx, KeyWishlist)
	if err == nil {
		if err := json.Unmarshal(raw, &e.state); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	return e, nil
}

// Add はset追加。既にあれば何もしない（冪等）。
func (e *WishlistEngine) Add(ctx context.Context, product model.ProductSnapshot) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if product.ProductID == "" || e.state.Contains(product.ProductID) {
		return
	}

	e.state.Items = append(e.state.Items, product)
	e.persistLocked(ctx)
}

// Remove は削除。無ければ何もしない。
func (e *WishlistEngine) Remove(ctx context.Context, productID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i, it := range e.state.Items {
		if it.ProductID == productID {
			e.state.Items = append(e.state.Items[:i], e.state.Items[i+1:]...)
			e.persistLocked(ctx)
			return
		}
	}
}

// Items は中身のコピーを返す。
func (e *WishlistEngine) Items() []model.ProductSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	items := make([]model.ProductSnapshot, len(e.state.Items))
	copy(items, e.state.Items)
	return items
}

func (e *WishlistEngine) persistLocked(ctx context.Context) {
	raw, err := json.Marshal(e.state)
	if err == nil {
		err = e.store.Set(ctx, KeyWishlist, raw)
	}
	if err != nil {
		e.log.Warn("wishlist state write failed", "error", err)
	}
}
