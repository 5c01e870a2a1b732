package usecase

import (
	"app/internal/domain/model"
	repo "app/internal/repository"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DurableStoreのキー
const (
	KeyCartState = "cart_state"
	KeyWishlist  = "wishlist_state"
	KeyIdentity  = "identity"
	KeyDeviceID  = "device_id"
)

// CartEngine はカート状態の持ち主。
// ミューテーションはメモリ上で同期的に反映→DurableStoreへ保存。
// ログイン中ならスナップショット丸ごとをリモートへ非同期push（結果は待たない）。
// 失敗はポリシーに従ってログ（またはリトライ）するだけで、呼び出し元には返さない。
type CartEngine struct {
	mu       sync.Mutex
	state    model.CartState
	identity *model.Identity
	deviceID string

	store  repo.DurableStore
	remote repo.RemoteCartService
	policy SyncPolicy
	log    *slog.Logger

	wg sync.WaitGroup
}

// NewCartEngine は前回の状態をDurableStoreから復元して起動する。
// identityマーカーがあれば Authenticated のまま復元（起動時のリモートpullはしない）。
func NewCartEngine(
	ctx context.Context,
	store repo.DurableStore,
	remote repo.RemoteCartService,
	policy SyncPolicy,
	log *slog.Logger,
) (*CartEngine, error) {
	e := &CartEngine{
		store:  store,
		remote: remote,
		policy: policy,
		log:    log,
	}

	//カート本体
	raw, err := store.Get(ctx, KeyCartState)
	if err == nil {
		if err := json.Unmarshal(raw, &e.state); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	//identityマーカー（明示的なサインインまでpullはしない）
	raw, err = store.Get(ctx, KeyIdentity)
	if err == nil {
		var id model.Identity
		if err := json.Unmarshal(raw, &id); err != nil {
			return nil, err
		}
		e.identity = &id
		e.state.OwnerIdentity = id.ID
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	//端末ID（初回に採番して固定）
	raw, err = store.Get(ctx, KeyDeviceID)
	if err == nil {
		e.deviceID = string(raw)
	} else if errors.Is(err, repo.ErrNotFound) {
		e.deviceID = uuid.NewString()
		if err := store.Set(ctx, KeyDeviceID, []byte(e.deviceID)); err != nil {
			return nil, err
		}
	} else {
		return nil, err
	}

	return e, nil
}

type AddItemInput struct {
	ProductID        string
	Quantity         int64
	UnitPrice        int64
	SelectedVariants map[string]string
}

// AddItem は同一商品なら数量を加算、無ければ末尾に追加する。
// Quantityが0以下でも弾かず、加算の結果0以下になった明細は削除する。
func (e *CartEngine) AddItem(ctx context.Context, in AddItemInput) {
	e.mu.Lock()

	if i := e.state.IndexOf(in.ProductID); i >= 0 {
		newQty := e.state.Items[i].Quantity + in.Quantity
		if newQty <= 0 {
			e.state.Items = append(e.state.Items[:i], e.state.Items[i+1:]...)
		} else {
			e.state.Items[i].Quantity = newQty
		}
	} else if in.Quantity > 0 && in.ProductID != "" {
		e.state.Items = append(e.state.Items, model.CartItem{
			ProductID:        in.ProductID,
			Quantity:         in.Quantity,
			UnitPrice:        in.UnitPrice,
			SelectedVariants: in.SelectedVariants,
		})
	}

	e.afterMutationLocked(ctx)
}

// RemoveItem は明細を消す。無ければ何もしない。
func (e *CartEngine) RemoveItem(ctx context.Context, productID string) {
	e.mu.Lock()

	if i := e.state.IndexOf(productID); i >= 0 {
		e.state.Items = append(e.state.Items[:i], e.state.Items[i+1:]...)
	}

	e.afterMutationLocked(ctx)
}

// SetQuantity は数量をそのまま置き換える。
// 0以下なら削除。明細が無い場合は作らない（価格もバリアントも分からないため）。
func (e *CartEngine) SetQuantity(ctx context.Context, productID string, quantity int64) {
	e.mu.Lock()

	if i := e.state.IndexOf(productID); i >= 0 {
		if quantity <= 0 {
			e.state.Items = append(e.state.Items[:i], e.state.Items[i+1:]...)
		} else {
			e.state.Items[i].Quantity = quantity
		}
	}

	e.afterMutationLocked(ctx)
}

// Clear は全明細を消す。ログイン中ならサーバー側のスナップショットも消す。
func (e *CartEngine) Clear(ctx context.Context) {
	e.mu.Lock()

	e.state.Items = nil
	e.persistLocked(ctx)
	ident := e.identity

	e.mu.Unlock()

	if ident != nil {
		e.scheduleRemoteDelete(*ident)
	}
}

// OnSignIn はサインインイベントの入口。
// identityマーカーを保存し、リモートのスナップショットでローカルを丸ごと置き換える。
// pullに失敗したらログだけ残してローカルをそのまま使う（マージはしない）。
func (e *CartEngine) OnSignIn(ctx context.Context, identity model.Identity) {
	e.mu.Lock()
	e.identity = &identity
	e.state.OwnerIdentity = identity.ID
	e.mu.Unlock()

	raw, err := json.Marshal(identity)
	if err == nil {
		err = e.store.Set(ctx, KeyIdentity, raw)
	}
	if err != nil {
		e.log.Warn("identity marker write failed",
			"identity", identity.ID,
			"device_id", e.deviceID,
			"error", err,
		)
	}

	items, err := e.remote.Fetch(ctx, identity)
	if err != nil {
		e.log.Warn("cart pull failed",
			"identity", identity.ID,
			"device_id", e.deviceID,
			"error", err,
		)
		e.mu.Lock()
		e.persistLocked(ctx)
		e.mu.Unlock()
		return
	}

	//サーバーが正。未push分のローカル変更は破棄される
	e.mu.Lock()
	e.state.Items = items
	e.persistLocked(ctx)
	e.mu.Unlock()
}

// OnSignOut はマーカーを消してpushを止める。カートの中身はそのまま残す。
func (e *CartEngine) OnSignOut(ctx context.Context) {
	e.mu.Lock()
	e.identity = nil
	e.state.OwnerIdentity = ""
	e.persistLocked(ctx)
	e.mu.Unlock()

	if err := e.store.Delete(ctx, KeyIdentity); err != nil {
		e.log.Warn("identity marker delete failed",
			"device_id", e.deviceID,
			"error", err,
		)
	}
}

// Items は明細のコピーを返す。
func (e *CartEngine) Items() []model.CartItem {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.CopyItems()
}

// State は集計用のスナップショットを返す。
func (e *CartEngine) State() model.CartState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return model.CartState{
		Items:         e.state.CopyItems(),
		OwnerIdentity: e.state.OwnerIdentity,
	}
}

// Authenticated はログイン状態かどうか。
func (e *CartEngine) Authenticated() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.identity != nil
}

// DeviceID は初回起動時に採番した端末ID。
func (e *CartEngine) DeviceID() string {
	return e.deviceID
}

// Close は飛ばし済みのpushが終わるのを待つ（ctxで打ち切り）。
func (e *CartEngine) Close(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ミューテーション後の共通処理。ロックを持ったまま呼び、中で解放する。
// スナップショットはロック中に取るので、後続のミューテーションと混ざらない。
func (e *CartEngine) afterMutationLocked(ctx context.Context) {
	e.persistLocked(ctx)
	ident := e.identity
	var snapshot []model.CartItem
	if ident != nil {
		snapshot = e.state.CopyItems()
	}

	e.mu.Unlock()

	if ident != nil {
		e.schedulePush(*ident, snapshot)
	}
}

// DurableStoreへ全量保存。失敗してもメモリ上の状態は生きたまま、ログだけ残す。
func (e *CartEngine) persistLocked(ctx context.Context) {
	raw, err := json.Marshal(e.state)
	if err == nil {
		err = e.store.Set(ctx, KeyCartState, raw)
	}
	if err != nil {
		e.log.Warn("cart state write failed",
			"device_id", e.deviceID,
			"error", err,
		)
	}
}

// スナップショットを非同期push（fire-and-forget）。
func (e *CartEngine) schedulePush(identity model.Identity, items []model.CartItem) {
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		e.runRemote(identity, "push", func(ctx context.Context) error {
			return e.remote.Replace(ctx, identity, items)
		})
	}()
}

// サーバー側スナップショットの削除を非同期で投げる。
func (e *CartEngine) scheduleRemoteDelete(identity model.Identity) {
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		e.runRemote(identity, "delete", func(ctx context.Context) error {
			return e.remote.Delete(ctx, identity)
		})
	}()
}

// ポリシーに従ってリモート呼び出しを実行。
// 使い切ったら諦めてログだけ残す（呼び出し元には何も返さない）。
func (e *CartEngine) runRemote(identity model.Identity, op string, call func(ctx context.Context) error) {
	for attempt := 0; ; attempt++ {
		err := call(context.Background())
		if err == nil {
			return
		}

		e.log.Warn("cart sync failed",
			"op", op,
			"identity", identity.ID,
			"device_id", e.deviceID,
			"attempt", attempt,
			"error", err,
		)

		if attempt >= e.policy.MaxRetries {
			return
		}
		time.Sleep(e.policy.Backoff)
	}
}
