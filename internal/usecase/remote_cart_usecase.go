package usecase

import (
	"app/internal/domain/model"
	repo "app/internal/repository"
	"context"
	"encoding/json"
	"errors"
	"net/http"
)

// RemoteCartUsecase は /cart/{identity} の業務ロジック（サーバー側）。
// スナップショット丸ごとの取得・置き換え・削除だけで、部分更新はない。
type RemoteCartUsecase struct {
	cartRepo repo.RemoteCartRepository
}

// DI
func NewRemoteCartUsecase(cartRepo repo.RemoteCartRepository) *RemoteCartUsecase {
	return &RemoteCartUsecase{cartRepo: cartRepo}
}

// OAS: CartResponse
type CartResponse struct {
	Items []model.CartItem `json:"items"`
}

// OAS: ReplaceCartRequest
type ReplaceCartInput struct {
	Items []model.CartItem
}

// GetCart はスナップショット取得（未保存なら空を返す。404にはしない）。
func (u *RemoteCartUsecase) GetCart(ctx context.Context, identity string) (CartResponse, error) {
	if identity == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid identity")
	}

	cart, err := u.cartRepo.FindByIdentity(ctx, identity)
	if errors.Is(err, repo.ErrNotFound) {
		return CartResponse{Items: []model.CartItem{}}, nil
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	var items []model.CartItem
	if err := json.Unmarshal(cart.Items, &items); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "broken snapshot")
	}
	if items == nil {
		items = []model.CartItem{}
	}

	return CartResponse{Items: items}, nil
}

// ReplaceCart はスナップショットの丸ごと置き換え。
func (u *RemoteCartUsecase) ReplaceCart(ctx context.Context, identity string, in ReplaceCartInput) (CartResponse, error) {
	if identity == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid identity")
	}

	items := in.Items
	if items == nil {
		items = []model.CartItem{}
	}

	//明細の最低限チェック（productId必須・数量1以上・重複なし）
	seen := map[string]bool{}
	for _, it := range items {
		if it.ProductID == "" {
			return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
		}
		if it.Quantity < 1 {
			return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
		}
		if seen[it.ProductID] {
			return CartResponse{}, NewHTTPError(http.StatusBadRequest, "duplicate product_id")
		}
		seen[it.ProductID] = true
	}

	raw, err := json.Marshal(items)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "encode error")
	}

	if err := u.cartRepo.Replace(ctx, identity, raw); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return CartResponse{Items: items}, nil
}

// DeleteCart はサーバー側スナップショットの削除（無くてもOK）。
func (u *RemoteCartUsecase) DeleteCart(ctx context.Context, identity string) error {
	if identity == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid identity")
	}

	if err := u.cartRepo.DeleteByIdentity(ctx, identity); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return nil
}
