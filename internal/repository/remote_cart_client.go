package repository

import (
	"context"

	"app/internal/domain/model"
)

// バックエンドのカートストアを呼ぶクライアント側の口。
// サーバーが正で、常にスナップショット丸ごと（差分なし）。
type RemoteCartService interface {
	// identityのカートを取得（未保存なら空スライス）。
	Fetch(ctx context.Context, identity model.Identity) ([]model.CartItem, error)
	// identityのカートを丸ごと置き換える。
	Replace(ctx context.Context, identity model.Identity, items []model.CartItem) error
	// identityのカートをサーバーから消す。
	Delete(ctx context.Context, identity model.Identity) error
}
