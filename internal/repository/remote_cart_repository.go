package repository

import (
	"context"

	"app/internal/domain/model"
)

// サーバー側のカートスナップショット保存。
type RemoteCartRepository interface {
	FindByIdentity(ctx context.Context, identity string) (model.RemoteCart, error)
	// 同一identityは上書き（部分更新はしない）。
	Replace(ctx context.Context, identity string, items []byte) error
	DeleteByIdentity(ctx context.Context, identity string) error
}
