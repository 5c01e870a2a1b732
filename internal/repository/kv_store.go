package repository

import "context"

// 端末ローカルの永続key-value。
// 同期的に読み書きでき、再起動を跨いで残る（端末スコープ）。
// キーが無い場合 Get は ErrNotFound を返す。
type DurableStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
