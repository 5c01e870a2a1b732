package usecase

import "time"

// リモート同期の失敗時ポリシー。
// デフォルトはログだけ残して諦める（リトライ0回）。
type SyncPolicy struct {
	MaxRetries int
	Backoff    time.Duration
}

func DefaultSyncPolicy() SyncPolicy {
	return SyncPolicy{
		MaxRetries: 0,
		Backoff:    0,
	}
}
