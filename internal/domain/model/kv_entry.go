package model

import "time"

// 端末ローカルのkey-value1行。
// SQLiteファイルに保存され、リロード（再起動）を跨いで生き残る。
type KVEntry struct {
	Key       string    `gorm:"primaryKey;type:varchar(100)" json:"key"`
	Value     []byte    `gorm:"not null" json:"value"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
