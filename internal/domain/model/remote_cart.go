package model

import "time"

// サーバー側に保存するカートスナップショット。
// 1 identity につき1行。Items はJSONで丸ごと持つ（差分は持たない）。
type RemoteCart struct {
	Identity  string    `gorm:"primaryKey;type:varchar(255)" json:"identity"`
	Items     []byte    `gorm:"not null" json:"items"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
