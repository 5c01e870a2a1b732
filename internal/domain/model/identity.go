package model

// ログイン中ユーザーの目印。
// DurableStoreに保存して、再起動後も Authenticated を復元する。
// Token はRemoteCartServiceへのBearer資格情報。
type Identity struct {
	ID    string `json:"id"`
	Token string `json:"token"`
}
