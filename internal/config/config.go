package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Configはサーバー（リモートカートAPI）の設定
type Config struct {
	Port      string // サーバーポート（8080）
	JWTSecret string // JWT署名シークレット
	GoEnv     string // dev/prod
	LogLevel  string // debug/info/warn/error
}

// Loadは環境変数から読む。必須が無ければエラー。
func Load() (Config, error) {
	cfg := Config{
		Port:      os.Getenv("PORT"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		GoEnv:     os.Getenv("GO_ENV"),
		LogLevel:  os.Getenv("LOG_LEVEL"),
	}

	//必須チェック
	if cfg.Port == "" {
		return Config{}, fmt.Errorf("PORT is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.GoEnv == "" {
		return Config{}, fmt.Errorf("GO_ENV is required")
	}

	return cfg, nil
}

// EngineConfigはクライアント側エンジンの設定。
// 組み込み先アプリが環境変数を置かなくても動くよう、全部デフォルトあり。
type EngineConfig struct {
	CartAPIURL     string        // リモートカートAPIのベースURL
	LocalDBPath    string        // 端末ローカルSQLiteのパス
	SyncMaxRetries int           // push失敗時の再送回数（0=ログのみ）
	SyncBackoff    time.Duration // 再送間隔
}

// LoadEngineは環境変数から読む（無ければデフォルト）。
func LoadEngine() (EngineConfig, error) {
	cfg := EngineConfig{
		CartAPIURL:     getenv("CART_API_URL", "http://localhost:8080"),
		LocalDBPath:    getenv("CART_DB_PATH", "cart.db"),
		SyncMaxRetries: 0,
		SyncBackoff:    500 * time.Millisecond,
	}

	if v := os.Getenv("SYNC_MAX_RETRIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return EngineConfig{}, fmt.Errorf("SYNC_MAX_RETRIES must be a non-negative number")
		}
		cfg.SyncMaxRetries = n
	}

	if v := os.Getenv("SYNC_BACKOFF_MS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return EngineConfig{}, fmt.Errorf("SYNC_BACKOFF_MS must be a non-negative number")
		}
		cfg.SyncBackoff = time.Duration(n) * time.Millisecond
	}

	return cfg, nil
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
