package config

import (
	"fmt"
	"os"
	"strconv"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	PostgresUser     string // DBユーザー
	PostgresPassword string // DBパスワード
	PostgresDB       string // DB名
	PostgresHost     string // DBホスト（localhost）
	PostgresPort     int    // DBポート（5432）

	JWTSecret string // JWT署名シークレット

	GoEnv string // development/production
	FEURL string // フロントURL（CORSで使う）
}

// Loadは環境変数から設定を読む。開発はデフォルト値で動く。
func Load() (Config, error) {
	pgPort, err := atoiOr("POSTGRES_PORT", 5432)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port: getenvOr("PORT", "8080"),

		PostgresUser:     getenvOr("POSTGRES_USER", "postgres"),
		PostgresPassword: getenvOr("POSTGRES_PASSWORD", "postgres"),
		PostgresDB:       getenvOr("POSTGRES_DB", "clothing_store"),
		PostgresHost:     getenvOr("POSTGRES_HOST", "localhost"),
		PostgresPort:     pgPort,

		JWTSecret: os.Getenv("JWT_SECRET"),

		GoEnv: getenvOr("GO_ENV", "development"),
		FEURL: getenvOr("FE_URL", "http://localhost:3000"),
	}

	//本番はシークレット必須。開発だけ固定値で起動できる。
	if cfg.JWTSecret == "" {
		if cfg.GoEnv == "production" {
			return Config{}, fmt.Errorf("JWT_SECRET is required")
		}
		cfg.JWTSecret = "dev-secret-change-me"
	}

	return cfg, nil
}

func getenvOr(key string, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func atoiOr(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}
