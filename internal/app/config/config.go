// Package config は環境変数（と任意の.envファイル）からアプリケーション設定を読み込みます。
package config

import (
	"errors"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"taskverse_backend/internal/platform/db"
	"taskverse_backend/internal/platform/redis"
)

const (
	EnvDev  = "dev"
	EnvProd = "prod"

	// devJWTSecret は開発環境でJWT_SECRET未設定時に使う固定値です。本番では使用できません。
	devJWTSecret = "taskverse-dev-secret-change-me"
)

// ErrMissingJWTSecret は本番環境でJWT_SECRETが設定されていない場合に返されます。
var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set in production")

// Config はアプリケーション全体の設定です。
type Config struct {
	Env             string
	Port            string
	JWTSecret       string
	JWTTTL          time.Duration
	CORSOrigins     []string
	ShutdownTimeout time.Duration
	CacheTTL        time.Duration

	DB    db.Config
	Redis redis.Config
}

// IsProduction は本番環境かどうかを返します。
func (c *Config) IsProduction() bool {
	return c.Env == EnvProd
}

// Load は.envファイルを読み込み（存在しなくてもよい）、環境変数から設定を構築します。
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:             normalizeEnv(os.Getenv("APP_ENV")),
		Port:            getEnv("PORT", "8080"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		JWTTTL:          getDurationEnv("JWT_TTL", 24*time.Hour),
		CORSOrigins:     getSliceEnv("CORS_ORIGINS", []string{"http://localhost:5173"}),
		ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", 10*time.Second),
		CacheTTL:        getDurationEnv("CACHE_TTL", 5*time.Minute),
		DB:              db.LoadConfigFromEnv(),
		Redis:           redis.LoadConfigFromEnv(),
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			return nil, ErrMissingJWTSecret
		}
		slog.Warn("JWT_SECRET is not set. Using an insecure development secret.")
		cfg.JWTSecret = devJWTSecret
	}

	return cfg, nil
}

// normalizeEnv はAPP_ENVの表記揺れ（大文字、"production"、"development"）をEnvProd/EnvDevに揃えます。
// 未知の値は本番扱いにし、開発用シークレットが使われないようにします。
func normalizeEnv(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case EnvProd, "production":
		return EnvProd
	case "", EnvDev, "development":
		return EnvDev
	default:
		slog.Warn("unknown APP_ENV, treating as prod", "value", value)
		return EnvProd
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDurationEnv は "90s" や "24h" 形式の値を読み込みます。不正な値はデフォルトに戻します。
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		slog.Warn("ignoring invalid duration", "key", key, "value", value)
		return defaultValue
	}
	return d
}

func getSliceEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return defaultValue
	}
	return result
}
