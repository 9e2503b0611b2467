// Package config はアプリケーション設定を環境変数（と任意の.envファイル）から読み込みます。
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config はアプリケーション全体の設定です。
// DBとRedisの接続設定はそれぞれplatform/db, platform/redisが読み込みます。
type Config struct {
	Server ServerConfig
	JWT    JWTConfig
	Stock  StockConfig
	Log    LogConfig
}

// ServerConfig はHTTPサーバーの設定です。
type ServerConfig struct {
	Port string
	// CORSOrigins が空の場合CORSミドルウェアは登録しません。
	CORSOrigins []string
}

// JWTConfig はトークン発行の設定です。
type JWTConfig struct {
	Secret     string
	Expiration time.Duration
}

// StockConfig は在庫APIのキャッシュとロックの設定です。
type StockConfig struct {
	CacheTTL       time.Duration
	CacheNamespace string
	LockTTL        time.Duration
	LockPrefix     string
}

// LogConfig はslogの設定です。
type LogConfig struct {
	Level slog.Level
}

// Load は環境変数を読み込みConfigを生成します。
// envFileが空の場合はカレントディレクトリの.envを試し、存在しなければ無視します。
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		_ = godotenv.Load()
	}

	jwtExp, err := durationEnv("JWT_EXPIRATION", time.Hour)
	if err != nil {
		return nil, err
	}
	cacheTTL, err := durationEnv("STOCK_CACHE_TTL", 5*time.Minute)
	if err != nil {
		return nil, err
	}
	lockTTL, err := durationEnv("STOCK_LOCK_TTL", 10*time.Second)
	if err != nil {
		return nil, err
	}
	level, err := parseLevel(getenvWithDefault("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:        getenvWithDefault("APP_PORT", "8080"),
			CORSOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		},
		JWT: JWTConfig{
			Secret:     os.Getenv("JWT_SECRET"),
			Expiration: jwtExp,
		},
		Stock: StockConfig{
			CacheTTL:       cacheTTL,
			CacheNamespace: getenvWithDefault("STOCK_CACHE_NAMESPACE", "stock"),
			LockTTL:        lockTTL,
			LockPrefix:     getenvWithDefault("STOCK_LOCK_PREFIX", "stocklock"),
		},
		Log: LogConfig{Level: level},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate は必須項目が設定されていることを確認します。
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET must be provided")
	}
	if c.JWT.Expiration <= 0 {
		return errors.New("JWT_EXPIRATION must be positive")
	}
	if c.Stock.LockTTL <= 0 {
		return errors.New("STOCK_LOCK_TTL must be positive")
	}
	return nil
}

// Addr は gin.Engine.Run に渡すリッスンアドレスです。
func (c *Config) Addr() string {
	return ":" + c.Server.Port
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q: %w", s, err)
	}
	return level, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
