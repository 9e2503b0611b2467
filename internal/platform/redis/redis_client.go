// Package redis はRedisクライアントの生成を提供します。
package redis

import (
	"context"
	"log/slog"
	"net"
	"os"

	"github.com/redis/go-redis/v9"
)

// Config はRedis接続設定です。
type Config struct {
	Host     string
	Port     string
	Password string
}

// LoadConfigFromEnv はREDIS_HOST/REDIS_PORT/REDIS_PASSWORDを読み込みます。
func LoadConfigFromEnv() Config {
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}
	return Config{
		Host:     os.Getenv("REDIS_HOST"),
		Port:     port,
		Password: os.Getenv("REDIS_PASSWORD"),
	}
}

// Enabled はRedisが設定されているかを返します。
// 未設定の場合、ロックはプロセス内実装、キャッシュは無効になります。
func (c Config) Enabled() bool {
	return c.Host != ""
}

// Addr は host:port 形式のアドレスです。
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// NewRedisClient はクライアントを生成し、Pingで接続を確認します。
func NewRedisClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	addr := cfg.Addr()
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       0,
	})

	// 接続確認
	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Error("Redis connection failed", "address", addr, "error", err)
		_ = rdb.Close()
		return nil, err
	}

	slog.Info("Redis connection successful", "address", addr)
	return rdb, nil
}
