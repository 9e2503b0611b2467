package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"warehouse_backend/internal/app/di"
	"warehouse_backend/internal/app/router"
	authhandler "warehouse_backend/internal/feature/auth/transport/handler"
	stockhandler "warehouse_backend/internal/feature/stock/transport/handler"
	"warehouse_backend/internal/platform/config"
	"warehouse_backend/internal/platform/db"
	"warehouse_backend/internal/platform/http/handler"
	infraredis "warehouse_backend/internal/platform/redis"
)

func main() {
	// 設定（.envがあれば読み込む）
	cfg, err := config.Load("")
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Log.Level})))

	// db
	gdb, err := db.OpenDB(db.LoadConfigFromEnv())
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	// Redis（未設定または接続不可の場合はプロセス内ロック・キャッシュなしで動作）
	var rdb *redisv9.Client
	if rcfg := infraredis.LoadConfigFromEnv(); rcfg.Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		tmp, err := infraredis.NewRedisClient(ctx, rcfg)
		cancel()
		if err != nil {
			slog.Warn("Redis unavailable. Running with in-process locks and without cache.")
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
		}
	}

	// ヘルスチェック対象
	sqlDB, err := gdb.DB()
	if err != nil {
		slog.Error("failed to get sql.DB", "error", err)
		os.Exit(1)
	}
	checks := []handler.Check{{Name: "database", Ping: sqlDB.PingContext}}
	if rdb != nil {
		checks = append(checks, handler.Check{Name: "redis", Ping: func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}})
	}

	// Usecase
	authUC := di.NewAuthUsecase(gdb, cfg.JWT)
	stockUC := di.NewStockUsecase(rdb, gdb, cfg.Stock)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	stockH := stockhandler.NewStockHandler(stockUC)

	// ルータ生成
	r := router.NewRouter(authH, stockH, router.Options{
		JWTSecret:    cfg.JWT.Secret,
		CORSOrigins:  cfg.Server.CORSOrigins,
		HealthChecks: checks,
	})

	slog.Info("server starting", "addr", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
