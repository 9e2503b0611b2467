// Package di provides dependency injection factories for creating application components.
package di

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	stockadapters "warehouse_backend/internal/feature/stock/adapters"
	"warehouse_backend/internal/feature/stock/usecase"
	"warehouse_backend/internal/platform/cache"
	"warehouse_backend/internal/platform/config"
	"warehouse_backend/internal/platform/lock"
)

// NewKeyLocker creates the KeyLocker that serialises movements per item.
// If Redis is available, it returns a Redis-backed lock shared by every server process.
// Otherwise, it falls back to an in-process keyed lock.
func NewKeyLocker(rdb *redis.Client, cfg config.StockConfig) usecase.KeyLocker {
	if rdb != nil {
		return lock.NewRedisLocker(rdb, cfg.LockPrefix, cfg.LockTTL)
	}
	return lock.NewLocalLocker()
}

// NewStockRepository creates the GORM-backed StockRepository.
// If Redis is available, list queries are served through a read-through cache.
func NewStockRepository(rdb *redis.Client, db *gorm.DB, cfg config.StockConfig) usecase.StockRepository {
	repo := stockadapters.NewStockRepository(db)
	if rdb != nil {
		return cache.NewCachingStockRepository(rdb, cfg.CacheTTL, repo, cfg.CacheNamespace)
	}
	return repo
}

// NewStockUsecase wires the repository and locker into the movement service.
func NewStockUsecase(rdb *redis.Client, db *gorm.DB, cfg config.StockConfig) *usecase.StockUsecase {
	return usecase.NewStockUsecase(NewStockRepository(rdb, db, cfg), NewKeyLocker(rdb, cfg))
}
