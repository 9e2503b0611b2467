// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"warehouse_backend/internal/feature/stock/domain/entity"
	"warehouse_backend/internal/feature/stock/usecase"
)

const invalidateTimeout = time.Second

// setIfGenerationScript writes the list only while the generation still
// matches the value read before the database query.
var setIfGenerationScript = redis.NewScript(`
local gen = redis.call('GET', KEYS[1]) or '0'
if gen ~= ARGV[1] then
	return 0
end
redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3])
return 1
`)

// CachingStockRepository decorates a StockRepository with Redis caching of
// the two list queries. Any committed transaction invalidates both entries.
type CachingStockRepository struct {
	inner     usecase.StockRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.StockRepository = (*CachingStockRepository)(nil)

// NewCachingStockRepository decorates a StockRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "stock".
func NewCachingStockRepository(rdb *redis.Client, ttl time.Duration, inner usecase.StockRepository, namespace string) *CachingStockRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "stock"
	}
	return &CachingStockRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: safe(namespace),
	}
}

// ListItems returns the ledger, checking the cache first.
func (c *CachingStockRepository) ListItems(ctx context.Context) ([]entity.StockItem, error) {
	return readThrough(ctx, c, c.itemsKey(), c.inner.ListItems)
}

// ListHistory returns the history log, checking the cache first.
func (c *CachingStockRepository) ListHistory(ctx context.Context) ([]entity.HistoryEntry, error) {
	return readThrough(ctx, c, c.historyKey(), c.inner.ListHistory)
}

// RunInTx delegates to the wrapped repository and invalidates cached lists
// once the transaction has committed.
func (c *CachingStockRepository) RunInTx(ctx context.Context, fn func(usecase.ItemLedger, usecase.HistoryLog) error) error {
	if err := c.inner.RunInTx(ctx, fn); err != nil {
		return err
	}
	if c.rdb == nil {
		return nil
	}
	c.invalidate(ctx)
	return nil
}

// invalidate bumps the generation and drops both lists in one MULTI.
// It runs detached from ctx so a client that disconnects after the commit
// cannot leave the old lists cached.
func (c *CachingStockRepository) invalidate(ctx context.Context) {
	ictx, cancel := context.WithTimeout(context.WithoutCancel(ctx), invalidateTimeout)
	defer cancel()
	_, err := c.rdb.TxPipelined(ictx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ictx, c.genKey())
		pipe.Del(ictx, c.itemsKey(), c.historyKey())
		return nil
	})
	if err != nil {
		// 失敗時はTTL経過まで古い一覧が残る
		slog.Warn("stock cache invalidation failed", "namespace", c.namespace, "error", err)
	}
}

func (c *CachingStockRepository) itemsKey() string {
	return fmt.Sprintf("%s:items", c.namespace)
}

func (c *CachingStockRepository) historyKey() string {
	return fmt.Sprintf("%s:history", c.namespace)
}

func (c *CachingStockRepository) genKey() string {
	return fmt.Sprintf("%s:gen", c.namespace)
}

func readThrough[T any](ctx context.Context, c *CachingStockRepository, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return load(ctx)
	}

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []T
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Remember the generation before reading the database
	gen, err := c.rdb.Get(ctx, c.genKey()).Result()
	cacheable := err == nil || errors.Is(err, redis.Nil)
	if errors.Is(err, redis.Nil) {
		gen = "0"
	}

	// 3) Fallback to database
	out, err := load(ctx)
	if err != nil {
		return nil, err
	}

	// 4) Store only if no movement committed since step 2 (best effort)
	if cacheable {
		if b, err := json.Marshal(out); err == nil {
			_ = setIfGenerationScript.Run(ctx, c.rdb,
				[]string{c.genKey(), key}, gen, b, c.ttl.Milliseconds()).Err()
		}
	}

	return out, nil
}
