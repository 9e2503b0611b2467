package lock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultLockTTL   = 10 * time.Second
	defaultRetryWait = 20 * time.Millisecond
)

// ErrLockTimeout is returned when a key could not be acquired before ctx ended.
var ErrLockTimeout = errors.New("lock wait timed out")

// releaseScript deletes the key only if it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call('GET', KEYS[1]) == ARGV[1] then
	return redis.call('DEL', KEYS[1])
end
return 0
`)

// renewScript resets the TTL only if the key still holds our token.
var renewScript = redis.NewScript(`
if redis.call('GET', KEYS[1]) == ARGV[1] then
	return redis.call('PEXPIRE', KEYS[1], ARGV[2])
end
return 0
`)

// RedisLocker serialises callers across processes with SET NX PX.
// The TTL bounds how long a crashed holder can block a key; a live holder
// renews it until release.
type RedisLocker struct {
	client    *redis.Client
	prefix    string
	ttl       time.Duration
	retryWait time.Duration
}

// NewRedisLocker creates a RedisLocker. If ttl is 0, it defaults to 10 seconds.
// If prefix is empty, it uses "stocklock".
func NewRedisLocker(client *redis.Client, prefix string, ttl time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	if prefix == "" {
		prefix = "stocklock"
	}
	return &RedisLocker{
		client:    client,
		prefix:    prefix,
		ttl:       ttl,
		retryWait: defaultRetryWait,
	}
}

func (l *RedisLocker) lockKey(key string) string {
	return fmt.Sprintf("%s:%s", l.prefix, key)
}

// Lock retries SET NX until it succeeds or ctx is done.
func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	k := l.lockKey(key)
	token := uuid.NewString()

	for {
		ok, err := l.client.SetNX(ctx, k, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("redis setnx %s: %w", k, err)
		}
		if ok {
			break
		}

		timer := time.NewTimer(l.retryWait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, fmt.Errorf("%w: %s: %w", ErrLockTimeout, k, ctx.Err())
		case <-timer.C:
		}
	}

	stop := make(chan struct{})
	stopped := make(chan struct{})
	go l.keepAlive(k, token, stop, stopped)

	var once sync.Once
	return func() {
		once.Do(func() {
			close(stop)
			<-stopped
			// Release on a fresh context so a cancelled request still frees the key.
			rctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if err := releaseScript.Run(rctx, l.client, []string{k}, token).Err(); err != nil {
				slog.Warn("failed to release stock lock", "key", k, "error", err)
			}
		})
	}, nil
}

// keepAlive extends the TTL every ttl/3 while the lock is held, so a slow
// transaction keeps its key. It stops when stop is closed or the token is gone.
func (l *RedisLocker) keepAlive(k, token string, stop <-chan struct{}, stopped chan<- struct{}) {
	defer close(stopped)
	ticker := time.NewTicker(l.ttl / 3)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}
		rctx, cancel := context.WithTimeout(context.Background(), l.ttl/3)
		held, err := renewScript.Run(rctx, l.client, []string{k}, token, l.ttl.Milliseconds()).Int()
		cancel()
		if err != nil {
			slog.Warn("failed to renew stock lock", "key", k, "error", err)
			continue
		}
		if held == 0 {
			slog.Warn("stock lock lost before release", "key", k)
			return
		}
	}
}
