package lock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLocker_SerialisesSameKey(t *testing.T) {
	t.Parallel()

	l := NewLocalLocker()
	ctx := context.Background()

	var (
		inside  int32
		maxSeen int32
		wg      sync.WaitGroup
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := l.Lock(ctx, "Acme/Bolt")
			if !assert.NoError(t, err) {
				return
			}
			defer unlock()

			n := atomic.AddInt32(&inside, 1)
			for {
				m := atomic.LoadInt32(&maxSeen)
				if n <= m || atomic.CompareAndSwapInt32(&maxSeen, m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxSeen, "only one holder at a time")
	assert.Equal(t, 0, l.size(), "entries are dropped after release")
}

func TestLocalLocker_DifferentKeysInParallel(t *testing.T) {
	t.Parallel()

	l := NewLocalLocker()
	ctx := context.Background()

	unlockA, err := l.Lock(ctx, "Acme/Bolt")
	require.NoError(t, err)
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlockB, err := l.Lock(ctx, "Acme/Nut")
		if err == nil {
			unlockB()
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on a different key should not block")
	}
}

func TestLocalLocker_ContextCancelled(t *testing.T) {
	t.Parallel()

	l := NewLocalLocker()

	unlock, err := l.Lock(context.Background(), "k")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = l.Lock(ctx, "k")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	unlock()
	assert.Equal(t, 0, l.size())

	// The key is usable again.
	unlock, err = l.Lock(context.Background(), "k")
	require.NoError(t, err)
	unlock()
}

func TestLocalLocker_UnlockIsIdempotent(t *testing.T) {
	t.Parallel()

	l := NewLocalLocker()
	unlock, err := l.Lock(context.Background(), "k")
	require.NoError(t, err)

	unlock()
	unlock()

	assert.Equal(t, 0, l.size())
}
