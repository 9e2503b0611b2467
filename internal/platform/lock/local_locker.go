// Package lock provides per-key mutual exclusion for stock movements.
package lock

import (
	"context"
	"sync"
)

// LocalLocker serialises callers that share a key within one process.
// Entries are reference counted and dropped once no caller holds or waits for them.
type LocalLocker struct {
	mu   sync.Mutex
	keys map[string]*keyEntry
}

type keyEntry struct {
	sem  chan struct{}
	refs int
}

// NewLocalLocker creates an empty LocalLocker.
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{keys: make(map[string]*keyEntry)}
}

// Lock blocks until key is free or ctx is done.
func (l *LocalLocker) Lock(ctx context.Context, key string) (func(), error) {
	e := l.acquire(key)

	select {
	case e.sem <- struct{}{}:
	case <-ctx.Done():
		l.release(key, e)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.sem
			l.release(key, e)
		})
	}, nil
}

func (l *LocalLocker) acquire(key string) *keyEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.keys[key]
	if !ok {
		e = &keyEntry{sem: make(chan struct{}, 1)}
		l.keys[key] = e
	}
	e.refs++
	return e
}

func (l *LocalLocker) release(key string, e *keyEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(l.keys, key)
	}
}

// size reports how many keys are tracked.
func (l *LocalLocker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.keys)
}
