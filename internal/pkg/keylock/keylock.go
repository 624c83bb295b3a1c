// Package keylock provides per-key mutual exclusion with context-bounded
// acquisition. It backs the per-(companion, slot) booking guarantee and the
// per-companion reconciliation serialization.
package keylock

import (
	"context"
	"sync"
)

type entry struct {
	ch   chan struct{}
	refs int
}

type KeyedMutex struct {
	mu      sync.Mutex
	entries map[string]*entry
}

func New() *KeyedMutex {
	return &KeyedMutex{
		entries: make(map[string]*entry),
	}
}

// Acquire blocks until the key's lock is held or ctx is done. On success the
// returned release function must be called exactly once; calling it more than
// once is a no-op.
func (k *KeyedMutex) Acquire(ctx context.Context, key string) (func(), error) {
	e := k.checkout(key)

	select {
	case e.ch <- struct{}{}:
		var once sync.Once
		release := func() {
			once.Do(func() {
				<-e.ch
				k.checkin(key, e)
			})
		}
		return release, nil
	case <-ctx.Done():
		k.checkin(key, e)
		return nil, ctx.Err()
	}
}

func (k *KeyedMutex) checkout(key string) *entry {
	k.mu.Lock()
	defer k.mu.Unlock()

	e, ok := k.entries[key]
	if !ok {
		e = &entry{ch: make(chan struct{}, 1)}
		k.entries[key] = e
	}
	e.refs++
	return e
}

// checkin drops a reference and removes the entry once nobody holds or waits
// on it, so the map does not grow with the number of distinct keys ever seen.
func (k *KeyedMutex) checkin(key string, e *entry) {
	k.mu.Lock()
	defer k.mu.Unlock()

	e.refs--
	if e.refs == 0 {
		delete(k.entries, key)
	}
}
