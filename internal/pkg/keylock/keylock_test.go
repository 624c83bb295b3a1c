//go:build unit

package keylock_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"companion-booking/internal/pkg/keylock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquire_MutualExclusion(t *testing.T) {
	km := keylock.New()

	const goroutines = 32
	var (
		wg      sync.WaitGroup
		holders int
		maxSeen int
		mu      sync.Mutex
	)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			release, err := km.Acquire(context.Background(), "companion-1")
			require.NoError(t, err)
			defer release()

			mu.Lock()
			holders++
			if holders > maxSeen {
				maxSeen = holders
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			holders--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen, "at most one holder per key at any time")
}

func TestAcquire_BoundedWait(t *testing.T) {
	km := keylock.New()

	release, err := km.Acquire(context.Background(), "slot")
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = km.Acquire(ctx, "slot")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestAcquire_IndependentKeys(t *testing.T) {
	km := keylock.New()

	r1, err := km.Acquire(context.Background(), "a")
	require.NoError(t, err)
	defer r1()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	r2, err := km.Acquire(ctx, "b")
	require.NoError(t, err, "different keys must not contend")
	r2()
}

func TestRelease_Idempotent(t *testing.T) {
	km := keylock.New()

	release, err := km.Acquire(context.Background(), "k")
	require.NoError(t, err)
	release()
	release() // second call is a no-op

	r2, err := km.Acquire(context.Background(), "k")
	require.NoError(t, err)
	r2()
}
