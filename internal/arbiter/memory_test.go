package arbiter

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryMutualExclusion(t *testing.T) {
	group := NewMemoryGroup()

	const n = 16
	var (
		mu     sync.Mutex
		active int
		peak   int
	)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a := group.Arbiter()
			require.NoError(t, a.Acquire(context.Background()))
			defer a.Release() //nolint:errcheck

			mu.Lock()
			active++
			if active > peak {
				peak = active
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			active--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, peak)
}

func TestMemoryAcquireCancel(t *testing.T) {
	group := NewMemoryGroup()

	holder := group.Arbiter()
	require.NoError(t, holder.Acquire(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	waiter := group.Arbiter()
	assert.ErrorIs(t, waiter.Acquire(ctx), context.DeadlineExceeded)

	require.NoError(t, holder.Release())
	require.NoError(t, waiter.Acquire(context.Background()))
	require.NoError(t, waiter.Release())
}

func TestMemoryReleaseWithoutAcquire(t *testing.T) {
	group := NewMemoryGroup()
	assert.ErrorIs(t, group.Arbiter().Release(), ErrNotHeld)
}
