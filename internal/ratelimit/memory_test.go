package ratelimit

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCounters_Admit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemoryCounters()

	for i := int64(1); i <= 5; i++ {
		allowed, err := store.Admit(ctx, "alice", 5)
		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Equal(t, i, store.Count("alice"))
	}

	allowed, err := store.Admit(ctx, "alice", 5)
	require.NoError(t, err)
	assert.False(t, allowed)

	// Denied requests do not grow the count.
	assert.Equal(t, int64(5), store.Count("alice"))
}

func TestMemoryCounters_Reset(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemoryCounters()

	for i := 0; i < 5; i++ {
		_, err := store.Admit(ctx, "alice", 5)
		require.NoError(t, err)
	}

	require.NoError(t, store.Reset(ctx))
	assert.Equal(t, int64(0), store.Count("alice"))

	allowed, err := store.Admit(ctx, "alice", 5)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestMemoryCounters_ConcurrentAdmit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemoryCounters()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = store.Admit(ctx, "alice", 5)
		}()
	}
	wg.Wait()

	// Increment-or-deny is atomic: the count never passes the limit.
	assert.Equal(t, int64(5), store.Count("alice"))
}

func TestNewRedisCounters(t *testing.T) {
	t.Parallel()

	store := NewRedisCounters(nil, 0)
	assert.NotNil(t, store)
	assert.Equal(t, "ratelimit:", store.prefix)
	assert.NoError(t, store.Reset(context.Background()))
}
