package indexes

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/skillwave-academy/content-service/kv"
)

func TestAddPrependsNewestFirst(t *testing.T) {
	ctx := context.Background()
	m := NewManager(kv.NewMemoryStore())

	require.NoError(t, m.Add(ctx, "posts", "a"))
	require.NoError(t, m.Add(ctx, "posts", "b"))
	require.NoError(t, m.Add(ctx, "posts", "c"))

	ids, err := m.Get(ctx, "posts")
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b", "a"}, ids)
}

func TestAddIsIdempotent(t *testing.T) {
	ctx := context.Background()
	m := NewManager(kv.NewMemoryStore())

	require.NoError(t, m.Add(ctx, "posts", "a"))
	require.NoError(t, m.Add(ctx, "posts", "a"))

	ids, err := m.Get(ctx, "posts")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, ids)
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	m := NewManager(kv.NewMemoryStore())

	require.NoError(t, m.Add(ctx, "posts", "a"))
	require.NoError(t, m.Add(ctx, "posts", "b"))

	require.NoError(t, m.Remove(ctx, "posts", "a"))

	ids, err := m.Get(ctx, "posts")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, ids)

	// removing an absent id is a no-op
	require.NoError(t, m.Remove(ctx, "posts", "missing"))
	require.NoError(t, m.Remove(ctx, "other-key", "a"))
}

func TestMove(t *testing.T) {
	ctx := context.Background()
	m := NewManager(kv.NewMemoryStore())

	require.NoError(t, m.Add(ctx, "category:Football", "post-1"))

	require.NoError(t, m.Move(ctx, "category:Football", "category:Athletics", "post-1"))

	football, err := m.Get(ctx, "category:Football")
	require.NoError(t, err)
	assert.Empty(t, football)

	athletics, err := m.Get(ctx, "category:Athletics")
	require.NoError(t, err)
	assert.Equal(t, []string{"post-1"}, athletics)
}

func TestGetAbsentKeyIsEmpty(t *testing.T) {
	m := NewManager(kv.NewMemoryStore())

	ids, err := m.Get(context.Background(), "nothing")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

// Concurrent writers on the same index key must not lose each other's
// membership.
func TestConcurrentAddsKeepEveryMembership(t *testing.T) {
	ctx := context.Background()
	m := NewManager(kv.NewMemoryStore())

	const writers = 50
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, m.Add(ctx, "posts", fmt.Sprintf("post-%d", i)))
		}(i)
	}
	wg.Wait()

	ids, err := m.Get(ctx, "posts")
	require.NoError(t, err)
	assert.Len(t, ids, writers)

	seen := make(map[string]bool, writers)
	for _, id := range ids {
		assert.False(t, seen[id], "duplicate %s", id)
		seen[id] = true
	}
	for i := 0; i < writers; i++ {
		assert.True(t, seen[fmt.Sprintf("post-%d", i)])
	}
}

func TestConcurrentAddRemoveDistinctIDs(t *testing.T) {
	ctx := context.Background()
	m := NewManager(kv.NewMemoryStore())

	const n = 20
	for i := 0; i < n; i++ {
		require.NoError(t, m.Add(ctx, "posts", fmt.Sprintf("keep-%d", i)))
		require.NoError(t, m.Add(ctx, "posts", fmt.Sprintf("drop-%d", i)))
	}

	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, m.Remove(ctx, "posts", fmt.Sprintf("drop-%d", i)))
		}(i)
	}
	wg.Wait()

	ids, err := m.Get(ctx, "posts")
	require.NoError(t, err)
	assert.Len(t, ids, n)
	for _, id := range ids {
		assert.NotContains(t, id, "drop-")
	}
}
