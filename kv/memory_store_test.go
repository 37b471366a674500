package kv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Set(ctx, "widget:1", widget{Name: "gear", Count: 3}))

	var got widget
	found, err := store.Get(ctx, "widget:1", &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, widget{Name: "gear", Count: 3}, got)
}

func TestMemoryStoreAbsentKey(t *testing.T) {
	store := NewMemoryStore()

	var got widget
	found, err := store.Get(context.Background(), "missing", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryStoreSetReplaces(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Set(ctx, "k", widget{Name: "old"}))
	require.NoError(t, store.Set(ctx, "k", widget{Name: "new"}))

	var got widget
	found, err := store.Get(ctx, "k", &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "new", got.Name)
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Set(ctx, "k", widget{}))
	require.NoError(t, store.Delete(ctx, "k"))

	var got widget
	found, err := store.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)

	// deleting an absent key is not an error
	require.NoError(t, store.Delete(ctx, "k"))
}

func TestMemoryStoreStoresLists(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Set(ctx, "ids", []string{"a", "b"}))

	var ids []string
	found, err := store.Get(ctx, "ids", &ids)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []string{"a", "b"}, ids)
}
