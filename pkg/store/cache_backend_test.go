package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/todonaut/todonaut/pkg/cache/inmemory"
	"github.com/todonaut/todonaut/pkg/types"
)

func newCacheBackend(t *testing.T) *CacheBackend {
	t.Helper()
	c, err := inmemory.NewCache(&inmemory.Config{})
	require.NoError(t, err)
	return NewCacheBackend(c)
}

func TestCacheBackend_LoadEmptyIsFresh(t *testing.T) {
	backend := newCacheBackend(t)

	snapshot, err := backend.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, snapshot.NextID)
	assert.Empty(t, snapshot.Users)
}

func TestCacheBackend_SaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	backend := newCacheBackend(t)

	snapshot := NewSnapshot()
	snapshot.NextID = 9
	snapshot.Users[3] = &Bucket{Todos: []types.Todo{
		{ID: 8, Text: "cached", Completed: false, UserID: 3},
	}}

	require.NoError(t, backend.Save(ctx, snapshot))

	loaded, err := backend.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, snapshot, loaded)
}

func TestCacheBackend_StoreOperationsWork(t *testing.T) {
	ctx := context.Background()
	s := newTodoStore(newCacheBackend(t), nil)

	created, err := s.Create(ctx, 3, types.TodoInput{Text: "buy milk"})
	require.NoError(t, err)

	got, err := s.Get(ctx, 3, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}
