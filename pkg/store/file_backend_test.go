package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/todonaut/todonaut/pkg/types"
)

func TestFileBackend_LoadMissingFileIsFresh(t *testing.T) {
	backend := NewFileBackend(t.TempDir())

	snapshot, err := backend.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, snapshot.NextID)
	assert.Empty(t, snapshot.Users)
}

func TestFileBackend_SaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	backend := NewFileBackend(dir)

	snapshot := NewSnapshot()
	snapshot.NextID = 3
	snapshot.Users[7] = &Bucket{Todos: []types.Todo{
		{ID: 2, Text: "persisted", Completed: true, UserID: 7},
	}}

	require.NoError(t, backend.Save(ctx, snapshot))

	// rename-based swap must not leave the temp file behind
	_, err := os.Stat(filepath.Join(dir, snapshotFileName+".tmp"))
	assert.True(t, os.IsNotExist(err))

	loaded, err := backend.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, snapshot, loaded)
}

func TestFileBackend_PersistedLayout(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	backend := NewFileBackend(dir)

	snapshot := NewSnapshot()
	snapshot.NextID = 2
	snapshot.Users[7] = &Bucket{Todos: []types.Todo{
		{ID: 1, Text: "buy milk", Completed: false, UserID: 7},
	}}
	require.NoError(t, backend.Save(ctx, snapshot))

	raw, err := os.ReadFile(filepath.Join(dir, snapshotFileName))
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Contains(t, doc, "nextId")
	assert.Contains(t, doc, "users")

	var users map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(doc["users"], &users))
	assert.Contains(t, users, "7")
}

func TestFileBackend_BackfillsNextID(t *testing.T) {
	dir := t.TempDir()
	raw := `{"users":{"7":{"todos":[{"id":41,"todo":"old","completed":false,"userId":7}]}}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, snapshotFileName), []byte(raw), 0o644))

	backend := NewFileBackend(dir)
	snapshot, err := backend.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, snapshot.NextID)
}

func TestFileBackend_CorruptFileIsAnError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, snapshotFileName), []byte("{not json"), 0o644))

	backend := NewFileBackend(dir)
	_, err := backend.Load(context.Background())
	assert.Error(t, err)
}
