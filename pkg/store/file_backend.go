package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const snapshotFileName = "todos.json"

// FileBackend persists the snapshot as a single JSON file. Writes go through a
// temp file and a rename, so a crash mid-write leaves either the old or the
// new contents, never a torn file.
type FileBackend struct {
	path string
}

// NewFileBackend stores the snapshot under dataDir/todos.json.
func NewFileBackend(dataDir string) *FileBackend {
	return &FileBackend{
		path: filepath.Join(dataDir, snapshotFileName),
	}
}

func (b *FileBackend) Load(_ context.Context) (*Snapshot, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewSnapshot(), nil
		}
		return nil, fmt.Errorf("failed to read store file: %w", err)
	}

	snapshot := &Snapshot{}
	if err := json.Unmarshal(data, snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal store file: %w", err)
	}
	snapshot.normalize()
	return snapshot, nil
}

func (b *FileBackend) Save(_ context.Context, snapshot *Snapshot) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal store: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(b.path), 0o755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	tmp := b.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write store file: %w", err)
	}
	if err := os.Rename(tmp, b.path); err != nil {
		return fmt.Errorf("failed to swap store file: %w", err)
	}
	return nil
}
