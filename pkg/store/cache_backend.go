package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/todonaut/todonaut/pkg/cache"
)

// CacheBackend persists the snapshot as a JSON blob under a fixed key in a
// cache.Cache, for deployments backed by redis or an in-memory cache instead
// of the local filesystem.
type CacheBackend struct {
	cache cache.Cache
	key   string
}

// NewCacheBackend wraps c as a snapshot backend.
func NewCacheBackend(c cache.Cache) *CacheBackend {
	return &CacheBackend{
		cache: c,
		key:   "store:snapshot",
	}
}

func (b *CacheBackend) Load(ctx context.Context) (*Snapshot, error) {
	val, err := b.cache.Get(ctx, b.key)
	if err != nil {
		// Nothing persisted yet
		return NewSnapshot(), nil
	}

	raw, ok := val.(string)
	if !ok {
		return nil, fmt.Errorf("unexpected snapshot value type %T", val)
	}

	snapshot := &Snapshot{}
	if err := json.Unmarshal([]byte(raw), snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	snapshot.normalize()
	return snapshot, nil
}

func (b *CacheBackend) Save(ctx context.Context, snapshot *Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := b.cache.Set(ctx, b.key, string(data), cache.NoExpiration); err != nil {
		return fmt.Errorf("failed to persist snapshot: %w", err)
	}
	return nil
}
