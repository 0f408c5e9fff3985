package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/todonaut/todonaut/pkg/cache/inmemory"
	rediscache "github.com/todonaut/todonaut/pkg/cache/redis"
)

// NoExpiration signals that a key should never expire.
const NoExpiration time.Duration = -1

// Cache is the storage port shared by all cache implementations.
// Values are opaque; callers own serialization.
type Cache interface {
	// Get returns the value for key, or an error if the key is absent.
	Get(ctx context.Context, key string) (interface{}, error)

	// Set stores value under key with the given expiration.
	// Use NoExpiration to keep the key forever.
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// Config selects and configures a cache implementation.
type Config struct {
	Type     string             `mapstructure:"type"`
	InMemory *inmemory.Config   `mapstructure:"inmemory"`
	Redis    *rediscache.Config `mapstructure:"redis"`
}

// New builds a Cache from config. Defaults to the in-memory implementation.
func New(ctx context.Context, cfg *Config) (Cache, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	switch cfg.Type {
	case "redis":
		return rediscache.NewCache(ctx, cfg.Redis)
	case "inmemory", "":
		inmemCfg := cfg.InMemory
		if inmemCfg == nil {
			inmemCfg = &inmemory.Config{}
		}
		return inmemory.NewCache(inmemCfg)
	default:
		return nil, fmt.Errorf("unsupported cache type: %s", cfg.Type)
	}
}
