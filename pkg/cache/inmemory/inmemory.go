package inmemory

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Config holds expiration settings in seconds.
type Config struct {
	DefaultExpiration int `mapstructure:"defaultExpiration"`
	CleanupInterval   int `mapstructure:"cleanupInterval"`
}

// InMemoryCache is a process-local cache backed by go-cache.
type InMemoryCache struct {
	cache *gocache.Cache
}

// NewCache creates an in-memory cache. Zero config values fall back to
// go-cache's NoExpiration / no-cleanup behavior.
func NewCache(cfg *Config) (*InMemoryCache, error) {
	if cfg == nil {
		return nil, fmt.Errorf("inmemory cache config is nil")
	}

	defaultExpiration := gocache.NoExpiration
	if cfg.DefaultExpiration > 0 {
		defaultExpiration = time.Duration(cfg.DefaultExpiration) * time.Second
	}
	cleanupInterval := time.Duration(cfg.CleanupInterval) * time.Second

	return &InMemoryCache{
		cache: gocache.New(defaultExpiration, cleanupInterval),
	}, nil
}

func (c *InMemoryCache) Get(_ context.Context, key string) (interface{}, error) {
	val, found := c.cache.Get(key)
	if !found {
		return nil, fmt.Errorf("key not found: %s", key)
	}
	return val, nil
}

func (c *InMemoryCache) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	if expiration < 0 {
		expiration = gocache.NoExpiration
	}
	c.cache.Set(key, value, expiration)
	return nil
}

func (c *InMemoryCache) Delete(_ context.Context, key string) error {
	c.cache.Delete(key)
	return nil
}
