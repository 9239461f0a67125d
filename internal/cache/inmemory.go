package cache

import (
	"context"
	"time"

	goCache "github.com/patrickmn/go-cache"
	"github.com/skyup-digital/skyup-api/internal/logger"
)

const (
	DefaultExpiration      = 30 * time.Minute
	DefaultCleanupInterval = 10 * time.Minute
)

// InMemoryCache is a process local Cache backed by go-cache. Each Lambda
// instance keeps its own copy.
type InMemoryCache struct {
	store *goCache.Cache
}

func NewInMemoryCache(log *logger.Logger) Cache {
	log.Debugw("initializing in-memory cache",
		"default_expiration", DefaultExpiration,
		"cleanup_interval", DefaultCleanupInterval,
	)
	return &InMemoryCache{store: goCache.New(DefaultExpiration, DefaultCleanupInterval)}
}

func (c *InMemoryCache) Get(_ context.Context, key string) (interface{}, bool) {
	return c.store.Get(key)
}

func (c *InMemoryCache) Set(_ context.Context, key string, value interface{}, expiration time.Duration) {
	if expiration == 0 {
		expiration = goCache.DefaultExpiration
	}
	c.store.Set(key, value, expiration)
}

func (c *InMemoryCache) Add(_ context.Context, key string, value interface{}, expiration time.Duration) bool {
	if expiration == 0 {
		expiration = goCache.DefaultExpiration
	}
	return c.store.Add(key, value, expiration) == nil
}

func (c *InMemoryCache) Flush(_ context.Context) {
	c.store.Flush()
}
