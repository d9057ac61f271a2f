package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/ppiankov/symptomatic/internal/model"
)

// MemoryCache keeps results in process memory with per-entry expiry
type MemoryCache struct {
	cache *gocache.Cache
}

// NewMemoryCache creates a new memory cache
func NewMemoryCache(defaultTTL time.Duration, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get retrieves a result from the cache
func (c *MemoryCache) Get(key string) (model.PredictionResult, bool) {
	if val, found := c.cache.Get(key); found {
		if res, ok := val.(model.PredictionResult); ok {
			return res, true
		}
	}
	return model.PredictionResult{}, false
}

// Set stores a result. A zero ttl uses the cache default.
func (c *MemoryCache) Set(key string, value model.PredictionResult, ttl time.Duration) error {
	c.cache.Set(key, value, ttl)
	return nil
}

// Delete removes a result from the cache
func (c *MemoryCache) Delete(key string) error {
	c.cache.Delete(key)
	return nil
}

// Clear removes all results
func (c *MemoryCache) Clear() error {
	c.cache.Flush()
	return nil
}

// Len returns the number of cached entries, including expired ones not yet
// cleaned up
func (c *MemoryCache) Len() int {
	return c.cache.ItemCount()
}
