package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/ppiankov/symptomatic/internal/model"
)

// LRUCache is a size-bounded memory cache. Entries expire after the TTL
// given at construction; per-call TTLs are ignored.
type LRUCache struct {
	lru *expirable.LRU[string, model.PredictionResult]
}

// NewLRUCache creates a memory cache holding at most size entries
func NewLRUCache(size int, ttl time.Duration) *LRUCache {
	return &LRUCache{
		lru: expirable.NewLRU[string, model.PredictionResult](size, nil, ttl),
	}
}

// Get retrieves a result and marks it recently used
func (c *LRUCache) Get(key string) (model.PredictionResult, bool) {
	return c.lru.Get(key)
}

// Set stores a result, evicting the least recently used entry when full
func (c *LRUCache) Set(key string, value model.PredictionResult, _ time.Duration) error {
	c.lru.Add(key, value)
	return nil
}

// Delete removes a result from the cache
func (c *LRUCache) Delete(key string) error {
	c.lru.Remove(key)
	return nil
}

// Clear removes all results
func (c *LRUCache) Clear() error {
	c.lru.Purge()
	return nil
}

// Len returns the number of live entries
func (c *LRUCache) Len() int {
	return c.lru.Len()
}
