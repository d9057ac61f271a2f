package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/ppiankov/symptomatic/internal/model"
)

// Cache stores prediction results keyed by request
type Cache interface {
	Get(key string) (model.PredictionResult, bool)
	Set(key string, value model.PredictionResult, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// RequestKey derives a cache key from the fields that influence scoring,
// namespaced by scope. Callers pass a scope that changes whenever the
// catalog, synonyms or scoring parameters change. The request ID and
// additional info are excluded. Duration text is compared
// case-insensitively, which matches how the scorer reads it.
func RequestKey(scope string, req model.PredictionRequest) string {
	var b strings.Builder
	b.WriteString(scope)
	b.WriteByte(0)
	b.WriteString(strings.TrimSpace(req.Symptoms))
	b.WriteByte(0)
	b.WriteString(strconv.Itoa(req.Severity))
	b.WriteByte(0)
	b.WriteString(strings.ToLower(strings.TrimSpace(req.Duration)))

	hash := sha256.Sum256([]byte(b.String()))
	return "symptomatic:v2:" + hex.EncodeToString(hash[:])
}

// New builds the cache described by cfg. It returns nil when caching is
// disabled, and a memory-only cache when no directory is configured. A
// positive MaxEntries bounds the memory layer with an LRU.
func New(cfg model.CacheConfig) Cache {
	if !cfg.Enabled {
		return nil
	}

	var memory Cache
	if cfg.MaxEntries > 0 {
		memory = NewLRUCache(cfg.MaxEntries, cfg.MemoryTTL)
	} else {
		memory = NewMemoryCache(cfg.MemoryTTL, 10*time.Minute)
	}

	if cfg.Dir == "" {
		return memory
	}
	return NewLayered(memory, NewDiskCache(cfg.Dir, cfg.DiskTTL))
}
