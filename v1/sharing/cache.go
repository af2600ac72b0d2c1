package sharing

import (
	"sync"
	"time"
)

// Cache is the injectable cache used by the config store. Values are
// immutable snapshots once stored; last writer wins on concurrent
// population, which is acceptable because recomputation is idempotent.
type Cache interface {
	Get(key string) (interface{}, bool)
	Put(key string, value interface{}, ttl time.Duration)
}

type cacheEntry struct {
	value     interface{}
	expiresAt time.Time
}

// MemoryCache is a TTL map cache guarded by a RWMutex
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

// NewMemoryCache creates an empty in-process cache
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]cacheEntry)}
}

// Get returns the cached value if present and not expired
func (c *MemoryCache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.value, true
}

// Put stores a value with the given time-to-live, overwriting any existing
// entry for the key
func (c *MemoryCache) Put(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = cacheEntry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
	c.mu.Unlock()
}
