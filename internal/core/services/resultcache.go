package services

import (
	"sync"

	"github.com/ragfront/ragfront-core/internal/core/domain"
)

// DefaultResultCacheCapacity bounds the in-memory result cache.
const DefaultResultCacheCapacity = 20

// CacheKey identifies one cacheable query execution. Two requests share an
// entry only when every retrieval-relevant parameter matches.
type CacheKey struct {
	Project          string
	Mode             domain.SearchMode
	CommunityLevel   int
	DynamicSelection bool
	Query            string
}

// ResultCache is a bounded query-result cache with strict insertion-order
// eviction: when full, the oldest entry is dropped regardless of how
// recently it was read. Callers opt in per request.
type ResultCache struct {
	mu       sync.Mutex
	capacity int
	entries  map[CacheKey]*domain.SearchEnvelope
	order    []CacheKey
}

// NewResultCache creates a ResultCache. A non-positive capacity falls back
// to the default.
func NewResultCache(capacity int) *ResultCache {
	if capacity <= 0 {
		capacity = DefaultResultCacheCapacity
	}
	return &ResultCache{
		capacity: capacity,
		entries:  make(map[CacheKey]*domain.SearchEnvelope),
	}
}

// Get returns the cached envelope for the key, or nil.
func (c *ResultCache) Get(key CacheKey) *domain.SearchEnvelope {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries[key]
}

// Put stores an envelope, evicting the oldest entry when at capacity.
// Re-putting an existing key updates the value without refreshing its
// eviction position.
func (c *ResultCache) Put(key CacheKey, env *domain.SearchEnvelope) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; ok {
		c.entries[key] = env
		return
	}
	if len(c.order) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.entries[key] = env
	c.order = append(c.order, key)
}

// Len reports the number of cached entries.
func (c *ResultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
