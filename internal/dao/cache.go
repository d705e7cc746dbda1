package dao

import (
	"strings"
	"sync"
	"time"

	"github.com/b9s/b9s/internal/pager"
)

// DefaultCacheTTL is the default time-to-live for cached list pages.
const DefaultCacheTTL = 5 * time.Second

// cacheEntry holds one cached page with its timestamp.
type cacheEntry struct {
	resp      *pager.Response[Object]
	timestamp time.Time
}

// ResourceCache provides TTL-based caching for plain list pages, so rapid
// view switches don't hammer the backend. Mutations invalidate by resource
// prefix.
type ResourceCache struct {
	data map[string]cacheEntry
	ttl  time.Duration
	mx   sync.RWMutex
}

// NewResourceCache creates a new ResourceCache with the specified TTL.
func NewResourceCache(ttl time.Duration) *ResourceCache {
	return &ResourceCache{
		data: make(map[string]cacheEntry),
		ttl:  ttl,
	}
}

// Get retrieves the cached page for the given key.
// Returns nil if the key is not found or the entry has expired.
func (c *ResourceCache) Get(key string) *pager.Response[Object] {
	c.mx.RLock()
	defer c.mx.RUnlock()

	entry, exists := c.data[key]
	if !exists {
		return nil
	}

	if time.Since(entry.timestamp) > c.ttl {
		return nil
	}

	return entry.resp
}

// Set stores a page in the cache with the given key.
func (c *ResourceCache) Set(key string, resp *pager.Response[Object]) {
	c.mx.Lock()
	defer c.mx.Unlock()

	c.data[key] = cacheEntry{
		resp:      resp,
		timestamp: time.Now(),
	}
}

// Invalidate removes a specific key from the cache.
func (c *ResourceCache) Invalidate(key string) {
	c.mx.Lock()
	defer c.mx.Unlock()

	delete(c.data, key)
}

// InvalidatePrefix removes all cache entries whose keys start with the given prefix.
func (c *ResourceCache) InvalidatePrefix(prefix string) {
	c.mx.Lock()
	defer c.mx.Unlock()

	for key := range c.data {
		if strings.HasPrefix(key, prefix) {
			delete(c.data, key)
		}
	}
}

// Clear removes all entries from the cache.
func (c *ResourceCache) Clear() {
	c.mx.Lock()
	defer c.mx.Unlock()

	c.data = make(map[string]cacheEntry)
}
