// Package cache provides the in-process TTL store backing analytics.
// Entries are process-local: each instance warms its own cache, and the
// TTL bounds staleness across instances.
package cache

import (
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// TTLCache wraps go-cache with prefix eviction.
type TTLCache struct {
	store *gocache.Cache
}

// New creates a TTLCache. defaultTTL applies when Set is called with a
// non-positive TTL; cleanupInterval drives background expiry sweeps.
func New(defaultTTL, cleanupInterval time.Duration) *TTLCache {
	return &TTLCache{
		store: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get returns the value for key when present and unexpired.
func (c *TTLCache) Get(key string) (any, bool) {
	return c.store.Get(key)
}

// Set stores value under key for ttl.
func (c *TTLCache) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	c.store.Set(key, value, ttl)
}

// Delete removes a single key.
func (c *TTLCache) Delete(key string) {
	c.store.Delete(key)
}

// DeleteByPrefix evicts every key sharing the prefix. go-cache has no
// native prefix scan, so this walks the items snapshot; tenant caches
// hold a handful of metrics, so the walk is cheap.
func (c *TTLCache) DeleteByPrefix(prefix string) {
	for key := range c.store.Items() {
		if strings.HasPrefix(key, prefix) {
			c.store.Delete(key)
		}
	}
}

// Flush drops everything. Used by tests.
func (c *TTLCache) Flush() {
	c.store.Flush()
}
