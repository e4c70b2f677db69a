package common

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// Cache holds the in-memory reflection of the last-read collections so that
// repeated queries between writes do not decode the substrate payload again.
// Entries are refreshed on every successful write; an expired entry simply
// forces a substrate re-read.
type Cache struct {
	*cache.Cache
}

func NewCache(expirationTime, cleanupTime time.Duration) *Cache {
	return &Cache{cache.New(expirationTime, cleanupTime)}
}

func (c *Cache) Set(key string, value interface{}, expiration ...time.Duration) {
	if len(expiration) > 0 {
		c.Cache.Set(key, value, expiration[0])
		return
	}
	c.Cache.Set(key, value, cache.DefaultExpiration)
}

func (c *Cache) Get(key string) (interface{}, bool) {
	return c.Cache.Get(key)
}

func (c *Cache) Flush() {
	c.Cache.Flush()
}

// CacheKeyCollection names the cache entry mirroring the substrate key of a
// whole collection.
func CacheKeyCollection(storageKey string) string {
	return "collection:" + storageKey
}
