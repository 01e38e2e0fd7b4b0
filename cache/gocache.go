package cache

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// GoCache is an in-memory cache backed by go-cache
type GoCache struct {
	cache *cache.Cache
}

// NewGoCache creates a new GoCache instance.
// defaultExpiration: default expiration time for items
// cleanupInterval: interval for evicting expired items
func NewGoCache(defaultExpiration, cleanupInterval time.Duration) *GoCache {
	return &GoCache{
		cache: cache.New(defaultExpiration, cleanupInterval),
	}
}

// Get retrieves the value for key
func (gc *GoCache) Get(key string) ([]byte, bool) {
	value, found := gc.cache.Get(key)
	if !found {
		return nil, false
	}
	data, ok := value.([]byte)
	if !ok {
		// Stored value of an unexpected type counts as a miss
		return nil, false
	}
	return data, true
}

// Set stores value under key with the given TTL.
// If ttl is 0, the cache's default expiration is used.
func (gc *GoCache) Set(key string, value []byte, ttl time.Duration) {
	gc.cache.Set(key, value, ttl)
}

// Delete removes a key from the cache
func (gc *GoCache) Delete(key string) {
	gc.cache.Delete(key)
}

// Clear removes all items from the cache
func (gc *GoCache) Clear() {
	gc.cache.Flush()
}

// ItemCount returns the number of items in the cache
func (gc *GoCache) ItemCount() int {
	return gc.cache.ItemCount()
}
