package cache

import "time"

// LoaderFunc loads the value for a key that is missing from the cache
type LoaderFunc func() ([]byte, error)

// Cache is a byte-blob cache keyed by string
type Cache interface {
	// Get retrieves the value for key, reporting whether it was found
	Get(key string) ([]byte, bool)

	// Set stores value under key with the given TTL; ttl 0 uses the
	// cache's default expiration
	Set(key string, value []byte, ttl time.Duration)

	// GetOrLoad returns the cached value for key, or calls loader, caches
	// the result with the given TTL and returns it. A loader error is
	// returned as-is and nothing is cached.
	GetOrLoad(key string, loader LoaderFunc, ttl time.Duration) ([]byte, error)
}
