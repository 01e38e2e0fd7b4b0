package cache

import (
	"context"
	"fmt"
	"time"
)

// Service implements Cache backed by go-cache. When caching is disabled in
// the config, Get always misses and GetOrLoad goes straight to the loader.
type Service struct {
	goCache *GoCache
	config  Config
}

// NewService creates a new cache service with the given configuration
func NewService(config Config) *Service {
	var goCache *GoCache
	if config.GoCache.Enabled {
		goCache = NewGoCache(config.GoCache.DefaultExpiration, config.GoCache.CleanupInterval)
	}

	return &Service{
		goCache: goCache,
		config:  config,
	}
}

// Start implements core.Interface
func (s *Service) Start(ctx context.Context) error {
	if s.config.GoCache.Enabled && s.goCache == nil {
		return fmt.Errorf("cache service not properly initialized")
	}
	return nil
}

// Stop implements core.Interface
func (s *Service) Stop() {
	if s.goCache != nil {
		s.goCache.Clear()
	}
}

// Get retrieves the value for key
func (s *Service) Get(key string) ([]byte, bool) {
	if s.goCache == nil {
		return nil, false
	}
	return s.goCache.Get(key)
}

// Set stores value under key with the given TTL
func (s *Service) Set(key string, value []byte, ttl time.Duration) {
	if s.goCache == nil {
		return
	}
	s.goCache.Set(key, value, ttl)
}

// GetOrLoad returns the cached value for key or loads and caches it
func (s *Service) GetOrLoad(key string, loader LoaderFunc, ttl time.Duration) ([]byte, error) {
	if value, found := s.Get(key); found {
		return value, nil
	}

	value, err := loader()
	if err != nil {
		return nil, err
	}

	s.Set(key, value, ttl)
	return value, nil
}

// Delete removes a key from the cache
func (s *Service) Delete(key string) {
	if s.goCache != nil {
		s.goCache.Delete(key)
	}
}

// ItemCount returns the number of cached items
func (s *Service) ItemCount() int {
	if s.goCache == nil {
		return 0
	}
	return s.goCache.ItemCount()
}
