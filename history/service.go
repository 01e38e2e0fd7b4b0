package history

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"golang.org/x/time/rate"

	"github.com/upsidescan/potential-tracker/cache"
	"github.com/upsidescan/potential-tracker/config"
	"github.com/upsidescan/potential-tracker/metrics"
)

const (
	// Cache key prefix for history data
	HISTORY_CACHE_PREFIX = "history"
)

// IAPIClient abstracts the upstream history endpoint
type IAPIClient interface {
	FetchHistory(ctx context.Context, assetID string, spec RangeSpec) ([]Point, error)
	Healthy() bool
}

// Service provides history fetching with per-(asset, range) caching
type Service struct {
	cache         cache.Cache
	config        *config.Config
	metricsWriter *metrics.MetricsWriter
	apiClient     IAPIClient
}

// NewService creates a new history service with the given cache and config
func NewService(cache cache.Cache, cfg *config.Config, limiter *rate.Limiter) *Service {
	return &Service{
		cache:         cache,
		config:        cfg,
		metricsWriter: metrics.NewMetricsWriter(metrics.ServiceHistory),
		apiClient:     NewClient(cfg, limiter),
	}
}

// Start implements core.Interface
func (s *Service) Start(ctx context.Context) error {
	if s.cache == nil {
		return fmt.Errorf("cache dependency not provided")
	}
	return nil
}

// Stop implements core.Interface
func (s *Service) Stop() {}

// Healthy checks if the upstream client is operational
func (s *Service) Healthy() bool {
	if s.apiClient != nil {
		return s.apiClient.Healthy()
	}
	return false
}

// History returns the raw point sequence for (assetID, token), served from
// cache when fresh enough for the range's granularity
func (s *Service) History(ctx context.Context, assetID string, token RangeToken) ([]Point, error) {
	spec := MustRange(token)
	cacheKey := s.createCacheKey(assetID, token)

	if data, found := s.cache.Get(cacheKey); found {
		s.metricsWriter.RecordCacheLookup("hit")
		var points []Point
		if err := json.Unmarshal(data, &points); err == nil {
			return points, nil
		}
		log.Printf("CoinCap-History: Discarding undecodable cache entry %s", cacheKey)
	}
	s.metricsWriter.RecordCacheLookup("miss")

	points, err := s.apiClient.FetchHistory(ctx, assetID, spec)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(points); err == nil {
		s.cache.Set(cacheKey, data, s.selectTTL(spec))
	}

	return points, nil
}

// Series returns the chart-ready series for (assetID, token)
func (s *Service) Series(ctx context.Context, assetID string, token RangeToken) (Series, error) {
	points, err := s.History(ctx, assetID, token)
	if err != nil {
		return nil, err
	}
	return BuildSeries(points, token), nil
}

// createCacheKey creates a cache key for one (asset, range) pair
func (s *Service) createCacheKey(assetID string, token RangeToken) string {
	return fmt.Sprintf("%s:%s:%s", HISTORY_CACHE_PREFIX, assetID, token)
}

// selectTTL chooses the cache TTL matching the range's sampling granularity
func (s *Service) selectTTL(spec RangeSpec) time.Duration {
	switch spec.Interval {
	case "m5":
		return s.config.History.IntradayTTL
	case "h1", "h2":
		return s.config.History.HourlyTTL
	case "d1":
		return s.config.History.DailyTTL
	default:
		return s.config.History.DefaultTTL
	}
}
