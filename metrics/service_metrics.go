package metrics

import (
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsPrefix is the prefix used for all metrics
const MetricsPrefix = "potential_tracker_"

// Service constants
const (
	ServiceAssets  = "assets"
	ServiceHistory = "history"
	ServiceStream  = "stream"
	ServiceTracker = "tracker"
)

var (
	// Global upstream request counter (all services)
	// Cardinality: ~4 (success, error, rate_limited, timeout)
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "upstream_requests_total",
			Help: "Total number of HTTP requests to the CoinCap API across all services",
		},
		[]string{"status"},
	)

	// Service-specific upstream request counter
	ServiceUpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "service_upstream_requests_total",
			Help: "Total number of HTTP requests to the CoinCap API per service",
		},
		[]string{"service", "status"},
	)

	// Data fetch cycle duration per service
	DataFetchCycleDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: MetricsPrefix + "data_fetch_cycle_duration_seconds",
			Help: "Time taken to complete a full data fetch cycle",
		},
		[]string{"service"},
	)

	// RankedListSizeGauge tracks the current ranked list length
	RankedListSizeGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricsPrefix + "ranked_list_size",
			Help: "Number of assets in the current ranked list",
		},
	)

	// DroppedSnapshotsTotal counts snapshots rejected by validation or thresholds
	DroppedSnapshotsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "dropped_snapshots_total",
			Help: "Total number of asset snapshots dropped before ranking",
		},
		[]string{"reason"},
	)

	// StaleHistoryDropsTotal counts history results discarded because the
	// selection changed while the fetch was in flight
	StaleHistoryDropsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "stale_history_drops_total",
			Help: "Total number of history fetch results discarded as stale",
		},
	)

	// Cache lookup outcomes per service
	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "cache_lookups_total",
			Help: "Total number of cache lookups per service and outcome",
		},
		[]string{"service", "result"},
	)

	// Retry attempts counter
	ServiceRetryCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "service_retry_attempts_total",
			Help: "Total number of retry attempts per service",
		},
		[]string{"service"},
	)
)

// MetricsWriter provides a unified interface for recording service metrics
type MetricsWriter struct {
	serviceName string
}

// NewMetricsWriter creates a new MetricsWriter for the specified service
func NewMetricsWriter(serviceName string) *MetricsWriter {
	return &MetricsWriter{
		serviceName: serviceName,
	}
}

// RecordDataFetchCycle records the duration of a data fetch cycle
func (mw *MetricsWriter) RecordDataFetchCycle(duration time.Duration) {
	DataFetchCycleDuration.WithLabelValues(mw.serviceName).Observe(duration.Seconds())
	log.Printf("Metrics: %s data fetch cycle took %.2fs", mw.serviceName, duration.Seconds())
}

// RecordRankedListSize records the current ranked list length
func (mw *MetricsWriter) RecordRankedListSize(size int) {
	RankedListSizeGauge.Set(float64(size))
}

// RecordStaleHistoryDrop records a discarded stale history result
func (mw *MetricsWriter) RecordStaleHistoryDrop() {
	StaleHistoryDropsTotal.Inc()
}

// RecordCacheLookup records a cache lookup outcome ("hit" or "miss")
func (mw *MetricsWriter) RecordCacheLookup(result string) {
	CacheLookupsTotal.WithLabelValues(mw.serviceName, result).Inc()
}

// OnRequest records an HTTP request with its status.
// Implements the coincap status handler interface.
func (mw *MetricsWriter) OnRequest(status string) {
	UpstreamRequestsTotal.WithLabelValues(status).Inc()
	ServiceUpstreamRequestsTotal.WithLabelValues(mw.serviceName, status).Inc()
}

// OnRetry records an HTTP retry attempt
func (mw *MetricsWriter) OnRetry() {
	ServiceRetryCounter.WithLabelValues(mw.serviceName).Inc()
}
