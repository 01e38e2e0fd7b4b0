package config

import "time"

// HistoryFetcher defines configuration for the asset history service
type HistoryFetcher struct {
	// IntradayTTL is the cache TTL for 5-minute sampled data (24H range)
	IntradayTTL time.Duration `yaml:"intraday_ttl"`

	// HourlyTTL is the cache TTL for hourly and 2-hourly sampled data
	HourlyTTL time.Duration `yaml:"hourly_ttl"`

	// DailyTTL is the cache TTL for daily sampled data (ALL range)
	DailyTTL time.Duration `yaml:"daily_ttl"`

	// DefaultTTL is the fallback TTL for unrecognized intervals
	DefaultTTL time.Duration `yaml:"default_ttl"`
}

// GetDefaultHistoryFetcherConfig returns default history service settings
func GetDefaultHistoryFetcherConfig() HistoryFetcher {
	return HistoryFetcher{
		IntradayTTL: 2 * time.Minute,
		HourlyTTL:   30 * time.Minute,
		DailyTTL:    6 * time.Hour,
		DefaultTTL:  5 * time.Minute,
	}
}
