package config

import "time"

// AssetsFetcher defines configuration for the periodic asset snapshot fetch
type AssetsFetcher struct {
	// UpdateInterval is the period between snapshot refresh cycles
	UpdateInterval time.Duration `yaml:"update_interval"`

	// Limit is the number of assets requested from the upstream list endpoint
	Limit int `yaml:"limit"`
}

// GetDefaultAssetsFetcherConfig returns default snapshot fetcher settings
func GetDefaultAssetsFetcherConfig() AssetsFetcher {
	return AssetsFetcher{
		UpdateInterval: 60 * time.Second,
		Limit:          500,
	}
}
