package config

// CoinCapAPI defines connection settings shared by all CoinCap clients
type CoinCapAPI struct {
	// BaseURL is the REST API base, overridable for tests
	BaseURL string `yaml:"base_url"`

	// WSURL is the live prices WebSocket base, overridable for tests
	WSURL string `yaml:"ws_url"`

	// APIKey is an optional bearer token; the public API works without one
	APIKey string `yaml:"api_key"`

	// RequestsPerMinute caps outgoing REST requests across all clients
	RequestsPerMinute int `yaml:"requests_per_minute"`

	// Burst is the rate limiter burst size
	Burst int `yaml:"burst"`
}

// GetDefaultCoinCapAPIConfig returns default CoinCap API settings
func GetDefaultCoinCapAPIConfig() CoinCapAPI {
	return CoinCapAPI{
		BaseURL:           "https://api.coincap.io",
		WSURL:             "wss://ws.coincap.io",
		RequestsPerMinute: 100,
		Burst:             5,
	}
}
