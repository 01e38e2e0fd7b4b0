package config

// Ranking defines the thresholds applied before scoring and the cap on the
// ranked list length. Thresholds are USD values.
type Ranking struct {
	MinVolume    float64 `yaml:"min_volume"`     // Minimum 24h trading volume
	MinMarketCap float64 `yaml:"min_market_cap"` // Minimum market capitalization
	MaxMarketCap float64 `yaml:"max_market_cap"` // Maximum market capitalization
	MaxResults   int     `yaml:"max_results"`    // Maximum ranked list length
}

// GetDefaultRankingConfig returns default ranking thresholds
func GetDefaultRankingConfig() Ranking {
	return Ranking{
		MinVolume:    1_000_000,
		MinMarketCap: 1_000_000,
		MaxMarketCap: 5_000_000_000,
		MaxResults:   50,
	}
}
