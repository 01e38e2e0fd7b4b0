package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/upsidescan/potential-tracker/cache"
)

type Config struct {
	CoinCap CoinCapAPI     `yaml:"coincap"`
	Assets  AssetsFetcher  `yaml:"assets"`
	Ranking Ranking        `yaml:"ranking"`
	History HistoryFetcher `yaml:"history"`
	Stream  Stream         `yaml:"stream"`
	Cache   cache.Config   `yaml:"cache"`
}

// DefaultConfig returns a configuration with all defaults applied
func DefaultConfig() *Config {
	return &Config{
		CoinCap: GetDefaultCoinCapAPIConfig(),
		Assets:  GetDefaultAssetsFetcherConfig(),
		Ranking: GetDefaultRankingConfig(),
		History: GetDefaultHistoryFetcherConfig(),
		Stream:  GetDefaultStreamConfig(),
		Cache:   cache.DefaultCacheConfig(),
	}
}

// LoadConfig reads a YAML config file over the defaults.
// A missing file is not an error; defaults are used as-is.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}
