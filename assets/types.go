package assets

import (
	"math"
	"strconv"
)

// Snapshot is one asset's market data at a point in time, as served by the
// CoinCap assets endpoint. All numeric fields arrive as decimal-formatted
// text; use the accessor methods to obtain parsed values.
type Snapshot struct {
	ID                string `json:"id"`
	Rank              string `json:"rank"`
	Symbol            string `json:"symbol"`
	Name              string `json:"name"`
	Supply            string `json:"supply"`
	MaxSupply         string `json:"maxSupply"`
	MarketCapUSD      string `json:"marketCapUsd"`
	VolumeUSD24Hr     string `json:"volumeUsd24Hr"`
	PriceUSD          string `json:"priceUsd"`
	ChangePercent24Hr string `json:"changePercent24Hr"`
	VWAP24Hr          string `json:"vwap24Hr"`
}

// ParseDecimal parses decimal-formatted text into a float64. A field that
// does not parse to a finite number is reported as absent.
func ParseDecimal(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// MarketCap returns the parsed market capitalization in USD
func (s *Snapshot) MarketCap() (float64, bool) {
	return ParseDecimal(s.MarketCapUSD)
}

// Volume returns the parsed 24h trading volume in USD
func (s *Snapshot) Volume() (float64, bool) {
	return ParseDecimal(s.VolumeUSD24Hr)
}

// Price returns the parsed current price in USD
func (s *Snapshot) Price() (float64, bool) {
	return ParseDecimal(s.PriceUSD)
}

// ChangePercent returns the parsed 24h percent price change
func (s *Snapshot) ChangePercent() (float64, bool) {
	return ParseDecimal(s.ChangePercent24Hr)
}

// CirculatingSupply returns the parsed circulating supply
func (s *Snapshot) CirculatingSupply() (float64, bool) {
	return ParseDecimal(s.Supply)
}

// MaximumSupply returns the parsed maximum supply. Uncapped assets have no
// maximum supply and report absent.
func (s *Snapshot) MaximumSupply() (float64, bool) {
	return ParseDecimal(s.MaxSupply)
}
