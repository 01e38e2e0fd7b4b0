package ranking

import (
	"math"

	"github.com/upsidescan/potential-tracker/assets"
)

// Capitalization band rewarded by the score. Outside it the capitalization
// sub-score is zero.
const (
	capScoreFloor = 1e6
	capScoreCeil  = 5e9
)

// Sub-score caps
const (
	maxCapScore    = 30.0
	maxVolumeScore = 25.0
	maxSupplyScore = 20.0
	maxTrendScore  = 25.0
)

// PotentialScore computes the heuristic potential score for one snapshot,
// always in [0, 100]. The score is fail-soft: if the snapshot's required
// numeric fields don't parse to finite numbers the whole score degrades
// to 0 rather than failing the batch.
func PotentialScore(snapshot assets.Snapshot) int {
	marketCap, ok := snapshot.MarketCap()
	if !ok {
		return 0
	}
	volume, ok := snapshot.Volume()
	if !ok {
		return 0
	}
	change, ok := snapshot.ChangePercent()
	if !ok {
		return 0
	}

	total := capScore(marketCap) +
		volumeScore(volume, marketCap) +
		supplyScore(snapshot) +
		trendScore(change)

	score := int(math.Round(total))
	return clampInt(score, 0, 100)
}

// capScore rewards smaller capitalization within a plausible liquid band,
// decreasing log-linearly from the floor to the ceiling.
func capScore(marketCap float64) float64 {
	if marketCap < capScoreFloor || marketCap > capScoreCeil {
		return 0
	}
	span := math.Log(capScoreCeil) - math.Log(capScoreFloor)
	score := maxCapScore * (1 - (math.Log(marketCap)-math.Log(capScoreFloor))/span)
	return clamp(score, 0, maxCapScore)
}

// volumeScore rewards high turnover relative to size
func volumeScore(volume, marketCap float64) float64 {
	if volume <= 0 || marketCap <= 0 {
		return 0
	}
	return math.Min(maxVolumeScore, 100*volume/marketCap)
}

// supplyScore rewards scarcity headroom. Uncapped assets and assets whose
// supply fields don't parse earn nothing.
func supplyScore(snapshot assets.Snapshot) float64 {
	maxSupply, ok := snapshot.MaximumSupply()
	if !ok || maxSupply <= 0 {
		return 0
	}
	circulating, ok := snapshot.CirculatingSupply()
	if !ok {
		return 0
	}
	return clamp(maxSupplyScore*(1-circulating/maxSupply), 0, maxSupplyScore)
}

// trendScore rewards positive momentum only, capped
func trendScore(change float64) float64 {
	return clamp(change, 0, maxTrendScore)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
