package ranking

import (
	"log"
	"sort"

	"github.com/upsidescan/potential-tracker/assets"
	"github.com/upsidescan/potential-tracker/config"
	"github.com/upsidescan/potential-tracker/metrics"
)

// RankedAsset is a snapshot with its potential score attached. Ephemeral:
// recomputed wholesale every refresh cycle.
type RankedAsset struct {
	assets.Snapshot
	PotentialScore int `json:"potentialScore"`
}

// Rank validates and threshold-filters the raw snapshot list, scores the
// survivors, sorts them by descending potential score and truncates to the
// configured maximum. Records with unparseable volume, market cap or change
// are dropped per-record without failing the batch. An empty result is a
// valid outcome, not an error.
func Rank(snapshots []assets.Snapshot, cfg config.Ranking) []RankedAsset {
	ranked := make([]RankedAsset, 0, len(snapshots))
	invalid := 0
	belowThreshold := 0

	for i := range snapshots {
		snapshot := &snapshots[i]

		volume, volumeOK := snapshot.Volume()
		marketCap, marketCapOK := snapshot.MarketCap()
		_, changeOK := snapshot.ChangePercent()

		if !volumeOK || !marketCapOK || !changeOK {
			invalid++
			metrics.DroppedSnapshotsTotal.WithLabelValues("invalid").Inc()
			continue
		}

		if volume < cfg.MinVolume || marketCap < cfg.MinMarketCap || marketCap > cfg.MaxMarketCap {
			belowThreshold++
			metrics.DroppedSnapshotsTotal.WithLabelValues("threshold").Inc()
			continue
		}

		ranked = append(ranked, RankedAsset{
			Snapshot:       *snapshot,
			PotentialScore: PotentialScore(*snapshot),
		})
	}

	// Stable sort keeps the upstream order for equal scores; no secondary
	// key is defined.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].PotentialScore > ranked[j].PotentialScore
	})

	if cfg.MaxResults > 0 && len(ranked) > cfg.MaxResults {
		ranked = ranked[:cfg.MaxResults]
	}

	log.Printf("Ranking: %d snapshots in, %d ranked (%d invalid, %d below thresholds)",
		len(snapshots), len(ranked), invalid, belowThreshold)

	return ranked
}
