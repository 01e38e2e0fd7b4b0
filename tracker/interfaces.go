package tracker

import (
	"context"

	"github.com/upsidescan/potential-tracker/assets"
	"github.com/upsidescan/potential-tracker/history"
)

//go:generate mockgen -destination=mocks/providers.go . SnapshotProvider,HistoryProvider

// SnapshotProvider fetches the current asset snapshot list from upstream
type SnapshotProvider interface {
	FetchAssets(ctx context.Context) ([]assets.Snapshot, error)
}

// HistoryProvider fetches the chart series for one asset and range
type HistoryProvider interface {
	Series(ctx context.Context, assetID string, token history.RangeToken) (history.Series, error)
}
