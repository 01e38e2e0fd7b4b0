package tracker

import (
	"time"

	"github.com/upsidescan/potential-tracker/history"
	"github.com/upsidescan/potential-tracker/ranking"
)

// TrackState is the lifecycle state of one asynchronous fetch track
type TrackState string

const (
	// StateIdle: snapshot track before the first fetch
	StateIdle TrackState = "idle"
	// StateNoSelection: history track before any asset is selected
	StateNoSelection TrackState = "no_selection"
	// StateFetching: a fetch is in flight
	StateFetching TrackState = "fetching"
	// StateReady: the last fetch committed successfully
	StateReady TrackState = "ready"
	// StateFailed: the last fetch failed; previously committed data is retained
	StateFailed TrackState = "failed"
)

// Selection is the (asset, range) pair driving the history track
type Selection struct {
	AssetID string             `json:"assetId"`
	Range   history.RangeToken `json:"range"`
}

// Board is the ranked-list output consumed by the presentation layer
type Board struct {
	State     TrackState            `json:"state"`
	Assets    []ranking.RankedAsset `json:"assets"`
	NoMatches bool                  `json:"noMatches"`
	LastError string                `json:"lastError,omitempty"`
	UpdatedAt time.Time             `json:"updatedAt"`
}

// Chart is the chart-series output consumed by the presentation layer.
// Series is nil until a fetch for the current selection has committed.
type Chart struct {
	State     TrackState     `json:"state"`
	Selection Selection      `json:"selection"`
	Series    history.Series `json:"series"`
	LastError string         `json:"lastError,omitempty"`
}
