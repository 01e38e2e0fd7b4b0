package tracker

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/upsidescan/potential-tracker/config"
	"github.com/upsidescan/potential-tracker/events"
	"github.com/upsidescan/potential-tracker/history"
	"github.com/upsidescan/potential-tracker/metrics"
	"github.com/upsidescan/potential-tracker/ranking"
	"github.com/upsidescan/potential-tracker/scheduler"
)

// Service owns the shared pipeline state: the ranked board produced by
// periodic snapshot refreshes, and the chart series produced by
// selection-driven history fetches. All state lives behind one mutex;
// consumers read via Board() and Chart() which return copies.
type Service struct {
	config        *config.Config
	snapshots     SnapshotProvider
	history       HistoryProvider
	scheduler     *scheduler.Scheduler
	updates       *events.SubscriptionManager
	metricsWriter *metrics.MetricsWriter

	mu sync.RWMutex

	// context for history fetch goroutines, set on Start
	ctx context.Context

	// snapshot track
	boardState TrackState
	ranked     []ranking.RankedAsset
	noMatches  bool
	boardErr   string
	updatedAt  time.Time

	// history track. generation identifies the latest issued fetch;
	// a completion whose generation no longer matches is discarded.
	chartState TrackState
	selection  Selection
	series     history.Series
	chartErr   string
	generation uint64
}

// New creates a tracker service. Start must be called before any
// fetching happens.
func New(cfg *config.Config, snapshots SnapshotProvider, historyProvider HistoryProvider) *Service {
	s := &Service{
		config:        cfg,
		snapshots:     snapshots,
		history:       historyProvider,
		updates:       events.NewSubscriptionManager(),
		metricsWriter: metrics.NewMetricsWriter(metrics.ServiceTracker),
		boardState:    StateIdle,
		chartState:    StateNoSelection,
	}
	s.scheduler = scheduler.New(
		cfg.Assets.UpdateInterval,
		func(ctx context.Context) {
			if err := s.refreshBoard(ctx); err != nil {
				log.Printf("Tracker: snapshot refresh failed: %v", err)
			}
		},
	)
	return s
}

// Start launches the periodic snapshot refresh, running the first cycle
// immediately.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	s.ctx = ctx
	s.mu.Unlock()
	s.scheduler.Start(ctx, true)
	return nil
}

// Stop halts the periodic refresh. In-flight history fetches are
// cancelled through the Start context.
func (s *Service) Stop() {
	s.scheduler.Stop()
}

// Subscribe returns a subscription signalled whenever the board or the
// chart changes.
func (s *Service) Subscribe() *events.Subscription {
	return s.updates.Subscribe()
}

// Refresh requests an immediate snapshot refresh. Requests arriving
// while a cycle is running collapse into a single follow-up cycle, so
// the latest data always wins.
func (s *Service) Refresh() {
	s.scheduler.TriggerNow()
}

// refreshBoard runs one snapshot fetch-rank-commit cycle. The scheduler
// runs cycles on a single goroutine, so cycles never overlap.
func (s *Service) refreshBoard(ctx context.Context) error {
	s.mu.Lock()
	s.boardState = StateFetching
	s.mu.Unlock()

	start := time.Now()
	snapshots, err := s.snapshots.FetchAssets(ctx)
	s.metricsWriter.RecordDataFetchCycle(time.Since(start))

	s.mu.Lock()
	if err != nil {
		// keep the previously committed board
		s.boardState = StateFailed
		s.boardErr = err.Error()
		s.mu.Unlock()
		s.updates.Emit(ctx)
		return err
	}

	ranked := ranking.Rank(snapshots, s.config.Ranking)
	s.ranked = ranked
	s.noMatches = len(ranked) == 0
	s.boardState = StateReady
	s.boardErr = ""
	s.updatedAt = time.Now()
	s.mu.Unlock()

	s.metricsWriter.RecordRankedListSize(len(ranked))
	s.updates.Emit(ctx)
	return nil
}

// Select changes the selected asset and triggers a history fetch for
// it. Selecting the already-selected asset is a no-op. The first
// selection defaults the range to 24H.
func (s *Service) Select(assetID string) {
	s.mu.Lock()
	if assetID == "" || s.selection.AssetID == assetID {
		s.mu.Unlock()
		return
	}
	s.selection.AssetID = assetID
	if s.selection.Range == "" {
		s.selection.Range = history.Range24H
	}
	ctx := s.startHistoryFetchLocked()
	s.mu.Unlock()
	s.updates.Emit(ctx)
}

// SetRange changes the selected time range and, if an asset is
// selected, triggers a history fetch. Setting the current range again
// is a no-op. Unknown tokens are rejected.
func (s *Service) SetRange(token history.RangeToken) error {
	if !history.KnownRange(token) {
		return history.ErrUnknownRange(token)
	}
	s.mu.Lock()
	if s.selection.Range == token {
		s.mu.Unlock()
		return nil
	}
	s.selection.Range = token
	if s.selection.AssetID == "" {
		s.mu.Unlock()
		return nil
	}
	ctx := s.startHistoryFetchLocked()
	s.mu.Unlock()
	s.updates.Emit(ctx)
	return nil
}

// startHistoryFetchLocked issues a history fetch for the current
// selection. Caller holds s.mu. The fetch carries the generation
// captured here; by the time it completes a newer fetch may have been
// issued, in which case its result is discarded.
func (s *Service) startHistoryFetchLocked() context.Context {
	s.generation++
	gen := s.generation
	sel := s.selection
	s.chartState = StateFetching

	ctx := s.ctx
	if ctx == nil {
		ctx = context.Background()
	}

	go func() {
		series, err := s.history.Series(ctx, sel.AssetID, sel.Range)

		s.mu.Lock()
		if gen != s.generation {
			s.mu.Unlock()
			log.Printf("Tracker: discarding stale history result for %s/%s", sel.AssetID, sel.Range)
			s.metricsWriter.RecordStaleHistoryDrop()
			return
		}
		if err != nil {
			// keep the previously committed series
			s.chartState = StateFailed
			s.chartErr = err.Error()
			s.mu.Unlock()
			log.Printf("Tracker: history fetch failed for %s/%s: %v", sel.AssetID, sel.Range, err)
			s.updates.Emit(ctx)
			return
		}
		s.series = series
		s.chartState = StateReady
		s.chartErr = ""
		s.mu.Unlock()
		s.updates.Emit(ctx)
	}()

	return ctx
}

// Board returns a copy of the current ranked-board view.
func (s *Service) Board() Board {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ranked := make([]ranking.RankedAsset, len(s.ranked))
	copy(ranked, s.ranked)
	return Board{
		State:     s.boardState,
		Assets:    ranked,
		NoMatches: s.noMatches,
		LastError: s.boardErr,
		UpdatedAt: s.updatedAt,
	}
}

// Chart returns a copy of the current chart view.
func (s *Service) Chart() Chart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var series history.Series
	if s.series != nil {
		series = make(history.Series, len(s.series))
		copy(series, s.series)
	}
	return Chart{
		State:     s.chartState,
		Selection: s.selection,
		Series:    series,
		LastError: s.chartErr,
	}
}

// RankedAssetIDs returns the ids of the currently ranked assets in
// board order.
func (s *Service) RankedAssetIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.ranked))
	for _, asset := range s.ranked {
		ids = append(ids, asset.ID)
	}
	return ids
}
