package stream

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/upsidescan/potential-tracker/assets"
)

// QuoteBook holds the latest streamed prices for a watched set of asset
// ids. The CoinCap prices feed pushes flat JSON objects mapping asset id
// to a decimal-formatted price.
type QuoteBook struct {
	mu sync.RWMutex
	// Watched asset ids
	watched map[string]struct{}
	// Latest price per watched asset id
	prices map[string]float64
}

// NewQuoteBook creates an empty QuoteBook
func NewQuoteBook() *QuoteBook {
	return &QuoteBook{
		watched: make(map[string]struct{}),
		prices:  make(map[string]float64),
	}
}

// SetWatchList replaces the watched asset set. Prices for assets that
// remain watched are kept. Returns true when the set actually changed.
func (qb *QuoteBook) SetWatchList(assetIDs []string) bool {
	qb.mu.Lock()
	defer qb.mu.Unlock()

	next := make(map[string]struct{}, len(assetIDs))
	for _, id := range assetIDs {
		next[id] = struct{}{}
	}

	changed := len(next) != len(qb.watched)
	if !changed {
		for id := range next {
			if _, ok := qb.watched[id]; !ok {
				changed = true
				break
			}
		}
	}
	if !changed {
		return false
	}

	for id := range qb.prices {
		if _, ok := next[id]; !ok {
			delete(qb.prices, id)
		}
	}
	qb.watched = next
	return true
}

// WatchList returns the watched asset ids in sorted order
func (qb *QuoteBook) WatchList() []string {
	qb.mu.RLock()
	defer qb.mu.RUnlock()

	ids := make([]string, 0, len(qb.watched))
	for id := range qb.watched {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// UpdateFromMessage applies one feed message. Unwatched assets and
// unparseable prices are skipped.
func (qb *QuoteBook) UpdateFromMessage(message []byte) error {
	var update map[string]string
	if err := json.Unmarshal(message, &update); err != nil {
		return fmt.Errorf("failed to unmarshal price message: %v", err)
	}

	qb.mu.Lock()
	defer qb.mu.Unlock()

	for id, raw := range update {
		if _, ok := qb.watched[id]; !ok {
			continue
		}
		price, ok := assets.ParseDecimal(raw)
		if !ok {
			continue
		}
		qb.prices[id] = price
	}
	return nil
}

// LatestPrices returns a copy of the current prices keyed by asset id
func (qb *QuoteBook) LatestPrices() map[string]float64 {
	qb.mu.RLock()
	defer qb.mu.RUnlock()

	pricesCopy := make(map[string]float64, len(qb.prices))
	for id, price := range qb.prices {
		pricesCopy[id] = price
	}
	return pricesCopy
}
