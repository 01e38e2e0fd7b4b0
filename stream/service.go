package stream

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/upsidescan/potential-tracker/config"
)

const PRICES_FEED_PATH = "/prices"

// Service streams live prices for the currently ranked assets. The feed
// carries the asset set in the connection URL, so every watchlist change
// reconnects with a fresh URL.
type Service struct {
	config *config.Config
	quotes *QuoteBook

	mu      sync.Mutex
	ctx     context.Context
	client  *WebSocketClient
	running bool
}

// NewService creates a price stream service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
		quotes: NewQuoteBook(),
	}
}

// Start marks the service running. The connection is established once a
// non-empty watchlist arrives.
func (s *Service) Start(ctx context.Context) error {
	if !s.config.Stream.Enabled {
		log.Printf("Stream: disabled by config, not starting")
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctx = ctx
	s.running = true
	s.reconnectLocked()
	return nil
}

// Stop closes the feed connection
func (s *Service) Stop() {
	s.mu.Lock()
	client := s.client
	s.client = nil
	s.running = false
	s.mu.Unlock()

	if client != nil {
		client.Stop()
	}
}

// SetWatchList replaces the set of streamed assets. A no-op when the
// set is unchanged; otherwise the feed reconnects with the new set.
func (s *Service) SetWatchList(assetIDs []string) {
	if !s.quotes.SetWatchList(assetIDs) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.reconnectLocked()
}

// LatestPrices returns the latest streamed price per asset id
func (s *Service) LatestPrices() map[string]float64 {
	return s.quotes.LatestPrices()
}

// reconnectLocked tears down the current connection and, if the
// watchlist is non-empty, dials the feed for it. Caller holds s.mu.
func (s *Service) reconnectLocked() {
	if s.client != nil {
		s.client.Stop()
		s.client = nil
	}

	watchlist := s.quotes.WatchList()
	if len(watchlist) == 0 {
		return
	}

	wsURL := s.feedURL(watchlist)
	log.Printf("Stream: connecting for %d assets", len(watchlist))
	s.client = NewWebSocketClient(wsURL, func(message []byte) {
		if err := s.quotes.UpdateFromMessage(message); err != nil {
			log.Printf("Stream: %v", err)
		}
	})
	s.client.Start(s.ctx)
}

func (s *Service) feedURL(watchlist []string) string {
	return s.config.CoinCap.WSURL + PRICES_FEED_PATH + "?assets=" + strings.Join(watchlist, ",")
}
