package core

import (
	"context"
	"os"

	"github.com/upsidescan/potential-tracker/api"
	"github.com/upsidescan/potential-tracker/assets"
	"github.com/upsidescan/potential-tracker/cache"
	"github.com/upsidescan/potential-tracker/coincap"
	"github.com/upsidescan/potential-tracker/config"
	"github.com/upsidescan/potential-tracker/history"
	"github.com/upsidescan/potential-tracker/stream"
	"github.com/upsidescan/potential-tracker/tracker"
)

// Setup creates and registers all services
func Setup(ctx context.Context, cfg *config.Config) (*Registry, error) {
	registry := NewRegistry()

	// Create Cache service
	cacheService := cache.NewService(cfg.Cache)
	registry.Register(cacheService)

	// One shared limiter keeps all CoinCap traffic under the configured rate
	limiter := coincap.NewLimiter(cfg.CoinCap.RequestsPerMinute, cfg.CoinCap.Burst)

	// Snapshot client (not a service; owned by the tracker)
	assetsClient := assets.NewClient(cfg, limiter)

	// Create History service with cache dependency
	historyService := history.NewService(cacheService, cfg, limiter)
	registry.Register(historyService)

	// Create Tracker service driving the board and chart tracks
	trackerService := tracker.New(cfg, assetsClient, historyService)
	registry.Register(trackerService)

	// Create price stream service
	streamService := stream.NewService(cfg)
	registry.Register(streamService)

	// Keep the stream watchlist in step with the ranked board
	trackerService.Subscribe().Watch(ctx, func() {
		streamService.SetWatchList(trackerService.RankedAssetIDs())
	}, false)

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Create HTTP server and register it as a service
	server := api.New(port, trackerService, streamService, assetsClient, historyService)
	registry.Register(server)

	return registry, nil
}
