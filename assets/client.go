package assets

import (
	"context"
	"encoding/json"
	"log"
	"sync/atomic"

	"golang.org/x/time/rate"

	"github.com/upsidescan/potential-tracker/coincap"
	"github.com/upsidescan/potential-tracker/config"
	"github.com/upsidescan/potential-tracker/metrics"
)

const (
	ASSETS_API_PATH = "/v2/assets"
)

// apiResponse is the wire shape of the assets list endpoint
type apiResponse struct {
	Data      []Snapshot `json:"data"`
	Timestamp int64      `json:"timestamp"`
}

// Client fetches the full current list of asset snapshots
type Client struct {
	config          *config.Config
	httpClient      *coincap.HTTPClientWithRetries
	successfulFetch atomic.Bool
}

// NewClient creates a new assets client sharing the given request limiter
func NewClient(cfg *config.Config, limiter *rate.Limiter) *Client {
	retryOpts := coincap.DefaultRetryOptions()
	retryOpts.LogPrefix = "CoinCap-Assets"

	metricsWriter := metrics.NewMetricsWriter(metrics.ServiceAssets)

	return &Client{
		config:     cfg,
		httpClient: coincap.NewHTTPClientWithRetries(retryOpts, metricsWriter, limiter),
	}
}

// Healthy reports whether at least one fetch has succeeded
func (c *Client) Healthy() bool {
	return c.successfulFetch.Load()
}

// FetchAssets retrieves the current full snapshot list. It returns a
// coincap.NetworkError when the endpoint is unreachable or answers with a
// non-success status; retry beyond the bounded HTTP-level retries is the
// caller's decision.
func (c *Client) FetchAssets(ctx context.Context) ([]Snapshot, error) {
	request, err := coincap.NewRequestBuilder(c.config.CoinCap.BaseURL, ASSETS_API_PATH).
		WithLimit(c.config.Assets.Limit).
		WithApiKey(c.config.CoinCap.APIKey).
		Build(ctx)
	if err != nil {
		return nil, err
	}

	body, _, err := c.httpClient.ExecuteRequest(request)
	if err != nil {
		return nil, err
	}

	var response apiResponse
	if err := json.Unmarshal(body, &response); err != nil {
		log.Printf("CoinCap-Assets: Error parsing JSON response: %v", err)
		return nil, err
	}

	log.Printf("CoinCap-Assets: Successfully fetched %d asset snapshots", len(response.Data))
	c.successfulFetch.Store(true)

	return response.Data, nil
}
