package history

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"strconv"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/upsidescan/potential-tracker/coincap"
	"github.com/upsidescan/potential-tracker/config"
	"github.com/upsidescan/potential-tracker/metrics"
)

const (
	HISTORY_API_PATH_TEMPLATE = "/v2/assets/%s/history"
)

// Point is one raw historical price sample
type Point struct {
	PriceUSD string `json:"priceUsd"`
	Time     int64  `json:"time"`
	Date     string `json:"date"`
}

// Price returns the parsed price, or 0 when the text doesn't parse to a
// finite number
func (p *Point) Price() float64 {
	v, err := strconv.ParseFloat(p.PriceUSD, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

type historyResponse struct {
	Data []Point `json:"data"`
}

// Client fetches time-bounded, interval-sampled price history for one asset
type Client struct {
	config          *config.Config
	httpClient      *coincap.HTTPClientWithRetries
	successfulFetch atomic.Bool

	// now is swappable for tests
	now func() time.Time
}

// NewClient creates a new history client sharing the given request limiter
func NewClient(cfg *config.Config, limiter *rate.Limiter) *Client {
	retryOpts := coincap.DefaultRetryOptions()
	retryOpts.LogPrefix = "CoinCap-History"

	metricsWriter := metrics.NewMetricsWriter(metrics.ServiceHistory)

	return &Client{
		config:     cfg,
		httpClient: coincap.NewHTTPClientWithRetries(retryOpts, metricsWriter, limiter),
		now:        time.Now,
	}
}

// Healthy reports whether at least one fetch has succeeded
func (c *Client) Healthy() bool {
	return c.successfulFetch.Load()
}

// FetchHistory retrieves the full price history window for assetID sampled
// at the spec's interval, ordered by time. The window is
// [now - lookbackDays, now]. One request covers the whole window; the
// endpoint does not paginate. Returns a coincap.NetworkError on failure.
func (c *Client) FetchHistory(ctx context.Context, assetID string, spec RangeSpec) ([]Point, error) {
	if assetID == "" {
		return nil, fmt.Errorf("asset id is required")
	}

	start, end := spec.Window(c.now())
	apiPath := fmt.Sprintf(HISTORY_API_PATH_TEMPLATE, assetID)

	request, err := coincap.NewRequestBuilder(c.config.CoinCap.BaseURL, apiPath).
		WithInterval(spec.Interval).
		WithWindow(start, end).
		WithApiKey(c.config.CoinCap.APIKey).
		Build(ctx)
	if err != nil {
		return nil, err
	}

	body, _, err := c.httpClient.ExecuteRequest(request)
	if err != nil {
		return nil, err
	}

	var response historyResponse
	if err := json.Unmarshal(body, &response); err != nil {
		log.Printf("CoinCap-History: Error parsing JSON response: %v", err)
		return nil, err
	}

	log.Printf("CoinCap-History: Fetched %d points for %s over %s",
		len(response.Data), assetID, spec.Token)
	c.successfulFetch.Store(true)

	return response.Data, nil
}
