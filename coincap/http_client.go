package coincap

import (
	"fmt"
	"io"
	"log"
	"math/rand"
	"net"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// IHttpStatusHandler is an interface for handling HTTP request statuses
type IHttpStatusHandler interface {
	// OnRequest handles a request with its status result
	OnRequest(status string)
	// OnRetry handles retry events
	OnRetry()
}

// RetryOptions configures retry behavior for HTTP requests
type RetryOptions struct {
	MaxRetries        int
	BaseBackoff       time.Duration
	LogPrefix         string
	ConnectionTimeout time.Duration // Timeout for establishing connection
	RequestTimeout    time.Duration // Total request timeout including reading response
}

// DefaultRetryOptions returns default retry options
func DefaultRetryOptions() RetryOptions {
	return RetryOptions{
		MaxRetries:        3,
		BaseBackoff:       1000 * time.Millisecond,
		LogPrefix:         "CoinCap",
		ConnectionTimeout: 10 * time.Second,
		RequestTimeout:    30 * time.Second,
	}
}

// HTTPClientWithRetries wraps an HTTP client with bounded retries, backoff
// with jitter and optional request rate limiting
type HTTPClientWithRetries struct {
	Client        *http.Client
	Opts          RetryOptions
	StatusHandler IHttpStatusHandler
	Limiter       *rate.Limiter
}

// NewHTTPClientWithRetries creates a new HTTP client with retry capabilities
func NewHTTPClientWithRetries(opts RetryOptions, handler IHttpStatusHandler, limiter *rate.Limiter) *HTTPClientWithRetries {
	client := &http.Client{
		Timeout: opts.RequestTimeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: opts.ConnectionTimeout,
			}).DialContext,
		},
	}

	return &HTTPClientWithRetries{
		Client:        client,
		Opts:          opts,
		StatusHandler: handler,
		Limiter:       limiter,
	}
}

// NewLimiter builds a rate limiter from a requests-per-minute budget.
// Returns nil (no limiting) when rpm is not positive.
func NewLimiter(requestsPerMinute, burst int) *rate.Limiter {
	if requestsPerMinute <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), burst)
}

// ExecuteRequest executes an HTTP request with retry logic. On success the
// response body is fully read and returned. All failure modes are reported
// as a NetworkError.
func (c *HTTPClientWithRetries) ExecuteRequest(req *http.Request) ([]byte, time.Duration, error) {
	var lastErr error

	for attempt := 0; attempt < c.Opts.MaxRetries; attempt++ {
		if attempt > 0 {
			log.Printf("%s: Retry %d/%d after error: %v",
				c.Opts.LogPrefix, attempt, c.Opts.MaxRetries-1, lastErr)

			if c.StatusHandler != nil {
				c.StatusHandler.OnRetry()
			}

			backoffDuration := calculateBackoffWithJitter(c.Opts.BaseBackoff, attempt)
			select {
			case <-req.Context().Done():
				return nil, 0, &NetworkError{URL: req.URL.String(), Err: req.Context().Err()}
			case <-time.After(backoffDuration):
			}
		}

		if c.Limiter != nil {
			if err := c.Limiter.Wait(req.Context()); err != nil {
				if c.StatusHandler != nil {
					c.StatusHandler.OnRequest("error")
				}
				return nil, 0, &NetworkError{URL: req.URL.String(), Err: fmt.Errorf("rate limiter wait failed: %w", err)}
			}
		}

		requestStart := time.Now()
		resp, err := c.Client.Do(req)
		requestDuration := time.Since(requestStart)

		if err != nil {
			lastErr = fmt.Errorf("request failed after %.2fs: %w", requestDuration.Seconds(), err)
			if c.StatusHandler != nil {
				c.StatusHandler.OnRequest("error")
			}
			continue
		}

		responseBody, err := processResponse(resp, requestDuration)
		if err != nil {
			if isRetryableStatus(resp.StatusCode) {
				lastErr = err
				status := "error"
				if resp.StatusCode == http.StatusTooManyRequests {
					status = "rate_limited"
				}
				if c.StatusHandler != nil {
					c.StatusHandler.OnRequest(status)
				}
				continue
			}

			if c.StatusHandler != nil {
				c.StatusHandler.OnRequest("error")
			}
			return nil, requestDuration, &NetworkError{
				URL:        req.URL.String(),
				StatusCode: resp.StatusCode,
				Err:        err,
			}
		}

		if c.StatusHandler != nil {
			c.StatusHandler.OnRequest("success")
		}
		return responseBody, requestDuration, nil
	}

	return nil, 0, &NetworkError{
		URL: req.URL.String(),
		Err: fmt.Errorf("all %d attempts failed, last error: %w", c.Opts.MaxRetries, lastErr),
	}
}

// calculateBackoffWithJitter calculates backoff duration with jitter for retries
func calculateBackoffWithJitter(baseBackoff time.Duration, attempt int) time.Duration {
	if attempt <= 0 {
		return baseBackoff
	}

	multiplier := uint(1) << uint(attempt-1)
	backoff := time.Duration(float64(baseBackoff) * float64(multiplier))
	jitter := time.Duration(rand.Int63n(int64(backoff / 2)))
	return backoff + jitter
}

// processResponse reads and validates the HTTP response
func processResponse(resp *http.Response, requestDuration time.Duration) ([]byte, error) {
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)

		if resp.StatusCode == http.StatusTooManyRequests {
			retryAfter := resp.Header.Get("Retry-After")
			return nil, fmt.Errorf("rate limit exceeded (status %d), retry after %s: %s",
				resp.StatusCode, retryAfter, string(body))
		}

		return nil, fmt.Errorf("API request failed with status %d after %.2fs: %s",
			resp.StatusCode, requestDuration.Seconds(), string(body))
	}

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	return responseBody, nil
}

// isRetryableStatus determines if a given HTTP status code should trigger a retry
func isRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests ||
		statusCode == http.StatusInternalServerError ||
		statusCode == http.StatusBadGateway ||
		statusCode == http.StatusServiceUnavailable ||
		statusCode == http.StatusGatewayTimeout
}
