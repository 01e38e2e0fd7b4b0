package coincap

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// buildURL safely combines a base URL with a path
func buildURL(baseURL, path string) string {
	baseURL = strings.TrimRight(baseURL, "/")
	trimmedPath := strings.TrimLeft(path, "/")

	return baseURL + "/" + trimmedPath
}

// RequestBuilder implements the Builder pattern for CoinCap API requests
type RequestBuilder struct {
	baseURL   string
	apiPath   string
	params    map[string]string
	apiKey    string
	userAgent string
	headers   map[string]string
}

// NewRequestBuilder creates a new request builder for a CoinCap endpoint
func NewRequestBuilder(baseURL, apiPath string) *RequestBuilder {
	rb := &RequestBuilder{
		baseURL:   baseURL,
		apiPath:   apiPath,
		params:    make(map[string]string),
		headers:   make(map[string]string),
		userAgent: "Mozilla/5.0 Potential-Tracker",
	}

	rb.headers["Accept"] = "application/json"

	return rb
}

// With adds a custom parameter to the URL query
func (rb *RequestBuilder) With(key, value string) *RequestBuilder {
	rb.params[key] = value
	return rb
}

// WithLimit adds a limit parameter
func (rb *RequestBuilder) WithLimit(limit int) *RequestBuilder {
	if limit > 0 {
		rb.params["limit"] = strconv.Itoa(limit)
	}
	return rb
}

// WithInterval adds a sampling interval parameter
func (rb *RequestBuilder) WithInterval(interval string) *RequestBuilder {
	if interval != "" {
		rb.params["interval"] = interval
	}
	return rb
}

// WithWindow adds start/end epoch-millisecond bounds
func (rb *RequestBuilder) WithWindow(start, end int64) *RequestBuilder {
	rb.params["start"] = strconv.FormatInt(start, 10)
	rb.params["end"] = strconv.FormatInt(end, 10)
	return rb
}

// WithApiKey sets the optional bearer API key
func (rb *RequestBuilder) WithApiKey(apiKey string) *RequestBuilder {
	rb.apiKey = apiKey
	return rb
}

// WithUserAgent sets the User-Agent header
func (rb *RequestBuilder) WithUserAgent(userAgent string) *RequestBuilder {
	rb.userAgent = userAgent
	return rb
}

// BuildURL builds the complete URL for the request
func (rb *RequestBuilder) BuildURL() string {
	fullPath := buildURL(rb.baseURL, rb.apiPath)

	query := url.Values{}
	for key, value := range rb.params {
		query.Add(key, value)
	}

	finalURL := fullPath
	if queryString := query.Encode(); queryString != "" {
		finalURL = fmt.Sprintf("%s?%s", finalURL, queryString)
	}

	return finalURL
}

// Build creates an HTTP GET request for the configured endpoint
func (rb *RequestBuilder) Build(ctx context.Context) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rb.BuildURL(), nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", rb.userAgent)
	for name, value := range rb.headers {
		req.Header.Set(name, value)
	}

	if rb.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+rb.apiKey)
	}

	return req, nil
}
