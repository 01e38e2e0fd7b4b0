package coincap

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestBuilder_BuildURL(t *testing.T) {
	rb := NewRequestBuilder("https://api.coincap.io", "/v2/assets")
	rb.WithLimit(200)

	u, err := url.Parse(rb.BuildURL())
	require.NoError(t, err)

	assert.Equal(t, "api.coincap.io", u.Host)
	assert.Equal(t, "/v2/assets", u.Path)
	assert.Equal(t, "200", u.Query().Get("limit"))
}

func TestRequestBuilder_TrailingSlashes(t *testing.T) {
	rb := NewRequestBuilder("https://api.coincap.io/", "v2/assets")
	assert.Equal(t, "https://api.coincap.io/v2/assets", rb.BuildURL())
}

func TestRequestBuilder_WindowAndInterval(t *testing.T) {
	rb := NewRequestBuilder("https://api.coincap.io", "/v2/assets/bitcoin/history").
		WithInterval("h1").
		WithWindow(1700000000000, 1700604800000)

	u, err := url.Parse(rb.BuildURL())
	require.NoError(t, err)

	assert.Equal(t, "h1", u.Query().Get("interval"))
	assert.Equal(t, "1700000000000", u.Query().Get("start"))
	assert.Equal(t, "1700604800000", u.Query().Get("end"))
}

func TestRequestBuilder_EmptyIntervalOmitted(t *testing.T) {
	rb := NewRequestBuilder("https://api.coincap.io", "/v2/assets").WithInterval("")

	u, err := url.Parse(rb.BuildURL())
	require.NoError(t, err)
	assert.False(t, u.Query().Has("interval"))
}

func TestRequestBuilder_Build(t *testing.T) {
	req, err := NewRequestBuilder("https://api.coincap.io", "/v2/assets").
		WithApiKey("secret").
		Build(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "GET", req.Method)
	assert.Equal(t, "Bearer secret", req.Header.Get("Authorization"))
	assert.Equal(t, "application/json", req.Header.Get("Accept"))
	assert.Contains(t, req.Header.Get("User-Agent"), "Potential-Tracker")
}

func TestRequestBuilder_NoApiKeyNoAuthHeader(t *testing.T) {
	req, err := NewRequestBuilder("https://api.coincap.io", "/v2/assets").
		Build(context.Background())
	require.NoError(t, err)
	assert.Empty(t, req.Header.Get("Authorization"))
}
