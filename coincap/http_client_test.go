package coincap

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	requests []string
	retries  int32
}

func (h *recordingHandler) OnRequest(status string) { h.requests = append(h.requests, status) }
func (h *recordingHandler) OnRetry()                { atomic.AddInt32(&h.retries, 1) }

func fastRetryOptions() RetryOptions {
	opts := DefaultRetryOptions()
	opts.BaseBackoff = 5 * time.Millisecond
	return opts
}

func buildRequest(t *testing.T, serverURL string) *http.Request {
	t.Helper()
	req, err := NewRequestBuilder(serverURL, "/v2/assets").Build(context.Background())
	require.NoError(t, err)
	return req
}

func TestExecuteRequest_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	handler := &recordingHandler{}
	client := NewHTTPClientWithRetries(fastRetryOptions(), handler, nil)

	body, _, err := client.ExecuteRequest(buildRequest(t, server.URL))
	require.NoError(t, err)
	assert.Equal(t, `{"data":[]}`, string(body))
	assert.Equal(t, []string{"success"}, handler.requests)
}

func TestExecuteRequest_RetriesOnServerError(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	handler := &recordingHandler{}
	client := NewHTTPClientWithRetries(fastRetryOptions(), handler, nil)

	body, _, err := client.ExecuteRequest(buildRequest(t, server.URL))
	require.NoError(t, err)
	assert.Equal(t, `{"data":[]}`, string(body))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	assert.Equal(t, int32(2), atomic.LoadInt32(&handler.retries))
}

func TestExecuteRequest_NonRetryableStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such asset", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewHTTPClientWithRetries(fastRetryOptions(), nil, nil)

	_, _, err := client.ExecuteRequest(buildRequest(t, server.URL))
	require.Error(t, err)

	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Equal(t, http.StatusNotFound, netErr.StatusCode)
	assert.True(t, IsNetworkError(err))
}

func TestExecuteRequest_AllAttemptsFail(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	opts := fastRetryOptions()
	opts.MaxRetries = 2
	client := NewHTTPClientWithRetries(opts, nil, nil)

	_, _, err := client.ExecuteRequest(buildRequest(t, server.URL))
	require.Error(t, err)
	assert.True(t, IsNetworkError(err))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestExecuteRequest_UnreachableEndpoint(t *testing.T) {
	opts := fastRetryOptions()
	opts.MaxRetries = 2
	client := NewHTTPClientWithRetries(opts, nil, nil)

	// Reserved TEST-NET-1 address, nothing listens there
	req, err := NewRequestBuilder("http://192.0.2.1:9", "/v2/assets").Build(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	_, _, err = client.ExecuteRequest(req.WithContext(ctx))
	require.Error(t, err)
	assert.True(t, IsNetworkError(err))
}

func TestExecuteRequest_RateLimiterApplies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	// 60 rpm = 1 request/second; burst 1 forces a wait on the second call
	client := NewHTTPClientWithRetries(fastRetryOptions(), nil, NewLimiter(60, 1))

	_, _, err := client.ExecuteRequest(buildRequest(t, server.URL))
	require.NoError(t, err)

	start := time.Now()
	_, _, err = client.ExecuteRequest(buildRequest(t, server.URL))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 500*time.Millisecond)
}

func TestNewLimiter(t *testing.T) {
	assert.Nil(t, NewLimiter(0, 5))
	limiter := NewLimiter(120, 0)
	require.NotNil(t, limiter)
	assert.Equal(t, 1, limiter.Burst())
}
