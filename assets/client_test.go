package assets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/upsidescan/potential-tracker/coincap"
	"github.com/upsidescan/potential-tracker/config"
)

func newTestClient(serverURL string) *Client {
	cfg := config.DefaultConfig()
	cfg.CoinCap.BaseURL = serverURL
	cfg.Assets.Limit = 2
	return NewClient(cfg, nil)
}

func TestFetchAssets(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/assets", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("limit"))

		w.Write([]byte(`{
			"data": [
				{"id":"bitcoin","rank":"1","symbol":"BTC","name":"Bitcoin","supply":"19600000","maxSupply":"21000000","marketCapUsd":"850000000000","volumeUsd24Hr":"12000000000","priceUsd":"43367.12","changePercent24Hr":"1.53","vwap24Hr":"43100.5"},
				{"id":"ethereum","rank":"2","symbol":"ETH","name":"Ethereum","supply":"120000000","maxSupply":null,"marketCapUsd":"270000000000","volumeUsd24Hr":"8000000000","priceUsd":"2250.77","changePercent24Hr":"-0.82","vwap24Hr":"2248.9"}
			],
			"timestamp": 1700000000000
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	assert.False(t, client.Healthy())

	snapshots, err := client.FetchAssets(context.Background())
	require.NoError(t, err)
	require.Len(t, snapshots, 2)

	assert.Equal(t, "bitcoin", snapshots[0].ID)
	assert.Equal(t, "BTC", snapshots[0].Symbol)
	assert.Equal(t, "43367.12", snapshots[0].PriceUSD)

	// null maxSupply decodes to the empty string
	assert.Equal(t, "", snapshots[1].MaxSupply)

	assert.True(t, client.Healthy())
}

func TestFetchAssets_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := client.FetchAssets(ctx)
	require.Error(t, err)
	assert.True(t, coincap.IsNetworkError(err))
	assert.False(t, client.Healthy())
}

func TestFetchAssets_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": "not-an-array"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.FetchAssets(context.Background())
	assert.Error(t, err)
}

func TestFetchAssets_ApiKeyHeader(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	cfg := config.DefaultConfig()
	cfg.CoinCap.BaseURL = server.URL
	cfg.CoinCap.APIKey = "test-key"
	client := NewClient(cfg, nil)

	_, err := client.FetchAssets(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer test-key", gotAuth)
}
