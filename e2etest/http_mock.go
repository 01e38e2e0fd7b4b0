package e2etest

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

// syncWSConn encapsulates a WebSocket connection with mutex protection
type syncWSConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// MockAsset is one asset row served by the mock assets endpoint
type MockAsset struct {
	ID                string `json:"id"`
	Rank              string `json:"rank"`
	Symbol            string `json:"symbol"`
	Name              string `json:"name"`
	Supply            string `json:"supply"`
	MaxSupply         string `json:"maxSupply"`
	MarketCapUSD      string `json:"marketCapUsd"`
	VolumeUSD24Hr     string `json:"volumeUsd24Hr"`
	PriceUSD          string `json:"priceUsd"`
	ChangePercent24Hr string `json:"changePercent24Hr"`
}

// MockHistoryPoint is one history sample served by the mock history endpoint
type MockHistoryPoint struct {
	PriceUSD string `json:"priceUsd"`
	Time     int64  `json:"time"`
	Date     string `json:"date"`
}

// MockCoinCap mimics the CoinCap REST and WebSocket APIs for tests
type MockCoinCap struct {
	server   *httptest.Server
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	assets  []MockAsset
	history map[string][]MockHistoryPoint
	wsConns []*syncWSConn

	AssetsRequests  atomic.Int32
	HistoryRequests atomic.Int32
}

// NewMockCoinCap creates a mock server with the given asset rows
func NewMockCoinCap(assets []MockAsset) *MockCoinCap {
	ms := &MockCoinCap{
		assets:  assets,
		history: make(map[string][]MockHistoryPoint),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", ms.handleRequest)
	ms.server = httptest.NewServer(mux)

	return ms
}

// URL returns the REST base URL
func (ms *MockCoinCap) URL() string {
	return ms.server.URL
}

// WSURL returns the WebSocket base URL
func (ms *MockCoinCap) WSURL() string {
	return strings.Replace(ms.server.URL, "http://", "ws://", 1)
}

// Close shuts down the server and all WebSocket connections
func (ms *MockCoinCap) Close() {
	ms.mu.Lock()
	for _, syncConn := range ms.wsConns {
		syncConn.mu.Lock()
		syncConn.conn.Close()
		syncConn.mu.Unlock()
	}
	ms.wsConns = nil
	ms.mu.Unlock()

	ms.server.Close()
}

// SetAssets replaces the asset rows served by the assets endpoint
func (ms *MockCoinCap) SetAssets(assets []MockAsset) {
	ms.mu.Lock()
	ms.assets = assets
	ms.mu.Unlock()
}

// SetHistory sets the history points served for one asset id
func (ms *MockCoinCap) SetHistory(assetID string, points []MockHistoryPoint) {
	ms.mu.Lock()
	ms.history[assetID] = points
	ms.mu.Unlock()
}

// BroadcastPrices pushes one price update to all connected WebSocket clients
func (ms *MockCoinCap) BroadcastPrices(prices map[string]string) {
	payload, err := json.Marshal(prices)
	if err != nil {
		return
	}

	ms.mu.RLock()
	conns := make([]*syncWSConn, len(ms.wsConns))
	copy(conns, ms.wsConns)
	ms.mu.RUnlock()

	for _, syncConn := range conns {
		syncConn.mu.Lock()
		if err := syncConn.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Printf("MockCoinCap: failed to write price update: %v", err)
		}
		syncConn.mu.Unlock()
	}
}

func (ms *MockCoinCap) handleRequest(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	switch {
	case path == "/prices":
		ms.handleWebSocket(w, r)
	case path == "/v2/assets":
		ms.handleAssets(w, r)
	case strings.HasPrefix(path, "/v2/assets/") && strings.HasSuffix(path, "/history"):
		ms.handleHistory(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (ms *MockCoinCap) handleAssets(w http.ResponseWriter, r *http.Request) {
	ms.AssetsRequests.Add(1)

	ms.mu.RLock()
	response := map[string]interface{}{
		"data":      ms.assets,
		"timestamp": time.Now().UnixMilli(),
	}
	ms.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("MockCoinCap: failed to encode assets response: %v", err)
	}
}

func (ms *MockCoinCap) handleHistory(w http.ResponseWriter, r *http.Request) {
	ms.HistoryRequests.Add(1)

	assetID := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/v2/assets/"), "/history")
	if r.URL.Query().Get("interval") == "" {
		http.Error(w, `{"error":"missing interval"}`, http.StatusBadRequest)
		return
	}

	ms.mu.RLock()
	points, ok := ms.history[assetID]
	ms.mu.RUnlock()
	if !ok {
		http.Error(w, fmt.Sprintf(`{"error":"asset not found: %s"}`, assetID), http.StatusNotFound)
		return
	}

	response := map[string]interface{}{
		"data":      points,
		"timestamp": time.Now().UnixMilli(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("MockCoinCap: failed to encode history response: %v", err)
	}
}

func (ms *MockCoinCap) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := ms.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("MockCoinCap: failed to upgrade connection: %v", err)
		return
	}

	ms.mu.Lock()
	ms.wsConns = append(ms.wsConns, &syncWSConn{conn: conn})
	ms.mu.Unlock()
}
