package stream

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	PONG_TIMEOUT    = 60 * time.Second
	RECONNECT_DELAY = 5 * time.Second
)

// MessageCallback is a callback function for handling feed messages
type MessageCallback func(message []byte)

// WebSocketClient maintains one connection to the prices feed and
// reconnects on read failures until stopped.
type WebSocketClient struct {
	wsURL     string
	onMessage MessageCallback

	mu         sync.Mutex
	conn       *websocket.Conn
	cancelFunc context.CancelFunc
	loopWg     sync.WaitGroup
}

// NewWebSocketClient creates a client for the given feed URL
func NewWebSocketClient(wsURL string, onMessage MessageCallback) *WebSocketClient {
	return &WebSocketClient{
		wsURL:     wsURL,
		onMessage: onMessage,
	}
}

// Start launches the connect/read/reconnect loop
func (c *WebSocketClient) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	c.cancelFunc = cancel

	c.loopWg.Add(1)
	go c.run(ctx)
}

// Stop terminates the loop and closes the connection. Blocks until the
// loop has exited.
func (c *WebSocketClient) Stop() {
	if c.cancelFunc != nil {
		c.cancelFunc()
	}

	c.mu.Lock()
	if c.conn != nil {
		c.conn.Close()
	}
	c.mu.Unlock()

	c.loopWg.Wait()
}

func (c *WebSocketClient) run(ctx context.Context) {
	defer c.loopWg.Done()

	for {
		if ctx.Err() != nil {
			return
		}

		conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.wsURL, nil)
		if err != nil {
			log.Printf("Stream: failed to connect to %s: %v", c.wsURL, err)
			if !c.waitReconnect(ctx) {
				return
			}
			continue
		}

		c.mu.Lock()
		c.conn = conn
		c.mu.Unlock()

		c.setupPingPong(conn)
		c.readLoop(ctx, conn)
		conn.Close()

		if ctx.Err() != nil {
			return
		}
		log.Printf("Stream: connection to %s lost, reconnecting", c.wsURL)
		if !c.waitReconnect(ctx) {
			return
		}
	}
}

func (c *WebSocketClient) waitReconnect(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(RECONNECT_DELAY):
		return true
	}
}

// setupPingPong answers server pings and pushes out the read deadline
// on each one
func (c *WebSocketClient) setupPingPong(conn *websocket.Conn) {
	conn.SetPingHandler(func(appData string) error {
		if err := conn.SetReadDeadline(time.Now().Add(PONG_TIMEOUT)); err != nil {
			return fmt.Errorf("failed to set read deadline in ping handler: %v", err)
		}
		return conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(10*time.Second))
	})
}

// readLoop reads messages until the connection fails or ctx finishes
func (c *WebSocketClient) readLoop(ctx context.Context, conn *websocket.Conn) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
			if err := conn.SetReadDeadline(time.Now().Add(PONG_TIMEOUT)); err != nil {
				return
			}
			_, message, err := conn.ReadMessage()
			if err != nil {
				if ctx.Err() == nil && websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Printf("Stream: error reading message: %v", err)
				}
				return
			}
			c.onMessage(message)
		}
	}
}
