package realtime

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"blogify/internal/core/posts"
)

// Connector maintains the websocket connection to the post store's
// change feed and pushes decoded events onto the Reconciler. The
// Reconciler stays transport-agnostic; this is the only place that knows
// about websockets.
type Connector struct {
	reconciler *posts.Reconciler
	wsURL      string
	table      string
}

// NewConnector creates a change-feed connector for the given table.
func NewConnector(reconciler *posts.Reconciler, wsURL, table string) *Connector {
	return &Connector{
		reconciler: reconciler,
		wsURL:      wsURL,
		table:      table,
	}
}

// Start consumes the change feed until ctx is cancelled, reconnecting
// with a fixed backoff when the transport drops.
func (c *Connector) Start(ctx context.Context) error {
	log.Printf("Starting realtime post feed: %s", c.wsURL)

	for {
		select {
		case <-ctx.Done():
			log.Println("Realtime post feed shutting down")
			c.reconciler.SetState(posts.StateDisconnected)
			return ctx.Err()
		default:
			if err := c.connect(ctx); err != nil {
				log.Printf("Realtime connection error: %v. Retrying in 5s...", err)
				c.reconciler.SetState(posts.StateDisconnected)
				time.Sleep(5 * time.Second)
				continue
			}
		}
	}
}

// connect establishes the websocket connection and runs the read loop.
func (c *Connector) connect(ctx context.Context) error {
	c.reconciler.SetState(posts.StateConnecting)

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.wsURL, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to change feed: %w", err)
	}
	defer func() {
		if closeErr := conn.Close(); closeErr != nil {
			log.Printf("Failed to close websocket connection: %v", closeErr)
		}
	}()

	c.reconciler.SetState(posts.StateConnected)
	log.Println("Connected to realtime post feed")

	// Read deadline plus ping/pong to detect dead connections
	if err := conn.SetReadDeadline(time.Now().Add(60 * time.Second)); err != nil {
		log.Printf("Failed to set read deadline: %v", err)
	}
	conn.SetPongHandler(func(string) error {
		if err := conn.SetReadDeadline(time.Now().Add(60 * time.Second)); err != nil {
			log.Printf("Failed to set read deadline in pong handler: %v", err)
		}
		return nil
	})

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	done := make(chan struct{})
	var closeOnce sync.Once

	go func() {
		for {
			select {
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(10*time.Second)); err != nil {
					log.Printf("Failed to send ping: %v", err)
					closeOnce.Do(func() { close(done) })
					return
				}
			case <-done:
				return
			case <-ctx.Done():
				closeOnce.Do(func() { close(done) })
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return fmt.Errorf("connection closed by ping failure")
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		_, message, err := conn.ReadMessage()
		if err != nil {
			closeOnce.Do(func() { close(done) })
			return fmt.Errorf("read error: %w", err)
		}

		ev, ok, err := DecodeEvent(message, c.table)
		if err != nil {
			log.Printf("Failed to parse realtime event: %v", err)
			continue
		}
		if !ok {
			continue
		}

		if !c.reconciler.Submit(ev) {
			return fmt.Errorf("reconciler closed")
		}
	}
}
