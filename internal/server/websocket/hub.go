// Package websocket pushes catalog change notifications over WebSocket
// connections.
package websocket

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	sendQueue      = 64
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 512
)

// Message is one frame sent to browsers, encoded as JSON.
type Message struct {
	Seq       uint64    `json:"seq,omitempty"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// Hub tracks connected clients. A client whose queue is full when a
// message arrives is disconnected rather than slowing everyone down.
type Hub struct {
	mu      sync.Mutex
	clients map[*Client]struct{}
	closed  bool
	done    chan struct{}
	logger  *zerolog.Logger
}

// NewHub creates a hub. Clients can register as soon as it exists.
func NewHub(logger *zerolog.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		done:    make(chan struct{}),
		logger:  logger,
	}
}

// Run blocks until ctx is canceled, then disconnects every client. Later
// registrations are refused.
func (h *Hub) Run(ctx context.Context) {
	<-ctx.Done()

	h.mu.Lock()
	h.closed = true
	for c := range h.clients {
		close(c.send)
		delete(h.clients, c)
	}
	h.mu.Unlock()

	close(h.done)
	h.logger.Info().Msg("WebSocket hub shut down")
}

// Register adds c. After shutdown its queue is closed immediately.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		close(c.send)
		return
	}
	h.clients[c] = struct{}{}
	total := len(h.clients)
	h.mu.Unlock()

	h.logger.Debug().Str("client_id", c.id).Int("total_clients", total).Msg("WebSocket client connected")
}

// Unregister removes c and closes its queue.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	if ok {
		delete(h.clients, c)
		close(c.send)
	}
	total := len(h.clients)
	h.mu.Unlock()

	if ok {
		h.logger.Debug().Str("client_id", c.id).Int("total_clients", total).Msg("WebSocket client disconnected")
	}
}

// Broadcast queues m for every client.
func (h *Hub) Broadcast(m Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- m:
		default:
			delete(h.clients, c)
			close(c.send)
			h.logger.Warn().Str("client_id", c.id).Msg("WebSocket client too slow, disconnected")
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Serve attaches conn as a client. The greeting is queued first so it is
// always the first frame the browser reads.
func (h *Hub) Serve(id string, conn *websocket.Conn, greeting Message) *Client {
	c := NewClient(id, h, conn)
	c.send <- greeting
	h.Register(c)
	go c.writeLoop()
	go c.readLoop()
	return c
}

// Client is one browser connection.
type Client struct {
	id   string
	hub  *Hub
	conn *websocket.Conn
	send chan Message
}

// NewClient creates a client with an empty send queue.
func NewClient(id string, hub *Hub, conn *websocket.Conn) *Client {
	return &Client{id: id, hub: hub, conn: conn, send: make(chan Message, sendQueue)}
}

// ID returns the client identifier used in logs.
func (c *Client) ID() string {
	return c.id
}

// readLoop discards incoming frames so pings and close frames are handled.
// Browsers have nothing to say to the storefront.
func (c *Client) readLoop() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.NextReader(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn().Err(err).Str("client_id", c.id).Msg("WebSocket read error")
			}
			return
		}
	}
}

// writeLoop sends queued messages and keepalive pings until the queue is
// closed or a write fails.
func (c *Client) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case m, open := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !open {
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
				return
			}
			if err := c.conn.WriteJSON(m); err != nil {
				c.hub.logger.Debug().Err(err).Str("client_id", c.id).Msg("WebSocket write failed")
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
