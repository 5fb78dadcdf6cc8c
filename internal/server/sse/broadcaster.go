// Package sse streams catalog change notifications to browsers with
// Server-Sent Events. Storefront pages subscribe to it and reload when
// the product list changes.
package sse

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

const (
	clientQueue = 64

	// keepAlive is how often an idle stream gets a comment line, which
	// keeps proxies from closing it.
	keepAlive = 25 * time.Second
)

// Event is one SSE frame.
type Event struct {
	Event string `json:"event,omitempty"`
	ID    string `json:"id,omitempty"`
	Data  any    `json:"data"`
}

// Broadcaster fans events out to every open stream.
type Broadcaster struct {
	mu      sync.Mutex
	clients map[chan Event]struct{}
	closed  bool
	done    chan struct{}
	seq     atomic.Uint64
	logger  *zerolog.Logger
	now     func() time.Time
}

// NewBroadcaster creates a broadcaster. Streams may attach before Run.
func NewBroadcaster(logger *zerolog.Logger) *Broadcaster {
	return &Broadcaster{
		clients: make(map[chan Event]struct{}),
		done:    make(chan struct{}),
		logger:  logger,
		now:     time.Now,
	}
}

// Run blocks until ctx is canceled, then ends every stream.
func (b *Broadcaster) Run(ctx context.Context) {
	<-ctx.Done()

	b.mu.Lock()
	b.closed = true
	for ch := range b.clients {
		close(ch)
		delete(b.clients, ch)
	}
	b.mu.Unlock()

	close(b.done)
	b.logger.Info().Msg("SSE broadcaster shut down")
}

// Broadcast queues event on every stream. Events without an ID are
// numbered so browsers can report the last one they saw. A stream whose
// queue is full misses the event.
func (b *Broadcaster) Broadcast(event Event) {
	if event.ID == "" {
		event.ID = strconv.FormatUint(b.seq.Add(1), 10)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.clients {
		select {
		case ch <- event:
		default:
			b.logger.Warn().Str("event", event.Event).Msg("SSE client queue full, event skipped")
		}
	}
}

// ClientCount returns the number of open streams.
func (b *Broadcaster) ClientCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.clients)
}

func (b *Broadcaster) attach(ch chan Event) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return false
	}
	b.clients[ch] = struct{}{}
	b.logger.Debug().Int("total_clients", len(b.clients)).Msg("SSE client connected")
	return true
}

func (b *Broadcaster) detach(ch chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.clients[ch]; !ok {
		return
	}
	delete(b.clients, ch)
	close(ch)
	b.logger.Debug().Int("total_clients", len(b.clients)).Msg("SSE client disconnected")
}

// ServeHTTP streams events to one client until it disconnects or the
// broadcaster shuts down.
func (b *Broadcaster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	ch := make(chan Event, clientQueue)
	if !b.attach(ch) {
		http.Error(w, "Event stream closed", http.StatusServiceUnavailable)
		return
	}
	defer b.detach(ch)

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")

	b.write(w, Event{
		Event: "client.connected",
		Data: map[string]any{
			"message":   "Connected to catalog updates",
			"timestamp": b.now().UTC(),
		},
	})
	flusher.Flush()

	ticker := time.NewTicker(keepAlive)
	defer ticker.Stop()

	for {
		select {
		case event, open := <-ch:
			if !open {
				return
			}
			b.write(w, event)
			flusher.Flush()
		case <-ticker.C:
			_, _ = io.WriteString(w, ": keepalive\n\n")
			flusher.Flush()
		case <-r.Context().Done():
			return
		}
	}
}

func (b *Broadcaster) write(w io.Writer, event Event) {
	data, err := json.Marshal(event.Data)
	if err != nil {
		b.logger.Error().Err(err).Str("event", event.Event).Msg("Failed to marshal SSE event data")
		return
	}
	if event.Event != "" {
		_, _ = fmt.Fprintf(w, "event: %s\n", event.Event)
	}
	if event.ID != "" {
		_, _ = fmt.Fprintf(w, "id: %s\n", event.ID)
	}
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}
