package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/dreammattress/storefront/internal/server/events"
	ws "github.com/dreammattress/storefront/internal/server/websocket"
)

// HandleWebSocket handles WebSocket connections at /events/ws.
func (h *Handlers) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	h.wsHub.Serve(uuid.NewString(), conn, ws.Message{
		Type:      string(events.ClientConnected),
		Timestamp: h.now(),
		Data: map[string]any{
			"message":  "Connected to catalog updates",
			"products": h.store.Len(),
		},
	})
}

// HandleSSE handles Server-Sent Events at /events/stream.
func (h *Handlers) HandleSSE(w http.ResponseWriter, r *http.Request) {
	h.sseBroadcaster.ServeHTTP(w, r)
}
