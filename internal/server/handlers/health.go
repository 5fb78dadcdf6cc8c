package handlers

import (
	"net/http"

	"github.com/dreammattress/storefront/internal/server/response"
)

// HandleHealth handles GET /health (liveness probe).
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status":  "healthy",
		"service": "storefront",
	})
}

// HandleReady handles GET /ready. The storefront is ready once the
// catalog has been loaded from the product API at least once.
func (h *Handlers) HandleReady(w http.ResponseWriter, _ *http.Request) {
	if !h.store.Loaded() {
		response.ServiceUnavailable(w, "Catalog not loaded")
		return
	}

	response.OK(w, map[string]any{
		"status":            "ready",
		"products":          h.store.Len(),
		"sessions":          h.sessions.Count(),
		"websocket_clients": h.wsHub.ClientCount(),
		"sse_clients":       h.sseBroadcaster.ClientCount(),
	})
}
