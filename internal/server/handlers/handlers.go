// Package handlers implements the storefront's HTTP handlers: public
// pages, the gated admin panel, health probes and realtime streams.
package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/dreammattress/storefront/internal/admin"
	"github.com/dreammattress/storefront/internal/catalog"
	"github.com/dreammattress/storefront/internal/server/session"
	"github.com/dreammattress/storefront/internal/server/sse"
	"github.com/dreammattress/storefront/internal/views"
	ws "github.com/dreammattress/storefront/internal/server/websocket"
)

// Options carries the handler dependencies.
type Options struct {
	Store          *catalog.Store
	Workflow       *admin.Workflow
	Sessions       *session.Store
	Views          *views.Renderer
	WSHub          *ws.Hub
	SSEBroadcaster *sse.Broadcaster
	Upgrader       websocket.Upgrader
	Logger         *zerolog.Logger
	WhatsAppNumber string

	// Now overrides the clock used for notices.
	Now func() time.Time
}

// Handlers provides access to all HTTP handlers.
type Handlers struct {
	store          *catalog.Store
	workflow       *admin.Workflow
	sessions       *session.Store
	views          *views.Renderer
	wsHub          *ws.Hub
	sseBroadcaster *sse.Broadcaster
	upgrader       websocket.Upgrader
	logger         *zerolog.Logger
	whatsapp       string
	now            func() time.Time
}

// New creates a new Handlers instance.
func New(opts Options) *Handlers {
	h := &Handlers{
		store:          opts.Store,
		workflow:       opts.Workflow,
		sessions:       opts.Sessions,
		views:          opts.Views,
		wsHub:          opts.WSHub,
		sseBroadcaster: opts.SSEBroadcaster,
		upgrader:       opts.Upgrader,
		logger:         opts.Logger,
		whatsapp:       opts.WhatsAppNumber,
		now:            opts.Now,
	}
	if h.now == nil {
		h.now = time.Now
	}
	if h.logger == nil {
		nop := zerolog.Nop()
		h.logger = &nop
	}
	return h
}

// Sessions exposes the session store so the router can attach it.
func (h *Handlers) Sessions() *session.Store {
	return h.sessions
}

func (h *Handlers) render(w http.ResponseWriter, r *http.Request, status int, name string, page views.Page) {
	h.views.Render(w, r, status, name, page)
}

// readOnly rejects anything but GET and HEAD.
func readOnly(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return true
	}
	w.Header().Set("Allow", "GET, HEAD")
	http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	return false
}

func redirect(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, path, http.StatusSeeOther)
}
