// Package server wires the storefront HTTP server: pages, the admin
// panel and the realtime catalog streams.
package server

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/dreammattress/storefront/cmd/application"
	"github.com/dreammattress/storefront/internal/admin"
	"github.com/dreammattress/storefront/internal/catalog"
	"github.com/dreammattress/storefront/internal/productapi"
	"github.com/dreammattress/storefront/internal/server/events"
	"github.com/dreammattress/storefront/internal/server/events/adapters"
	"github.com/dreammattress/storefront/internal/server/handlers"
	"github.com/dreammattress/storefront/internal/server/session"
	"github.com/dreammattress/storefront/internal/server/sse"
	ws "github.com/dreammattress/storefront/internal/server/websocket"
	"github.com/dreammattress/storefront/internal/views"
	"github.com/dreammattress/storefront/pkg/errors"
	"github.com/dreammattress/storefront/pkg/logging"
	"github.com/dreammattress/storefront/pkg/products"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	api            productapi.API
	store          *catalog.Store
	broker         *events.Broker
	wsHub          *ws.Hub
	sseBroadcaster *sse.Broadcaster
	sessions       *session.Store
	handlers       *handlers.Handlers
	logger         *zerolog.Logger
	config         Config
	ctx            context.Context
	cancel         context.CancelFunc
	wg             sync.WaitGroup
	started        atomic.Bool
	startTime      time.Time
}

// New creates a new server instance with the given configuration.
func New(app application.Application, cfg Config) (*Server, error) {
	logger := app.Logger()
	defaults := DefaultConfig()
	if cfg.AdminPassword == "" {
		cfg.AdminPassword = defaults.AdminPassword
	}
	if cfg.SessionTTL == 0 {
		cfg.SessionTTL = defaults.SessionTTL
	}
	if cfg.WhatsAppNumber == "" {
		cfg.WhatsAppNumber = defaults.WhatsAppNumber
	}

	api, err := app.ProductAPI()
	if err != nil {
		return nil, errors.WrapResource("create", "product API client", "", err)
	}

	renderer, err := views.New(views.WithWhatsAppNumber(cfg.WhatsAppNumber))
	if err != nil {
		return nil, errors.WrapResource("load", "templates", "", err)
	}

	broker := events.NewBroker(logger)
	wsHub := ws.NewHub(logger)
	sseBroadcaster := sse.NewBroadcaster(logger)

	broker.Subscribe("websocket", adapters.WebSocket(wsHub))
	broker.Subscribe("sse", adapters.SSE(sseBroadcaster))

	store := app.Catalog()
	sessions := session.New(cfg.AdminPassword,
		session.WithTTL(cfg.SessionTTL),
		session.WithSecureCookie(cfg.SecureCookie),
	)

	ctx, cancel := context.WithCancel(context.Background())

	s := &Server{
		api:            api,
		store:          store,
		broker:         broker,
		wsHub:          wsHub,
		sseBroadcaster: sseBroadcaster,
		sessions:       sessions,
		logger:         logger,
		config:         cfg,
		ctx:            ctx,
		cancel:         cancel,
		startTime:      time.Now(),
	}

	s.handlers = handlers.New(handlers.Options{
		Store:          store,
		Workflow:       admin.NewWorkflow(api, store),
		Sessions:       sessions,
		Views:          renderer,
		WSHub:          wsHub,
		SSEBroadcaster: sseBroadcaster,
		Upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		Logger:         logger,
		WhatsAppNumber: cfg.WhatsAppNumber,
	})

	s.connectHooks()
	logger.Debug().Msg("Server instance created")
	return s, nil
}

// connectHooks publishes catalog changes to the event broker.
func (s *Server) connectHooks() {
	s.store.OnProductAdded(func(p products.Product) {
		s.broker.Publish(events.ProductAdded, events.ProductRef{ID: p.ID(), Name: p.Name})
	})
	s.store.OnProductUpdated(func(_, updated products.Product) {
		s.broker.Publish(events.ProductUpdated, events.ProductRef{ID: updated.ID(), Name: updated.Name})
	})
	s.store.OnProductRemoved(func(p products.Product) {
		s.broker.Publish(events.ProductDeleted, events.ProductRef{ID: p.ID(), Name: p.Name})
	})
	s.store.OnReplace(func(list []products.Product) {
		s.broker.Publish(events.CatalogReplaced, events.CatalogSummary{Count: len(list)})
		s.logger.Debug().Int("products", len(list)).Msg("Catalog replaced event published")
	})
}

// LoadCatalog performs the initial product listing. A failure is logged
// and leaves the catalog empty; the storefront still serves.
func (s *Server) LoadCatalog(ctx context.Context) error {
	ctx = logging.WithLogger(logging.WithOperation(ctx, "load"), s.logger)
	if err := catalog.Sync(ctx, s.store, s.api); err != nil {
		logging.FromContext(ctx).Error().Err(err).Msg("Failed to load products")
		return err
	}
	return nil
}

// Start starts background services (broker, WebSocket hub, SSE broadcaster).
func (s *Server) Start() {
	if !s.started.CompareAndSwap(false, true) {
		return
	}
	for _, run := range []func(context.Context){s.broker.Run, s.wsHub.Run, s.sseBroadcaster.Run} {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			run(s.ctx)
		}()
	}
	s.logger.Debug().Msg("Background services started")
}

// Handler returns the configured http.Handler with middleware chain applied.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// HTTPServer returns an http.Server for the configured address.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.Addr(),
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}
}

// Addr is the host:port the server listens on.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))
}

// Shutdown stops the background services and waits for them to exit or
// for ctx to end.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("Shutting down server background services")
	s.cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info().Msg("Background services shut down")
		return nil
	case <-ctx.Done():
		s.logger.Warn().Msg("Background services shutdown timed out")
		return ctx.Err()
	}
}

// Catalog returns the served catalog store.
func (s *Server) Catalog() *catalog.Store {
	return s.store
}

// Sessions returns the admin session store.
func (s *Server) Sessions() *session.Store {
	return s.sessions
}

// WSHub returns the WebSocket hub.
func (s *Server) WSHub() *ws.Hub {
	return s.wsHub
}

// SSEBroadcaster returns the SSE broadcaster.
func (s *Server) SSEBroadcaster() *sse.Broadcaster {
	return s.sseBroadcaster
}

// Broker returns the event broker for publishing events.
func (s *Server) Broker() *events.Broker {
	return s.broker
}

// StartTime returns the server start time for uptime calculations.
func (s *Server) StartTime() time.Time {
	return s.startTime
}
