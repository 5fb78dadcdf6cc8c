// Package app wires the storefront CLI: configuration, logging, the product
// API client and the shared catalog. Commands receive the App through the
// application.Application interface.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/dreammattress/storefront/cmd/application"
	"github.com/dreammattress/storefront/internal/catalog"
	"github.com/dreammattress/storefront/internal/config"
	"github.com/dreammattress/storefront/internal/productapi"
	"github.com/dreammattress/storefront/pkg/errors"
)

// Build identifies the binary. main fills it from ldflags.
type Build struct {
	Version string
	Commit  string
	Date    string
	BuiltBy string
}

// App holds the dependencies shared by every storefront command.
type App struct {
	build Build

	viper  *viper.Viper
	flags  *Flags
	config *config.Config
	logger *zerolog.Logger
	store  *catalog.Store

	mu  sync.Mutex // guards api
	api productapi.API
}

var _ application.Application = (*App)(nil)

// New loads configuration from the default locations and builds the
// logger. Options run last and may replace any dependency.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	a := &App{
		build: Build{Version: version, Commit: commit, Date: date, BuiltBy: builtBy},
		viper: viper.New(),
		flags: &Flags{},
		store: catalog.New(),
	}

	cfg, err := LoadConfig(a.viper, "")
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	a.config = cfg
	logger := NewLogger(cfg, a.flags)
	a.logger = &logger

	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func (a *App) Version() string { return a.build.Version }
func (a *App) Commit() string  { return a.build.Commit }
func (a *App) Date() string    { return a.build.Date }
func (a *App) BuiltBy() string { return a.build.BuiltBy }

func (a *App) Config() *config.Config  { return a.config }
func (a *App) Logger() *zerolog.Logger { return a.logger }
func (a *App) Catalog() *catalog.Store { return a.store }

// OutputFormat is the --format value. Empty means detect from stdout.
func (a *App) OutputFormat() string { return a.flags.Format }

// ProductAPI returns the shared product API client, building it from the
// api.* settings on first use.
func (a *App) ProductAPI() (productapi.API, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.api == nil {
		api := a.config.API
		if api.BaseURL == "" {
			return nil, errors.NewConfigError("api", "base_url is required", nil)
		}
		a.api = productapi.New(api.BaseURL,
			productapi.WithTimeout(api.Timeout),
			productapi.WithToken(api.Token),
		)
	}
	return a.api, nil
}

// reload re-reads configuration after flags are parsed and rebuilds the
// logger. A client created before the reload is dropped.
func (a *App) reload(file string) error {
	if file != "" {
		config.Prepare(a.viper, file)
	}
	cfg, err := config.Load(a.viper)
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.config = cfg
	if _, ok := a.api.(*productapi.Client); ok {
		a.api = nil
	}
	a.mu.Unlock()

	logger := NewLogger(cfg, a.flags)
	a.logger = &logger
	return nil
}

// Shutdown drops the product API client. It fails only when ctx has
// already expired.
func (a *App) Shutdown(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	a.logger.Debug().Msg("Shutting down application")

	a.mu.Lock()
	a.api = nil
	a.mu.Unlock()
	return nil
}

// Option configures an App.
type Option func(*App) error

func set(apply func(*App)) Option {
	return func(a *App) error {
		apply(a)
		return nil
	}
}

// WithConfig replaces the loaded configuration.
func WithConfig(cfg *config.Config) Option { return set(func(a *App) { a.config = cfg }) }

func WithLogger(logger *zerolog.Logger) Option { return set(func(a *App) { a.logger = logger }) }

// WithProductAPI injects an API, usually productapi.Memory in tests. An
// injected API survives configuration reloads.
func WithProductAPI(api productapi.API) Option { return set(func(a *App) { a.api = api }) }

func WithCatalog(store *catalog.Store) Option { return set(func(a *App) { a.store = store }) }
