package application

import (
	"github.com/rs/zerolog"

	"github.com/dreammattress/storefront/internal/catalog"
	"github.com/dreammattress/storefront/internal/config"
	"github.com/dreammattress/storefront/internal/productapi"
)

// Mock is an Application for tests. Each method calls its function field
// when set and otherwise returns a usable default.
type Mock struct {
	CatalogFunc      func() *catalog.Store
	ProductAPIFunc   func() (productapi.API, error)
	ConfigFunc       func() *config.Config
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string

	store *catalog.Store
}

var _ Application = (*Mock)(nil)

// Catalog returns the mock catalog, or a store shared across calls.
func (m *Mock) Catalog() *catalog.Store {
	if m.CatalogFunc != nil {
		return m.CatalogFunc()
	}
	if m.store == nil {
		m.store = catalog.New()
	}
	return m.store
}

// ProductAPI returns the mock API or an empty in-memory one.
func (m *Mock) ProductAPI() (productapi.API, error) {
	if m.ProductAPIFunc != nil {
		return m.ProductAPIFunc()
	}
	return productapi.NewMemory(), nil
}

// Config returns the mock config or a zero Config.
func (m *Mock) Config() *config.Config {
	if m.ConfigFunc != nil {
		return m.ConfigFunc()
	}
	return &config.Config{}
}

// Logger returns the mock logger or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns the mock format or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// Version returns "dev".
func (m *Mock) Version() string { return "dev" }

// Commit returns "unknown".
func (m *Mock) Commit() string { return "unknown" }

// Date returns "unknown".
func (m *Mock) Date() string { return "unknown" }

// BuiltBy returns "test".
func (m *Mock) BuiltBy() string { return "test" }
