// Package application is the contract between storefront commands and
// the process that runs them. Commands take an Application so tests can
// hand them a Mock.
package application

import (
	"github.com/rs/zerolog"

	"github.com/dreammattress/storefront/internal/catalog"
	"github.com/dreammattress/storefront/internal/config"
	"github.com/dreammattress/storefront/internal/productapi"
)

// Application is implemented by cmd/storefront/app.App. Methods are
// safe for concurrent use.
type Application interface {
	Catalog() *catalog.Store

	// ProductAPI returns the remote product API, built lazily from api.*.
	ProductAPI() (productapi.API, error)

	Config() *config.Config
	Logger() *zerolog.Logger

	// OutputFormat is table, wide, json, yaml, or empty to detect.
	OutputFormat() string

	// Build metadata, set through ldflags.
	Version() string
	Commit() string
	Date() string
	BuiltBy() string
}
