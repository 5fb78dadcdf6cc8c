// Package productapi is the client for the remote product API.
//
//	GET    /api/products       list
//	POST   /api/products       create (body without identifiers)
//	PUT    /api/products/{id}  update (all mutable fields)
//	DELETE /api/products/{id}  delete
//
// Any non-2xx status is a failure and surfaces as *errors.APIError.
// Nothing is retried.
package productapi

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dreammattress/storefront/internal/transport"
	"github.com/dreammattress/storefront/pkg/constants"
	"github.com/dreammattress/storefront/pkg/errors"
	"github.com/dreammattress/storefront/pkg/logging"
	"github.com/dreammattress/storefront/pkg/products"
)

// API is the set of product API operations the storefront uses.
type API interface {
	List(ctx context.Context) ([]products.Product, error)
	Create(ctx context.Context, p products.Product) (products.Product, error)
	Update(ctx context.Context, id string, p products.Product) (products.Product, error)
	Delete(ctx context.Context, id string) error
}

// Client talks to a product API over HTTP.
type Client struct {
	baseURL   string
	transport *transport.Client
}

// Option configures a Client.
type Option func(*options)

type options struct {
	timeout time.Duration
	token   string
	http    *http.Client
}

// WithTimeout bounds each call. Zero keeps calls bounded by context only.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithToken sends a bearer token with every call.
func WithToken(token string) Option {
	return func(o *options) { o.token = token }
}

// WithHTTPClient overrides the HTTP client, mostly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.http = hc }
}

// New creates a client for the API at baseURL (scheme and host, no path).
func New(baseURL string, opts ...Option) *Client {
	o := &options{timeout: constants.DefaultAPITimeout}
	for _, opt := range opts {
		opt(o)
	}

	topts := []transport.Option{
		transport.WithAuthenticator(transport.ForToken(o.token)),
	}
	if o.http != nil {
		topts = append(topts, transport.WithHTTPClient(o.http))
	}
	topts = append(topts, transport.WithTimeout(o.timeout))

	if baseURL == "" {
		baseURL = constants.DefaultAPIBaseURL
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		transport: transport.New(topts...),
	}
}

// BaseURL returns the API root the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) collectionURL() string {
	return c.baseURL + constants.ProductsPath
}

func (c *Client) itemURL(id string) string {
	return c.collectionURL() + "/" + url.PathEscape(id)
}

// List fetches every product in API order.
func (c *Client) List(ctx context.Context) ([]products.Product, error) {
	endpoint := c.collectionURL()
	resp, err := c.transport.Do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.WrapAPI("list", endpoint, err)
	}

	var list []products.Product
	if err := transport.DecodeResponse(resp, "list", &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []products.Product{}
	}

	logging.FromContext(ctx).Debug().
		Int("count", len(list)).
		Msg("Fetched products")
	return list, nil
}

// Create posts the draft without identifiers and returns the stored record.
func (c *Client) Create(ctx context.Context, p products.Product) (products.Product, error) {
	endpoint := c.collectionURL()
	resp, err := c.transport.Do(ctx, http.MethodPost, endpoint, p.Payload())
	if err != nil {
		return products.Product{}, errors.WrapAPI("create", endpoint, err)
	}

	var saved products.Product
	if err := transport.DecodeResponse(resp, "create", &saved); err != nil {
		return products.Product{}, err
	}
	return saved, nil
}

// Update replaces every mutable field of the record addressed by id.
func (c *Client) Update(ctx context.Context, id string, p products.Product) (products.Product, error) {
	if id == "" {
		return products.Product{}, errors.NewValidationError("id", id, "is required for update")
	}

	endpoint := c.itemURL(id)
	resp, err := c.transport.Do(ctx, http.MethodPut, endpoint, p.Payload())
	if err != nil {
		return products.Product{}, errors.WrapAPI("update", endpoint, err)
	}

	var saved products.Product
	if err := transport.DecodeResponse(resp, "update", &saved); err != nil {
		return products.Product{}, err
	}
	return saved, nil
}

// Delete removes the record addressed by id.
func (c *Client) Delete(ctx context.Context, id string) error {
	if id == "" {
		return errors.NewValidationError("id", id, "is required for delete")
	}

	endpoint := c.itemURL(id)
	resp, err := c.transport.Do(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return errors.WrapAPI("delete", endpoint, err)
	}
	return transport.CheckResponse(resp, "delete")
}
