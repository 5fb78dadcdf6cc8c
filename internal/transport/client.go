// Package transport is the JSON-over-HTTP plumbing used to talk to the
// product API: request construction, optional authentication, and uniform
// status handling where every non-2xx answer is a failure.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/dreammattress/storefront/pkg/errors"
)

// Client wraps an http.Client with JSON defaults and an Authenticator.
type Client struct {
	http *http.Client
	auth Authenticator
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds every request. Zero means no client-side timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithHTTPClient swaps the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithAuthenticator sets how requests are authenticated.
func WithAuthenticator(auth Authenticator) Option {
	return func(c *Client) {
		if auth != nil {
			c.auth = auth
		}
	}
}

// New creates a transport client. With no options it never times out on its
// own and sends no credentials.
func New(opts ...Option) *Client {
	c := &Client{
		http: &http.Client{},
		auth: &NoAuth{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do sends a request whose body, when non-nil, is encoded as JSON.
func (c *Client) Do(ctx context.Context, method, url string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, errors.WrapParse("json", method+" "+url, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, errors.WrapResource("create", "request", method+" "+url, err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.auth.Apply(req)

	return c.http.Do(req)
}
