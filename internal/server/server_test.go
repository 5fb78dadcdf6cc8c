package server

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreammattress/storefront/cmd/application"
	"github.com/dreammattress/storefront/internal/catalog"
	"github.com/dreammattress/storefront/internal/productapi"
	"github.com/dreammattress/storefront/pkg/products"
)

func scenarioAPI() *productapi.Memory {
	return productapi.NewMemory(products.Product{
		LocalID:             "1",
		Name:                "Plush",
		Price:               499,
		DetailedDescription: "Hand-tufted comfort layers",
	})
}

// newTestServer starts a server backed by api and returns it with a
// client that keeps cookies and does not follow redirects.
func newTestServer(t *testing.T, api productapi.API) (*Server, *httptest.Server, *http.Client) {
	t.Helper()

	store := catalog.New()
	app := &application.Mock{
		CatalogFunc:    func() *catalog.Store { return store },
		ProductAPIFunc: func() (productapi.API, error) { return api, nil },
	}

	srv, err := New(app, DefaultConfig())
	require.NoError(t, err)
	srv.Start()

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return srv, ts, client
}

func fetch(t *testing.T, client *http.Client, method, target string, form url.Values) (*http.Response, string) {
	t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequest(method, target, body)
	require.NoError(t, err)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(data)
}

// TestServerInitialization checks that New, Start and Shutdown complete
// without blocking, since transports subscribe before the broker runs.
func TestServerInitialization(t *testing.T) {
	done := make(chan struct{})
	var srv *Server
	var newErr error

	go func() {
		srv, newErr = New(&application.Mock{}, DefaultConfig())
		if newErr == nil {
			srv.Start()
		}
		close(done)
	}()

	select {
	case <-done:
		require.NoError(t, newErr)
	case <-time.After(5 * time.Second):
		t.Fatal("server.New() deadlocked")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, srv.Shutdown(ctx))
}

func TestShutdownWithoutStart(t *testing.T) {
	srv, err := New(&application.Mock{}, DefaultConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, srv.Shutdown(ctx))
}

func TestAddr(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Host = "0.0.0.0"
	cfg.Port = 9000

	srv, err := New(&application.Mock{}, cfg)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9000", srv.Addr())
	hs := srv.HTTPServer()
	assert.Equal(t, cfg.WriteTimeout, hs.WriteTimeout)
}

func TestStorefrontScenario(t *testing.T) {
	srv, ts, client := newTestServer(t, scenarioAPI())
	require.NoError(t, srv.LoadCatalog(context.Background()))

	resp, body := fetch(t, client, http.MethodGet, ts.URL+"/products", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, strings.Count(body, `class="card"`))
	assert.Contains(t, body, "Plush")
	assert.Contains(t, body, "$499")

	resp, body = fetch(t, client, http.MethodGet, ts.URL+"/product/1", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Hand-tufted comfort layers")

	resp, body = fetch(t, client, http.MethodGet, ts.URL+"/product/999", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "Product Not Found")
}

func TestLoadCatalogFailureLeavesEmptyStore(t *testing.T) {
	api := scenarioAPI()
	api.FailWith("list", io.ErrUnexpectedEOF)
	srv, ts, client := newTestServer(t, api)

	assert.Error(t, srv.LoadCatalog(context.Background()))
	assert.Zero(t, srv.Catalog().Len())

	resp, _ := fetch(t, client, http.MethodGet, ts.URL+"/products", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = fetch(t, client, http.MethodGet, ts.URL+"/ready", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestRouting(t *testing.T) {
	_, ts, client := newTestServer(t, scenarioAPI())

	tests := []struct {
		name     string
		method   string
		path     string
		status   int
		location string
	}{
		{name: "home", method: http.MethodGet, path: "/", status: http.StatusOK},
		{name: "about", method: http.MethodGet, path: "/about", status: http.StatusOK},
		{name: "contact", method: http.MethodGet, path: "/contact", status: http.StatusOK},
		{name: "legacy preview", method: http.MethodGet, path: "/preview_page.html", status: http.StatusMovedPermanently, location: "/"},
		{name: "unknown path", method: http.MethodGet, path: "/beds", status: http.StatusFound, location: "/"},
		{name: "product without id", method: http.MethodGet, path: "/product/", status: http.StatusNotFound},
		{name: "favicon", method: http.MethodGet, path: "/favicon.ico", status: http.StatusNoContent},
		{name: "health", method: http.MethodGet, path: "/health", status: http.StatusOK},
		{name: "stylesheet", method: http.MethodGet, path: "/static/style.css", status: http.StatusOK},
		{name: "admin login page", method: http.MethodGet, path: "/admin", status: http.StatusOK},
		{name: "admin subpath", method: http.MethodGet, path: "/admin/settings", status: http.StatusSeeOther, location: "/admin"},
		{name: "login requires post", method: http.MethodGet, path: "/admin/login", status: http.StatusMethodNotAllowed},
		{name: "new product gated", method: http.MethodGet, path: "/admin/products/new", status: http.StatusSeeOther, location: "/admin"},
		{name: "delete gated", method: http.MethodPost, path: "/admin/products/1/delete", status: http.StatusSeeOther, location: "/admin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := fetch(t, client, tt.method, ts.URL+tt.path, nil)
			assert.Equal(t, tt.status, resp.StatusCode)
			if tt.location != "" {
				assert.Equal(t, tt.location, resp.Header.Get("Location"))
			}
			assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
		})
	}
}

func TestAdminFlow(t *testing.T) {
	api := scenarioAPI()
	srv, ts, client := newTestServer(t, api)
	require.NoError(t, srv.LoadCatalog(context.Background()))

	resp, body := fetch(t, client, http.MethodPost, ts.URL+"/admin/login", url.Values{"password": {"wrong"}})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "Incorrect password")

	resp, _ = fetch(t, client, http.MethodPost, ts.URL+"/admin/login", url.Values{"password": {"admin123"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, 2, api.Calls("list"), "login re-syncs")

	resp, _ = fetch(t, client, http.MethodPost, ts.URL+"/admin/products", url.Values{
		"action": {"save"},
		"name":   {"Queen Cloud"},
		"price":  {"799"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, 2, srv.Catalog().Len())

	_, body = fetch(t, client, http.MethodGet, ts.URL+"/admin", nil)
	assert.Contains(t, body, "Product added successfully!")
	assert.Contains(t, body, "Queen Cloud")

	resp, _ = fetch(t, client, http.MethodGet, ts.URL+"/admin/products/mem-1/edit", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = fetch(t, client, http.MethodPost, ts.URL+"/admin/products/mem-1/delete", url.Values{"confirm": {"no"}})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Zero(t, api.Calls("delete"))

	resp, _ = fetch(t, client, http.MethodPost, ts.URL+"/admin/products/mem-1/delete", url.Values{"confirm": {"yes"}})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, 1, api.Calls("delete"))
	assert.Equal(t, 1, srv.Catalog().Len())

	resp, _ = fetch(t, client, http.MethodPost, ts.URL+"/admin/logout", url.Values{})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)

	resp, _ = fetch(t, client, http.MethodGet, ts.URL+"/admin/products/new", nil)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode, "logged out again")
}

func TestCatalogChangesStreamOverSSE(t *testing.T) {
	srv, ts, _ := newTestServer(t, scenarioAPI())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/events/stream", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	require.Equal(t, "client.connected", nextEvent(t, reader))

	require.Eventually(t, func() bool { return srv.SSEBroadcaster().ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, srv.LoadCatalog(ctx))

	// The replace summary comes first, then the per-record diff.
	assert.Equal(t, "catalog.replaced", nextEvent(t, reader))
	assert.Equal(t, "product.added", nextEvent(t, reader))
}

// nextEvent reads lines until an event name appears.
func nextEvent(t *testing.T, r *bufio.Reader) string {
	t.Helper()
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		if name, ok := strings.CutPrefix(strings.TrimSpace(line), "event: "); ok {
			return name
		}
	}
}
