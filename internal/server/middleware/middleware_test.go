package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreammattress/storefront/pkg/logging"
)

func TestChain_ExecutionOrder(t *testing.T) {
	var log []string
	mark := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				log = append(log, "start-"+name)
				next.ServeHTTP(w, r)
				log = append(log, "end-"+name)
			})
		}
	}

	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		log = append(log, "handler")
		w.WriteHeader(http.StatusOK)
	})

	Chain(mark("1"), mark("2"))(handler).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"start-1", "start-2", "handler", "end-2", "end-1"}, log)
}

func TestRequestID(t *testing.T) {
	t.Run("generated", func(t *testing.T) {
		var seen string
		h := RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			seen = logging.RequestID(r.Context())
		}))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
	})

	t.Run("propagated", func(t *testing.T) {
		var seen string
		h := RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			seen = logging.RequestID(r.Context())
		}))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, "abc-123", seen)
		assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
	})
}

func TestLogger(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		status int
		level  string
	}{
		{name: "home page", method: http.MethodGet, path: "/", status: http.StatusOK, level: "info"},
		{name: "admin create", method: http.MethodPost, path: "/admin/products", status: http.StatusSeeOther, level: "info"},
		{name: "missing product", method: http.MethodGet, path: "/product/404", status: http.StatusNotFound, level: "info"},
		{name: "failure", method: http.MethodGet, path: "/ready", status: http.StatusServiceUnavailable, level: "warn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := zerolog.New(&buf)

			var ctxLogger *zerolog.Logger
			h := Logger(&logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ctxLogger = logging.FromContext(r.Context())
				w.WriteHeader(tt.status)
			}))

			req := httptest.NewRequest(tt.method, tt.path, nil)
			req.RemoteAddr = "192.168.1.1:12345"
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			assert.NotSame(t, logging.Default(), ctxLogger, "handler should see a request logger")

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, tt.method, entry["method"])
			assert.Equal(t, tt.path, entry["path"])
			assert.Equal(t, "192.168.1.1:12345", entry["remote_addr"])
			assert.Equal(t, float64(tt.status), entry["status"])
			assert.Equal(t, tt.level, entry["level"])
			assert.Equal(t, "HTTP request", entry["message"])
			assert.Contains(t, entry, "duration_ms")
		})
	}
}

func TestLogger_DefaultStatusAndRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	h := Chain(RequestID, Logger(&logger))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	req := httptest.NewRequest(http.MethodGet, "/about", nil)
	req.Header.Set(RequestIDHeader, "rid-1")
	h.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, float64(http.StatusOK), entry["status"])
	assert.Equal(t, "rid-1", entry["request_id"])
}

func TestResponseWriter_Flush(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rec, statusCode: http.StatusOK}

	var w http.ResponseWriter = rw
	f, ok := w.(http.Flusher)
	require.True(t, ok)
	f.Flush()
	assert.True(t, rec.Flushed)
	assert.Same(t, rec, rw.Unwrap())
}

func TestRecovery(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		accept      string
		panicValue  any
		status      int
		contentType string
		body        string
	}{
		{name: "no panic", path: "/", status: http.StatusOK},
		{name: "page panic", path: "/products", panicValue: "boom", status: http.StatusInternalServerError, contentType: "text/html; charset=utf-8", body: "Something went wrong"},
		{name: "health panic", path: "/health", panicValue: "boom", status: http.StatusInternalServerError, contentType: "application/json", body: "INTERNAL_ERROR"},
		{name: "json accept", path: "/products", accept: "application/json", panicValue: 42, status: http.StatusInternalServerError, contentType: "application/json", body: "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := logging.NewTestLogger(t)
			h := Recovery(log.Logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				if tt.panicValue != nil {
					panic(tt.panicValue)
				}
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.accept != "" {
				req.Header.Set("Accept", tt.accept)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.panicValue == nil {
				assert.False(t, log.Contains("Panic recovered"))
				return
			}
			assert.Equal(t, tt.contentType, rec.Header().Get("Content-Type"))
			assert.Contains(t, rec.Body.String(), tt.body)
			assert.True(t, log.Contains("Panic recovered"))
		})
	}
}

func TestRecovery_RepanicsAbortHandler(t *testing.T) {
	logger := zerolog.Nop()
	h := Recovery(&logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}
