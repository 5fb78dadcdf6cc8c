package devapi

import (
	"crypto/subtle"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dreammattress/storefront/internal/server/middleware"
	"github.com/dreammattress/storefront/internal/server/response"
	"github.com/dreammattress/storefront/pkg/constants"
	"github.com/dreammattress/storefront/pkg/errors"
	"github.com/dreammattress/storefront/pkg/logging"
	"github.com/dreammattress/storefront/pkg/products"
)

// maxBody caps request bodies; inlined images make products large.
const maxBody = constants.MaxUploadSize

// Server serves the product API over a Repo.
type Server struct {
	repo   *Repo
	token  string
	logger *zerolog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithToken requires "Authorization: Bearer <token>" on every request.
func WithToken(token string) Option {
	return func(s *Server) {
		s.token = token
	}
}

// NewServer creates a product API server.
func NewServer(repo *Repo, logger *zerolog.Logger, opts ...Option) *Server {
	s := &Server{repo: repo, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the API handler with logging and recovery applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(constants.ProductsPath, s.handleCollection)
	mux.HandleFunc(constants.ProductsPath+"/", s.handleItem)
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		response.OK(w, map[string]any{"status": "healthy", "service": "devapi"})
	})

	return middleware.Chain(
		middleware.RequestID,
		middleware.Logger(s.logger),
		middleware.Recovery(s.logger),
		s.authenticate,
	)(mux)
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.token == "" || r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}
		got, _ := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if subtle.ConstantTimeCompare([]byte(got), []byte(s.token)) != 1 {
			response.JSON(w, http.StatusUnauthorized, response.Fail("UNAUTHORIZED", "Missing or invalid token", ""))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handleCollection serves GET and POST /api/products.
func (s *Server) handleCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		list, err := s.repo.List(r.Context())
		if err != nil {
			s.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, list)

	case http.MethodPost:
		payload, err := decodeProduct(r)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		saved, err := s.repo.Create(r.Context(), payload)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		logging.FromContext(r.Context()).Info().Str("product_id", saved.ID()).Msg("Product created")
		writeJSON(w, http.StatusCreated, saved)

	default:
		response.MethodNotAllowed(w, r.Method)
	}
}

// handleItem serves GET, PUT and DELETE /api/products/{id}.
func (s *Server) handleItem(w http.ResponseWriter, r *http.Request) {
	id, err := url.PathUnescape(strings.TrimPrefix(r.URL.EscapedPath(), constants.ProductsPath+"/"))
	if err != nil || id == "" || strings.Contains(id, "/") {
		response.NotFound(w, "Product not found", "")
		return
	}
	ctx := logging.WithProduct(r.Context(), id)

	switch r.Method {
	case http.MethodGet:
		p, err := s.repo.Get(ctx, id)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, p)

	case http.MethodPut:
		payload, err := decodeProduct(r)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		saved, err := s.repo.Update(ctx, id, payload)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		logging.FromContext(ctx).Info().Msg("Product updated")
		writeJSON(w, http.StatusOK, saved)

	case http.MethodDelete:
		if err := s.repo.Delete(ctx, id); err != nil {
			s.fail(w, r, err)
			return
		}
		logging.FromContext(ctx).Info().Msg("Product deleted")
		w.WriteHeader(http.StatusNoContent)

	default:
		response.MethodNotAllowed(w, r.Method)
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	if response.StatusFor(err) >= http.StatusInternalServerError {
		logging.FromContext(r.Context()).Error().Err(err).Msg("Product API request failed")
	}
	response.ErrorFromType(w, err)
}

// decodeProduct reads a product body. Identifiers in the body are ignored.
func decodeProduct(r *http.Request) (products.Payload, error) {
	var p products.Product
	body := io.LimitReader(r.Body, maxBody)
	if err := json.NewDecoder(body).Decode(&p); err != nil {
		return products.Payload{}, errors.WrapParse("json", r.Method+" "+r.URL.Path, err)
	}
	if strings.TrimSpace(p.Name) == "" {
		return products.Payload{}, errors.NewValidationError("name", p.Name, "is required")
	}
	return p.Payload(), nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
