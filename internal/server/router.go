package server

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/dreammattress/storefront/internal/server/handlers"
	"github.com/dreammattress/storefront/internal/server/middleware"
	"github.com/dreammattress/storefront/internal/views"
)

// setupRouter creates the HTTP handler with routes and middleware.
func (s *Server) setupRouter() http.Handler {
	mux := http.NewServeMux()
	s.registerRoutes(mux, s.handlers)

	return middleware.Chain(
		middleware.RequestID,
		middleware.Logger(s.logger),
		middleware.Recovery(s.logger),
	)(mux)
}

// registerRoutes registers all HTTP routes.
func (s *Server) registerRoutes(mux *http.ServeMux, h *handlers.Handlers) {
	// Favicon handler (return 204 No Content to avoid 404 logs)
	mux.HandleFunc("/favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// Probes
	mux.HandleFunc("/health", h.HandleHealth)
	mux.HandleFunc("/ready", h.HandleReady)

	// Assets
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(views.Static()))))

	// Real-time endpoints
	mux.HandleFunc("/events/stream", h.HandleSSE)
	mux.HandleFunc("/events/ws", h.HandleWebSocket)

	// Storefront pages
	mux.HandleFunc("/products", h.HandleProducts)
	mux.HandleFunc("/product/", func(w http.ResponseWriter, r *http.Request) {
		parts := splitPath(strings.TrimPrefix(r.URL.EscapedPath(), "/product/"))
		if len(parts) != 1 {
			h.HandleNotFound(w, r)
			return
		}
		h.HandleProduct(w, r, parts[0])
	})
	mux.HandleFunc("/about", h.HandleAbout)
	mux.HandleFunc("/contact", h.HandleContact)
	mux.HandleFunc("/preview_page.html", h.HandleLegacyPreview)

	// Admin panel
	admin := s.adminHandler(h)
	mux.Handle("/admin", admin)
	mux.Handle("/admin/", admin)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			h.HandleHome(w, r)
			return
		}
		h.HandleUnknown(w, r)
	})
}

// adminHandler routes /admin. Every admin request carries its session;
// product management additionally requires a logged in one.
func (s *Server) adminHandler(h *handlers.Handlers) http.Handler {
	requireAdmin := middleware.RequireAdmin(handlers.AdminPath, s.logger)
	products := requireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		routeProducts(w, r, h)
	}))

	mux := http.NewServeMux()
	mux.HandleFunc("/admin", h.HandleAdmin)
	mux.HandleFunc("/admin/login", postOnly(h.HandleLogin))
	mux.HandleFunc("/admin/logout", postOnly(h.HandleLogout))
	mux.Handle("/admin/products", products)
	mux.Handle("/admin/products/", products)
	mux.HandleFunc("/admin/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, handlers.AdminPath, http.StatusSeeOther)
	})

	return s.sessions.Middleware(mux)
}

// routeProducts dispatches /admin/products[/{id}[/edit|/delete]].
func routeProducts(w http.ResponseWriter, r *http.Request, h *handlers.Handlers) {
	parts := splitPath(strings.TrimPrefix(r.URL.EscapedPath(), "/admin/products"))

	switch {
	case len(parts) == 0:
		if r.Method == http.MethodPost {
			h.HandleCreateProduct(w, r)
			return
		}
		http.Redirect(w, r, handlers.AdminPath, http.StatusSeeOther)
		return

	case len(parts) == 1 && parts[0] == "new":
		if r.Method == http.MethodGet {
			h.HandleNewProduct(w, r)
			return
		}

	case len(parts) == 1:
		if r.Method == http.MethodPost {
			h.HandleUpdateProduct(w, r, parts[0])
			return
		}
		if r.Method == http.MethodGet {
			http.Redirect(w, r, r.URL.EscapedPath()+"/edit", http.StatusSeeOther)
			return
		}

	case len(parts) == 2 && parts[1] == "edit":
		if r.Method == http.MethodGet {
			h.HandleEditProduct(w, r, parts[0])
			return
		}

	case len(parts) == 2 && parts[1] == "delete":
		switch r.Method {
		case http.MethodGet:
			h.HandleConfirmDelete(w, r, parts[0])
			return
		case http.MethodPost:
			h.HandleDeleteProduct(w, r, parts[0])
			return
		}

	default:
		h.HandleNotFound(w, r)
		return
	}

	http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
}

func postOnly(fn http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		fn(w, r)
	}
}

// splitPath splits an escaped URL path into unescaped segments, dropping
// empty ones.
func splitPath(path string) []string {
	parts := []string{}
	for _, part := range strings.Split(path, "/") {
		if part == "" {
			continue
		}
		if unescaped, err := url.PathUnescape(part); err == nil {
			part = unescaped
		}
		parts = append(parts, part)
	}
	return parts
}
