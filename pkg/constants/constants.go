// Package constants holds values shared across the storefront: defaults for
// the product API, the admin panel, and the HTTP server.
package constants

import "time"

// Product API defaults
const (
	// DefaultAPIBaseURL is where the product API listens in development.
	DefaultAPIBaseURL = "http://localhost:5000"

	// ProductsPath is the collection path of the product API.
	ProductsPath = "/api/products"

	// DefaultAPITimeout of zero leaves outbound calls bounded only by the request context.
	DefaultAPITimeout = time.Duration(0)
)

// Admin panel defaults
const (
	// DefaultAdminPassword is the shared admin secret. It is a placeholder, not a security boundary.
	DefaultAdminPassword = "admin123"

	// NoticeDuration is how long a success notice stays visible.
	NoticeDuration = 3 * time.Second

	// DefaultSessionTTL bounds how long an idle admin session is remembered.
	DefaultSessionTTL = 12 * time.Hour

	// SessionCleanupInterval is how often expired sessions are purged.
	SessionCleanupInterval = 10 * time.Minute

	// SessionCookieName names the cookie carrying the opaque session id.
	SessionCookieName = "dm_session"

	// MaxUploadSize caps multipart form bodies on admin writes.
	MaxUploadSize = 32 << 20
)

// Site defaults
const (
	// BrandName is shown in the navbar, footer and page titles.
	BrandName = "DreamMattress"

	// DefaultWhatsAppNumber is the demo request number.
	DefaultWhatsAppNumber = "1234567890"

	// PlaceholderImage is displayed when a product has no usable image.
	PlaceholderImage = "https://via.placeholder.com/400x300?text=No+Image"
)

// Server defaults
const (
	DefaultHost         = "localhost"
	DefaultPort         = 8080
	DefaultDevAPIPort   = 5000
	DefaultReadTimeout  = 10 * time.Second
	DefaultWriteTimeout = 30 * time.Second
	DefaultIdleTimeout  = 120 * time.Second

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout = 30 * time.Second
)

// File permission constants
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)
