package middleware

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/dreammattress/storefront/internal/server/session"
)

// RequireAdmin lets a request through only when its session has passed
// the admin gate. Anyone else is sent back to the login page. It must run
// after the session middleware.
func RequireAdmin(loginPath string, logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := session.FromContext(r.Context())
			if !ok || !sess.Gate().LoggedIn() {
				logger.Warn().
					Str("path", r.URL.Path).
					Str("remote_addr", r.RemoteAddr).
					Msg("Admin access denied")
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
