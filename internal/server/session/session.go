// Package session keeps admin sessions in memory, keyed by an opaque
// cookie. Entries slide their expiry on every request and are purged by
// go-cache's janitor; nothing survives a restart.
package session

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/dreammattress/storefront/internal/admin"
	"github.com/dreammattress/storefront/pkg/constants"
)

// Store maps session ids to admin sessions.
type Store struct {
	store      *gocache.Cache
	secret     string
	ttl        time.Duration
	cookieName string
	secure     bool
	newID      func() string
}

// Option configures a Store.
type Option func(*Store)

// WithTTL sets the idle lifetime of a session.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithSecureCookie marks the session cookie Secure.
func WithSecureCookie(secure bool) Option {
	return func(s *Store) {
		s.secure = secure
	}
}

// WithIDGenerator overrides how session ids are minted.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// New creates a store whose sessions are guarded by secret.
func New(secret string, opts ...Option) *Store {
	s := &Store{
		secret:     secret,
		ttl:        constants.DefaultSessionTTL,
		cookieName: constants.SessionCookieName,
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.store = gocache.New(s.ttl, constants.SessionCleanupInterval)
	return s
}

// Get returns the session for id and extends its lifetime.
func (s *Store) Get(id string) (*admin.Session, bool) {
	if id == "" {
		return nil, false
	}
	v, ok := s.store.Get(id)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*admin.Session)
	if !ok {
		return nil, false
	}
	s.store.Set(id, sess, gocache.DefaultExpiration)
	return sess, true
}

// Create mints a fresh logged out session.
func (s *Store) Create() (string, *admin.Session) {
	id := s.newID()
	sess := admin.NewSession(s.secret)
	s.store.Set(id, sess, gocache.DefaultExpiration)
	return id, sess
}

// Delete forgets a session.
func (s *Store) Delete(id string) {
	s.store.Delete(id)
}

// Count returns the number of live sessions.
func (s *Store) Count() int {
	return s.store.ItemCount()
}

// Load returns the request's session, creating one and setting the
// cookie when the request has none or its session expired.
func (s *Store) Load(w http.ResponseWriter, r *http.Request) *admin.Session {
	if c, err := r.Cookie(s.cookieName); err == nil {
		if sess, ok := s.Get(c.Value); ok {
			return sess
		}
	}

	id, sess := s.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    id,
		Path:     "/admin",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return sess
}

// Middleware attaches the request's admin session to its context.
func (s *Store) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := s.Load(w, r)
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
	})
}

type contextKey struct{}

// WithSession returns a context carrying sess.
func WithSession(ctx context.Context, sess *admin.Session) context.Context {
	return context.WithValue(ctx, contextKey{}, sess)
}

// FromContext returns the session attached by Middleware, if any.
func FromContext(ctx context.Context) (*admin.Session, bool) {
	sess, ok := ctx.Value(contextKey{}).(*admin.Session)
	return sess, ok && sess != nil
}
