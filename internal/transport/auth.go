package transport

import "net/http"

// Authenticator applies credentials to an outgoing request.
type Authenticator interface {
	Apply(req *http.Request)
}

// NoAuth sends no credentials.
type NoAuth struct{}

// Apply implements the Authenticator interface for NoAuth.
func (a *NoAuth) Apply(_ *http.Request) {}

// BearerAuth sends a bearer token.
type BearerAuth struct {
	Token string
}

// Apply implements the Authenticator interface for BearerAuth.
func (a *BearerAuth) Apply(req *http.Request) {
	if a.Token != "" {
		req.Header.Set("Authorization", "Bearer "+a.Token)
	}
}

// HeaderAuth sends a token in a custom header.
type HeaderAuth struct {
	Header string
	Token  string
}

// Apply implements the Authenticator interface for HeaderAuth.
func (a *HeaderAuth) Apply(req *http.Request) {
	if a.Header != "" && a.Token != "" {
		req.Header.Set(a.Header, a.Token)
	}
}

// ForToken returns BearerAuth for a non-empty token and NoAuth otherwise.
func ForToken(token string) Authenticator {
	if token == "" {
		return &NoAuth{}
	}
	return &BearerAuth{Token: token}
}
