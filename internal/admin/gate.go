// Package admin implements the password gate and the product CRUD workflow
// behind /admin.
//
// The gate compares a single shared secret in plaintext. It keeps casual
// visitors out of the dashboard and nothing more: there is no hashing,
// lockout or rate limiting, and it must not be treated as a security
// boundary in a real deployment.
package admin

import "sync"

// IncorrectPassword is shown after a failed login attempt.
const IncorrectPassword = "Incorrect password"

// State is the gate position.
type State int

// Gate states.
const (
	LoggedOut State = iota
	LoggedIn
)

// String returns the state name.
func (s State) String() string {
	if s == LoggedIn {
		return "logged_in"
	}
	return "logged_out"
}

// Gate is the LoggedOut/LoggedIn state machine for one browser session.
type Gate struct {
	mu     sync.Mutex
	secret string
	state  State
	err    string
}

// NewGate returns a logged out gate guarded by secret.
func NewGate(secret string) *Gate {
	return &Gate{secret: secret}
}

// Submit checks password against the secret. A match logs in and clears
// any error; anything else stays logged out with IncorrectPassword set.
// It reports whether this call moved the gate from LoggedOut to LoggedIn.
func (g *Gate) Submit(password string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if password != g.secret {
		if g.state == LoggedOut {
			g.err = IncorrectPassword
		}
		return false
	}
	transitioned := g.state == LoggedOut
	g.state = LoggedIn
	g.err = ""
	return transitioned
}

// Logout returns the gate to LoggedOut.
func (g *Gate) Logout() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state = LoggedOut
	g.err = ""
}

// State returns the current state.
func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// LoggedIn reports whether the gate is open.
func (g *Gate) LoggedIn() bool {
	return g.State() == LoggedIn
}

// Error returns the inline login error, if any.
func (g *Gate) Error() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.err
}
