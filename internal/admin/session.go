package admin

import (
	"sync"
	"time"
)

// Session is the admin state kept for one browser: its gate and the
// notice waiting to be shown.
type Session struct {
	mu     sync.Mutex
	gate   *Gate
	notice Notice
}

// NewSession returns a logged out session guarded by secret.
func NewSession(secret string) *Session {
	return &Session{gate: NewGate(secret)}
}

// Gate returns the session's gate.
func (s *Session) Gate() *Gate {
	return s.gate
}

// Post replaces the pending notice.
func (s *Session) Post(n Notice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notice = n
}

// Notice returns the notice to display at now. Failure notices are handed
// out once; success notices keep showing until they expire.
func (s *Session) Notice(now time.Time) (Notice, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.notice
	if !n.Active(now) {
		s.notice = Notice{}
		return Notice{}, false
	}
	if n.Blocking() {
		s.notice = Notice{}
	}
	return n, true
}
