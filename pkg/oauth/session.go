package oauth

import "sync"

// Status is the terminal-state machine of one login attempt.
type Status int

const (
	StatusPending Status = iota
	StatusCompleted
	StatusCancelled
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusCompleted:
		return "completed"
	case StatusCancelled:
		return "cancelled"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// Session is one in-flight login attempt. It is created when login is
// initiated, lives only in memory, and is single-use: exactly one
// transition out of Pending wins. The browser's own dismissal signal and
// the relay's callback race to make that transition; whichever arrives
// first decides the outcome, so a late cancel cannot clobber a login
// that already completed.
type Session struct {
	mu      sync.Mutex
	state   string
	authURL string
	status  Status
}

func newSession(state, authURL string) *Session {
	return &Session{state: state, authURL: authURL, status: StatusPending}
}

// State returns the CSRF state bound to this session.
func (s *Session) State() string {
	return s.state
}

// AuthURL returns the authorization URL the user agent must visit to
// complete this session.
func (s *Session) AuthURL() string {
	return s.authURL
}

// Status returns the session's current status.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Complete transitions Pending -> Completed. Returns false if the
// session already reached a terminal state.
func (s *Session) Complete() bool {
	return s.transition(StatusCompleted)
}

// Cancel transitions Pending -> Cancelled. Cancellation is not an
// error; it is the user closing the browser.
func (s *Session) Cancel() bool {
	return s.transition(StatusCancelled)
}

// Fail transitions Pending -> Failed.
func (s *Session) Fail() bool {
	return s.transition(StatusFailed)
}

func (s *Session) transition(to Status) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusPending {
		return false
	}
	s.status = to
	return true
}
