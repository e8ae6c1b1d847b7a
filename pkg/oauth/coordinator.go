package oauth

import (
	"errors"
	"fmt"
	"sync"

	"snapnote/pkg/browser"
)

// ErrStateMismatch is returned when a callback carries a CSRF state that
// does not belong to the in-flight session.
var ErrStateMismatch = errors.New("callback state does not match login session")

// Coordinator owns the in-flight login session. Only one session exists
// at a time; starting a new login discards the previous one.
type Coordinator struct {
	cfg Config

	// openBrowser is swappable for tests.
	openBrowser func(url string) error

	mu      sync.Mutex
	current *Session
}

func NewCoordinator(cfg Config) *Coordinator {
	return &Coordinator{
		cfg:         cfg,
		openBrowser: browser.Open,
	}
}

// Begin validates configuration, generates CSRF state, and builds the
// authorization URL. No network traffic happens here; the returned URL
// is what the external user agent must visit.
func (c *Coordinator) Begin() (*Session, string, error) {
	if err := c.cfg.Validate(); err != nil {
		return nil, "", err
	}

	state, err := GenerateState()
	if err != nil {
		return nil, "", err
	}

	authURL := c.cfg.AuthCodeURL(state)
	session := newSession(state, authURL)

	c.mu.Lock()
	c.current = session
	c.mu.Unlock()

	return session, authURL, nil
}

// Login runs Begin and launches the external browser against the
// authorization URL. The session stays Pending until the callback
// listener or a user cancellation finishes it; the browser launch
// succeeding says nothing about the outcome.
func (c *Coordinator) Login() (*Session, error) {
	session, authURL, err := c.Begin()
	if err != nil {
		return nil, err
	}

	if err := c.openBrowser(authURL); err != nil {
		session.Fail()
		return session, fmt.Errorf("failed to open browser: %w", err)
	}
	return session, nil
}

// Current returns the in-flight session, or nil when no login is
// underway.
func (c *Coordinator) Current() *Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// VerifyState checks a callback's state parameter against the in-flight
// session. An empty callback state is accepted: some relays drop the
// parameter and the flow predates strict verification. A non-empty
// mismatch is rejected. With no session in flight the callback is taken
// at face value (deep links may arrive in a fresh process).
func (c *Coordinator) VerifyState(callbackState string) error {
	if callbackState == "" {
		return nil
	}
	session := c.Current()
	if session == nil {
		return nil
	}
	if session.State() != callbackState {
		return ErrStateMismatch
	}
	return nil
}
