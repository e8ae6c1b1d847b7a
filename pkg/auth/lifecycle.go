// Package auth composes the credential store, the session coordinator,
// and callback processing into one authenticated/unauthenticated view.
package auth

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"snapnote/pkg/listener"
	"snapnote/pkg/oauth"
	"snapnote/pkg/store"
)

// ErrNoAccessToken is returned when a callback arrives without an
// access token; the login attempt failed.
var ErrNoAccessToken = errors.New("no access token received")

// State is the lifecycle's externally visible state. Every mutation is
// published as one transition.
type State struct {
	IsAuthenticated bool
	IsLoading       bool
	WorkspaceName   string
}

// Lifecycle is the single source of truth for "is this app logged in".
// The stored access token decides; everything else is derived.
type Lifecycle struct {
	store store.Store
	coord *oauth.Coordinator

	mu       sync.Mutex
	state    State
	onChange func(State)
}

// New creates a lifecycle in the loading state. Call CheckAuthStatus to
// resolve it against the store.
func New(s store.Store, coord *oauth.Coordinator) *Lifecycle {
	return &Lifecycle{
		store: s,
		coord: coord,
		state: State{IsLoading: true},
	}
}

// OnChange registers a subscriber for state transitions. The subscriber
// runs synchronously with the transition.
func (l *Lifecycle) OnChange(fn func(State)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onChange = fn
}

// State returns the current state.
func (l *Lifecycle) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

func (l *Lifecycle) setState(s State) {
	l.mu.Lock()
	l.state = s
	fn := l.onChange
	l.mu.Unlock()

	if fn != nil {
		fn(s)
	}
}

// CheckAuthStatus resolves the lifecycle against the store: a stored
// access token means authenticated. Storage errors resolve to
// unauthenticated rather than leaving the state loading forever.
func (l *Lifecycle) CheckAuthStatus() State {
	token, err := l.store.Get(store.KeyAccessToken)
	if err != nil {
		log.Printf("Error checking auth status: %v", err)
		l.setState(State{})
		return l.State()
	}

	workspaceName, err := l.store.Get(store.KeyWorkspaceName)
	if err != nil {
		log.Printf("Error reading workspace name: %v", err)
		workspaceName = ""
	}

	l.setState(State{
		IsAuthenticated: token != "",
		WorkspaceName:   workspaceName,
	})
	return l.State()
}

// Login starts a browser-based login. The returned session completes
// asynchronously when ProcessCallback runs; user cancellation and
// configuration errors are surfaced by the coordinator.
func (l *Lifecycle) Login() (*oauth.Session, error) {
	l.setState(State{IsLoading: true})

	session, err := l.coord.Login()
	if err != nil {
		l.setState(State{})
		return session, err
	}
	return session, nil
}

// Cancel marks the in-flight login cancelled (user dismissed the
// browser). A callback that already completed the session wins the
// race; in that case the authenticated state stands.
func (l *Lifecycle) Cancel() {
	session := l.coord.Current()
	if session == nil {
		return
	}
	if session.Cancel() {
		st := l.State()
		st.IsLoading = false
		l.setState(st)
	}
}

// ProcessCallback consumes a delivered token set. The access token is
// required; the rest is persisted opportunistically. Either way the
// lifecycle ends in a defined, non-loading state.
func (l *Lifecycle) ProcessCallback(tokens listener.TokenSet) error {
	if err := l.coord.VerifyState(tokens.State); err != nil {
		if session := l.coord.Current(); session != nil {
			session.Fail()
		}
		l.setState(State{})
		return err
	}

	if tokens.AccessToken == "" {
		if session := l.coord.Current(); session != nil {
			session.Fail()
		}
		l.setState(State{})
		return ErrNoAccessToken
	}

	if err := l.persistTokens(tokens); err != nil {
		log.Printf("Error handling OAuth callback: %v", err)
		if session := l.coord.Current(); session != nil {
			session.Fail()
		}
		st := l.State()
		st.IsLoading = false
		l.setState(st)
		return err
	}

	if session := l.coord.Current(); session != nil {
		session.Complete()
	}

	l.setState(State{
		IsAuthenticated: true,
		WorkspaceName:   tokens.WorkspaceName,
	})
	return nil
}

func (l *Lifecycle) persistTokens(tokens listener.TokenSet) error {
	if err := l.store.Set(store.KeyAccessToken, tokens.AccessToken); err != nil {
		return fmt.Errorf("failed to store access token: %w", err)
	}

	if tokens.RefreshToken != "" {
		if err := l.store.Set(store.KeyRefreshToken, tokens.RefreshToken); err != nil {
			return fmt.Errorf("failed to store refresh token: %w", err)
		}
	}

	// Workspace identity is only meaningful with both ids present; the
	// name alone is cosmetic.
	if tokens.BotID != "" && tokens.WorkspaceID != "" {
		if err := l.store.Set(store.KeyBotID, tokens.BotID); err != nil {
			return fmt.Errorf("failed to store bot id: %w", err)
		}
		if err := l.store.Set(store.KeyWorkspaceID, tokens.WorkspaceID); err != nil {
			return fmt.Errorf("failed to store workspace id: %w", err)
		}
		if tokens.WorkspaceName != "" {
			if err := l.store.Set(store.KeyWorkspaceName, tokens.WorkspaceName); err != nil {
				return fmt.Errorf("failed to store workspace name: %w", err)
			}
		}
	}
	return nil
}

// Logout clears all stored auth keys and flips to unauthenticated. The
// token is not revoked with Notion; logout is local only.
func (l *Lifecycle) Logout() error {
	err := store.ClearAuth(l.store)
	l.setState(State{})
	return err
}
