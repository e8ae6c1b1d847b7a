// Package listener receives OAuth callbacks delivered by the relay.
// Two transports feed the same completion path: a loopback HTTP server
// for web redirects, and direct URL handling for custom-scheme deep
// links handed over by the OS.
package listener

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// CallbackPath is the path the relay redirects to, in both the deep
// link ({scheme}://oauth/callback) and the loopback URL.
const CallbackPath = "oauth/callback"

// TokenSet holds the token fields a callback can carry. Only
// AccessToken is required; everything else is optional.
type TokenSet struct {
	AccessToken   string
	RefreshToken  string
	BotID         string
	WorkspaceID   string
	WorkspaceName string
	WorkspaceIcon string
	State         string
}

func tokenSetFromQuery(q url.Values) TokenSet {
	return TokenSet{
		AccessToken:   q.Get("access_token"),
		RefreshToken:  q.Get("refresh_token"),
		BotID:         q.Get("bot_id"),
		WorkspaceID:   q.Get("workspace_id"),
		WorkspaceName: q.Get("workspace_name"),
		WorkspaceIcon: q.Get("workspace_icon"),
		State:         q.Get("state"),
	}
}

// ParseCallbackURL parses an incoming URL and extracts its token set.
// The second return value reports whether the URL is a callback at all;
// URLs on other paths are not errors, just not ours.
func ParseCallbackURL(raw string) (TokenSet, bool, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return TokenSet{}, false, fmt.Errorf("failed to parse callback URL: %w", err)
	}

	// In a custom-scheme URL ("snapnote://oauth/callback") the first
	// path segment parses as the host; normalize before matching.
	path := strings.Trim(u.Host+"/"+strings.Trim(u.Path, "/"), "/")
	if path != CallbackPath {
		return TokenSet{}, false, nil
	}
	return tokenSetFromQuery(u.Query()), true, nil
}

// Listener is a scoped callback subscription: Start acquires it, Stop
// releases it. The completion func runs once per delivered callback.
type Listener struct {
	addr     string
	complete func(TokenSet)

	mu  sync.Mutex
	srv *http.Server
	ln  net.Listener
}

// New creates a listener bound to addr (use "127.0.0.1:0" for an
// ephemeral port). complete is invoked for every callback received on
// either transport.
func New(addr string, complete func(TokenSet)) *Listener {
	return &Listener{addr: addr, complete: complete}
}

// Start binds the loopback server and begins serving the callback path.
// It returns the bound address, useful when an ephemeral port was
// requested.
func (l *Listener) Start() (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.srv != nil {
		return l.ln.Addr().String(), nil
	}

	ln, err := net.Listen("tcp", l.addr)
	if err != nil {
		return "", fmt.Errorf("failed to start callback listener: %w", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/"+CallbackPath, l.handleHTTP)

	srv := &http.Server{
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			// Serve only fails after Stop or a fatal accept error;
			// either way the subscription is over.
			_ = err
		}
	}()

	l.srv = srv
	l.ln = ln
	return ln.Addr().String(), nil
}

// Stop tears the subscription down. Safe to call more than once.
func (l *Listener) Stop(ctx context.Context) error {
	l.mu.Lock()
	srv := l.srv
	l.srv = nil
	l.ln = nil
	l.mu.Unlock()

	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

// HandleURL processes a deep-link activation: the OS hands the raw URL
// to the process and we feed it through the same completion path as the
// HTTP transport. URLs on other paths are ignored.
func (l *Listener) HandleURL(raw string) error {
	tokens, ok, err := ParseCallbackURL(raw)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	l.complete(tokens)
	return nil
}

func (l *Listener) handleHTTP(w http.ResponseWriter, r *http.Request) {
	tokens := tokenSetFromQuery(r.URL.Query())

	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, `<!DOCTYPE html>
<html>
<head><title>Completing authentication</title></head>
<body style="font-family: system-ui; padding: 40px; text-align: center;">
  <h1>Completing authentication...</h1>
  <p>You can close this window and return to your terminal.</p>
</body>
</html>`)

	l.complete(tokens)
}
