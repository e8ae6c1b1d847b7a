// Package oauth drives the Notion authorization-code flow from the
// client side: state generation, authorization-URL construction, and
// the lifetime of one in-flight login session. The code-for-token
// exchange itself happens on the relay, which holds the client secret.
package oauth

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/oauth2"
)

const (
	// DefaultAuthorizeURL is Notion's OAuth authorization endpoint.
	DefaultAuthorizeURL = "https://api.notion.com/v1/oauth/authorize"

	// CallbackPath is the relay's callback route, relative to its base URL.
	CallbackPath = "/api/notion-callback"
)

// ErrNotConfigured is returned before any network call when required
// configuration is missing.
var ErrNotConfigured = errors.New("oauth configuration incomplete")

// Config holds the client-side OAuth configuration.
type Config struct {
	ClientID     string
	AuthorizeURL string
	RelayURL     string // base URL of the callback relay, no trailing slash
	AppScheme    string // custom URL scheme registered for deep links
}

// Validate fails fast when the client id or relay URL is missing; the
// flow cannot even start without them.
func (c Config) Validate() error {
	if c.ClientID == "" {
		return fmt.Errorf("%w: client id not set", ErrNotConfigured)
	}
	if c.RelayURL == "" {
		return fmt.Errorf("%w: relay URL not set", ErrNotConfigured)
	}
	return nil
}

// RedirectURI returns the relay callback URL registered with Notion.
func (c Config) RedirectURI() string {
	return strings.TrimSuffix(c.RelayURL, "/") + CallbackPath
}

// AuthCodeURL builds the authorization URL for one login attempt.
// Notion requires owner=user in addition to the standard parameters.
func (c Config) AuthCodeURL(state string) string {
	authorizeURL := c.AuthorizeURL
	if authorizeURL == "" {
		authorizeURL = DefaultAuthorizeURL
	}

	conf := &oauth2.Config{
		ClientID:    c.ClientID,
		RedirectURL: c.RedirectURI(),
		Endpoint: oauth2.Endpoint{
			AuthURL: authorizeURL,
		},
	}
	return conf.AuthCodeURL(state, oauth2.SetAuthURLParam("owner", "user"))
}
