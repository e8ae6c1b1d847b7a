package oauth

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"complete", Config{ClientID: "id", RelayURL: "https://relay.example.com"}, false},
		{"missing client id", Config{RelayURL: "https://relay.example.com"}, true},
		{"missing relay URL", Config{ClientID: "id"}, true},
		{"empty", Config{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNotConfigured)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_AuthCodeURL(t *testing.T) {
	cfg := Config{
		ClientID: "client-123",
		RelayURL: "https://relay.example.com/",
	}

	raw := cfg.AuthCodeURL("state-abc")
	u, err := url.Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "api.notion.com", u.Host)
	assert.Equal(t, "/v1/oauth/authorize", u.Path)

	q := u.Query()
	assert.Equal(t, "client-123", q.Get("client_id"))
	assert.Equal(t, "https://relay.example.com/api/notion-callback", q.Get("redirect_uri"))
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "user", q.Get("owner"))
	assert.Equal(t, "state-abc", q.Get("state"))
}

func TestConfig_RedirectURI_TrailingSlash(t *testing.T) {
	with := Config{RelayURL: "https://relay.example.com/"}
	without := Config{RelayURL: "https://relay.example.com"}
	assert.Equal(t, with.RedirectURI(), without.RedirectURI())
}
