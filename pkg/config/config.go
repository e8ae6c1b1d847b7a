// Package config loads the snapnote client configuration from a YAML
// file with environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the client-side configuration. The client secret is
// deliberately absent: only the relay holds it.
type Config struct {
	// ClientID is the Notion OAuth integration's public client id.
	ClientID string `yaml:"client_id"`

	// RelayURL is the base URL of the callback relay.
	RelayURL string `yaml:"relay_url"`

	// AuthorizeURL overrides Notion's authorization endpoint (tests).
	AuthorizeURL string `yaml:"authorize_url"`

	// AppScheme is the custom URL scheme registered for deep links.
	AppScheme string `yaml:"app_scheme"`

	// ListenAddr is where the loopback callback listener binds.
	ListenAddr string `yaml:"listen_addr"`

	// NotionToken is a legacy static integration token, used only when
	// no OAuth credential is stored.
	NotionToken string `yaml:"notion_token"`
}

// Dir returns the snapnote configuration directory.
func Dir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	return filepath.Join(base, "snapnote")
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// CredentialsPath returns where the file-backed credential store lives
// when no OS keyring is available.
func CredentialsPath() string {
	return filepath.Join(Dir(), "credentials.json")
}

// Load reads the config file at path (missing file is fine, defaults
// apply) and applies SNAPNOTE_* environment overrides on top.
func Load(path string) (Config, error) {
	cfg := Config{
		AppScheme:  "snapnote",
		ListenAddr: "127.0.0.1:8742",
	}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnv(&cfg.ClientID, "SNAPNOTE_CLIENT_ID")
	applyEnv(&cfg.RelayURL, "SNAPNOTE_RELAY_URL")
	applyEnv(&cfg.AuthorizeURL, "SNAPNOTE_AUTHORIZE_URL")
	applyEnv(&cfg.AppScheme, "SNAPNOTE_APP_SCHEME")
	applyEnv(&cfg.ListenAddr, "SNAPNOTE_LISTEN_ADDR")
	applyEnv(&cfg.NotionToken, "SNAPNOTE_NOTION_TOKEN")

	return cfg, nil
}

func applyEnv(target *string, key string) {
	if value := os.Getenv(key); value != "" {
		*target = value
	}
}
