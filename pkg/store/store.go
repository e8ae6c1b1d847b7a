// Package store persists credentials and small application state in a
// key/value medium. The backing medium is chosen once at startup: the
// OS keyring where one is available, a permission-restricted file
// otherwise. Values get no encryption beyond what the medium provides.
package store

import (
	"errors"
	"os"
)

// Keys for everything snapnote persists. Each key is independently
// removable so a partial clear is recoverable by the next login.
const (
	KeyNotificationID = "notification_id"
	KeyLastPhoto      = "last_photo"
	KeyAccessToken    = "notion_access_token"
	KeyRefreshToken   = "notion_refresh_token"
	KeyBotID          = "notion_bot_id"
	KeyWorkspaceID    = "notion_workspace_id"
	KeyWorkspaceName  = "notion_workspace_name"
	KeyDatabaseID     = "notion_database_id"
)

// Store is a key/value credential store. Get returns ("", nil) for a
// missing key; Delete of a missing key succeeds silently.
type Store interface {
	Set(key, value string) error
	Get(key string) (string, error)
	Delete(key string) error
}

// AuthKeys returns the keys that make up one stored login.
func AuthKeys() []string {
	return []string{
		KeyAccessToken,
		KeyRefreshToken,
		KeyBotID,
		KeyWorkspaceID,
		KeyWorkspaceName,
	}
}

// ClearAuth removes all auth keys as one logical logout. Every key is
// attempted even if an earlier delete fails; errors are collected so a
// partial clear leaves keys a later login will overwrite anyway.
func ClearAuth(s Store) error {
	var errs []error
	for _, key := range AuthKeys() {
		if err := s.Delete(key); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Open selects a backend: the OS keyring when usable, otherwise a JSON
// file at fallbackPath. Set SNAPNOTE_NO_KEYRING=1 to force the file
// backend (headless hosts, CI).
func Open(service, fallbackPath string) Store {
	if os.Getenv("SNAPNOTE_NO_KEYRING") == "" {
		if ks := openKeyring(service); ks != nil {
			return ks
		}
	}
	return NewFileStore(fallbackPath)
}
