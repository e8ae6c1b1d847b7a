package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_SetGetDelete(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "credentials.json"))

	got, err := s.Get(KeyAccessToken)
	require.NoError(t, err)
	assert.Empty(t, got, "missing key reads as empty")

	require.NoError(t, s.Set(KeyAccessToken, "secret-token"))

	got, err = s.Get(KeyAccessToken)
	require.NoError(t, err)
	assert.Equal(t, "secret-token", got)

	require.NoError(t, s.Delete(KeyAccessToken))
	require.NoError(t, s.Delete(KeyAccessToken), "delete is idempotent")

	got, err = s.Get(KeyAccessToken)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFileStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")

	s := NewFileStore(path)
	require.NoError(t, s.Set(KeyWorkspaceName, "Acme Inc"))

	reopened := NewFileStore(path)
	got, err := reopened.Get(KeyWorkspaceName)
	require.NoError(t, err)
	assert.Equal(t, "Acme Inc", got)
}

func TestFileStore_Permissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	s := NewFileStore(path)
	require.NoError(t, s.Set(KeyAccessToken, "secret"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestClearAuth(t *testing.T) {
	s := NewMemStore()
	require.NoError(t, s.Set(KeyAccessToken, "tok"))
	require.NoError(t, s.Set(KeyRefreshToken, "ref"))
	require.NoError(t, s.Set(KeyBotID, "bot"))
	require.NoError(t, s.Set(KeyWorkspaceID, "ws"))
	require.NoError(t, s.Set(KeyWorkspaceName, "Acme"))
	require.NoError(t, s.Set(KeyDatabaseID, "db"))

	require.NoError(t, ClearAuth(s))

	for _, key := range AuthKeys() {
		got, err := s.Get(key)
		require.NoError(t, err)
		assert.Empty(t, got, "auth key %s should be cleared", key)
	}

	// The target database selection survives logout.
	got, err := s.Get(KeyDatabaseID)
	require.NoError(t, err)
	assert.Equal(t, "db", got)
}

func TestOpen_FallbackRespected(t *testing.T) {
	t.Setenv("SNAPNOTE_NO_KEYRING", "1")

	path := filepath.Join(t.TempDir(), "credentials.json")
	s := Open("snapnote-test", path)

	_, ok := s.(*FileStore)
	assert.True(t, ok, "SNAPNOTE_NO_KEYRING should force the file backend")
}
