package auth

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snapnote/pkg/listener"
	"snapnote/pkg/oauth"
	"snapnote/pkg/store"
)

func newTestLifecycle() (*Lifecycle, *store.MemStore, *oauth.Coordinator) {
	s := store.NewMemStore()
	coord := oauth.NewCoordinator(oauth.Config{
		ClientID: "client-123",
		RelayURL: "https://relay.example.com",
	})
	return New(s, coord), s, coord
}

func TestProcessCallback_Success(t *testing.T) {
	life, s, _ := newTestLifecycle()

	err := life.ProcessCallback(listener.TokenSet{
		AccessToken:   "tok-abc",
		RefreshToken:  "ref-abc",
		BotID:         "bot-1",
		WorkspaceID:   "ws-1",
		WorkspaceName: "Acme",
	})
	require.NoError(t, err)

	st := life.State()
	assert.True(t, st.IsAuthenticated)
	assert.False(t, st.IsLoading)
	assert.Equal(t, "Acme", st.WorkspaceName)

	token, err := s.Get(store.KeyAccessToken)
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", token)

	refresh, _ := s.Get(store.KeyRefreshToken)
	assert.Equal(t, "ref-abc", refresh)
	botID, _ := s.Get(store.KeyBotID)
	assert.Equal(t, "bot-1", botID)
	wsID, _ := s.Get(store.KeyWorkspaceID)
	assert.Equal(t, "ws-1", wsID)
}

func TestProcessCallback_MissingAccessToken(t *testing.T) {
	life, s, _ := newTestLifecycle()

	err := life.ProcessCallback(listener.TokenSet{WorkspaceName: "Acme"})
	assert.ErrorIs(t, err, ErrNoAccessToken)

	st := life.State()
	assert.False(t, st.IsAuthenticated)
	assert.False(t, st.IsLoading, "state must settle, not hang in loading")

	token, _ := s.Get(store.KeyAccessToken)
	assert.Empty(t, token)
}

func TestProcessCallback_PartialWorkspaceIdentity(t *testing.T) {
	life, s, _ := newTestLifecycle()

	// Bot id without workspace id: neither half is persisted.
	err := life.ProcessCallback(listener.TokenSet{
		AccessToken: "tok-abc",
		BotID:       "bot-1",
	})
	require.NoError(t, err)

	botID, _ := s.Get(store.KeyBotID)
	assert.Empty(t, botID)
	assert.True(t, life.State().IsAuthenticated)
}

func TestProcessCallback_StateMismatch(t *testing.T) {
	life, s, coord := newTestLifecycle()

	session, _, err := coord.Begin()
	require.NoError(t, err)

	err = life.ProcessCallback(listener.TokenSet{
		AccessToken: "tok-forged",
		State:       "not-the-real-state",
	})
	assert.ErrorIs(t, err, oauth.ErrStateMismatch)
	assert.Equal(t, oauth.StatusFailed, session.Status())

	token, _ := s.Get(store.KeyAccessToken)
	assert.Empty(t, token, "forged callback must not persist a token")
	assert.False(t, life.State().IsAuthenticated)
}

func TestProcessCallback_MatchingState(t *testing.T) {
	life, _, coord := newTestLifecycle()

	session, _, err := coord.Begin()
	require.NoError(t, err)

	err = life.ProcessCallback(listener.TokenSet{
		AccessToken: "tok-abc",
		State:       session.State(),
	})
	require.NoError(t, err)
	assert.Equal(t, oauth.StatusCompleted, session.Status())
	assert.True(t, life.State().IsAuthenticated)
}

func TestCancel_LateCallbackWins(t *testing.T) {
	life, _, coord := newTestLifecycle()

	session, _, err := coord.Begin()
	require.NoError(t, err)

	require.NoError(t, life.ProcessCallback(listener.TokenSet{AccessToken: "tok-abc"}))

	// Browser dismissal arriving after the callback must not undo the
	// completed login.
	life.Cancel()
	assert.Equal(t, oauth.StatusCompleted, session.Status())
	assert.True(t, life.State().IsAuthenticated)
}

func TestCancel_Pending(t *testing.T) {
	life, _, coord := newTestLifecycle()

	session, _, err := coord.Begin()
	require.NoError(t, err)
	life.setState(State{IsLoading: true})

	life.Cancel()
	assert.Equal(t, oauth.StatusCancelled, session.Status())
	assert.False(t, life.State().IsLoading)
}

func TestCheckAuthStatus(t *testing.T) {
	life, s, _ := newTestLifecycle()

	st := life.CheckAuthStatus()
	assert.False(t, st.IsAuthenticated)
	assert.False(t, st.IsLoading)

	require.NoError(t, s.Set(store.KeyAccessToken, "tok-abc"))
	require.NoError(t, s.Set(store.KeyWorkspaceName, "Acme"))

	st = life.CheckAuthStatus()
	assert.True(t, st.IsAuthenticated)
	assert.Equal(t, "Acme", st.WorkspaceName)
}

func TestLogout(t *testing.T) {
	life, s, _ := newTestLifecycle()

	require.NoError(t, life.ProcessCallback(listener.TokenSet{
		AccessToken:   "tok-abc",
		WorkspaceName: "Acme",
	}))
	require.NoError(t, s.Set(store.KeyDatabaseID, "db-1"))

	require.NoError(t, life.Logout())

	st := life.CheckAuthStatus()
	assert.False(t, st.IsAuthenticated)
	assert.Empty(t, st.WorkspaceName)

	// Logout clears credentials, not configuration.
	dbID, _ := s.Get(store.KeyDatabaseID)
	assert.Equal(t, "db-1", dbID)
}

// failingStore errors on every operation, standing in for a broken
// keyring.
type failingStore struct{}

func (failingStore) Set(key, value string) error    { return errors.New("keyring unavailable") }
func (failingStore) Get(key string) (string, error) { return "", errors.New("keyring unavailable") }
func (failingStore) Delete(key string) error        { return errors.New("keyring unavailable") }

func TestStorageFailure_SettlesState(t *testing.T) {
	coord := oauth.NewCoordinator(oauth.Config{ClientID: "id", RelayURL: "https://relay.example.com"})
	life := New(failingStore{}, coord)

	err := life.ProcessCallback(listener.TokenSet{AccessToken: "tok-abc"})
	require.Error(t, err)
	assert.False(t, life.State().IsLoading)

	st := life.CheckAuthStatus()
	assert.False(t, st.IsAuthenticated)
	assert.False(t, st.IsLoading)
}

func TestOnChange(t *testing.T) {
	life, _, _ := newTestLifecycle()

	var transitions []State
	life.OnChange(func(s State) {
		transitions = append(transitions, s)
	})

	require.NoError(t, life.ProcessCallback(listener.TokenSet{AccessToken: "tok-abc"}))

	require.NotEmpty(t, transitions)
	last := transitions[len(transitions)-1]
	assert.True(t, last.IsAuthenticated)
}
