package notion

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Headers(t *testing.T) {
	var gotAuth, gotVersion string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotVersion = r.Header.Get("Notion-Version")
		fmt.Fprint(w, `{"id":"U1","upload_url":"https://upload.example.com/U1"}`)
	}))
	defer srv.Close()

	c := NewClient(func() (string, error) { return "tok-abc", nil }, WithBaseURL(srv.URL))

	upload, err := c.CreateFileUpload(context.Background(), "photo.jpg", "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "U1", upload.ID)
	assert.Equal(t, "Bearer tok-abc", gotAuth)
	assert.Equal(t, "2022-06-28", gotVersion)
}

func TestClient_TokenSourceFailure(t *testing.T) {
	c := NewClient(func() (string, error) { return "", errors.New("not signed in") })

	_, err := c.CreateFileUpload(context.Background(), "photo.jpg", "image/jpeg")
	assert.ErrorContains(t, err, "not signed in")
}

func TestSearchDatabases(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		fmt.Fprint(w, `{
			"results": [
				{
					"id": "db-1",
					"url": "https://notion.so/db-1",
					"last_edited_time": "2024-06-01T00:00:00.000Z",
					"title": [{"plain_text": "Photo Journal"}],
					"properties": {"Photo": {"type": "files"}, "Caption": {"type": "title"}}
				},
				{
					"id": "db-2",
					"title": [],
					"properties": {}
				}
			]
		}`)
	}))
	defer srv.Close()

	c := NewClient(func() (string, error) { return "tok", nil }, WithBaseURL(srv.URL))

	databases, err := c.SearchDatabases(context.Background())
	require.NoError(t, err)
	require.Len(t, databases, 2)

	assert.Equal(t, "Photo Journal", databases[0].Title)
	assert.Equal(t, []string{"Caption", "Photo"}, databases[0].Properties, "property names are sorted")
	assert.Equal(t, "Untitled", databases[1].Title)
}

func TestClient_ErrorIncludesDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"database not shared with integration"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(func() (string, error) { return "tok", nil }, WithBaseURL(srv.URL))

	_, err := c.CreatePage(context.Background(), "db-x", "Sunset", "photo.jpg", "U1")
	assert.ErrorContains(t, err, "404")
	assert.ErrorContains(t, err, "database not shared")
}
