// Package notion is a minimal Notion API client covering what the
// upload pipeline and database selection need: upload intents, byte
// streaming, page creation, and database search.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"time"
)

const (
	// DefaultBaseURL is the Notion API root.
	DefaultBaseURL = "https://api.notion.com/v1"

	// APIVersion is sent as the Notion-Version header on every request.
	APIVersion = "2022-06-28"
)

// TokenSource supplies the bearer token for each request, so a
// re-login mid-process is picked up without rebuilding the client.
type TokenSource func() (string, error)

// Client talks to the Notion API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      TokenSource
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API root, mainly for tests.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a Notion client around a token source.
func NewClient(token TokenSource, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		baseURL:    DefaultBaseURL,
		token:      token,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateFileUpload requests an upload handle for a file about to be
// streamed.
func (c *Client) CreateFileUpload(ctx context.Context, name, mimeType string) (*FileUpload, error) {
	var upload FileUpload
	err := c.postJSON(ctx, c.baseURL+"/file_uploads", createFileUploadRequest{
		Name:     name,
		MimeType: mimeType,
	}, &upload)
	if err != nil {
		return nil, err
	}
	return &upload, nil
}

// SendFileContents streams the file bytes to an upload handle's URL as
// a multipart POST. Anything but HTTP 200 is a hard failure.
func (c *Client) SendFileContents(ctx context.Context, uploadURL, fileName string, contents io.Reader) error {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := io.Copy(part, contents); err != nil {
		return fmt.Errorf("failed to read file contents: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finish multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, &body)
	if err != nil {
		return err
	}
	if err := c.authorize(req); err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("upload failed with status %d: %s", resp.StatusCode, detail)
	}
	return nil
}

// CreatePage creates a record in the target database with the Caption
// title property and the Photo files property referencing an upload.
func (c *Client) CreatePage(ctx context.Context, databaseID, caption, fileName, uploadID string) (*Page, error) {
	req := createPageRequest{
		Parent: pageParent{DatabaseID: databaseID},
		Properties: pageProperties{
			Caption: titleProperty{
				Title: []titleEntry{{Text: titleText{Content: caption}}},
			},
			Photo: filesProperty{
				Files: []fileEntry{{
					Name:       fileName,
					Type:       "file_upload",
					FileUpload: fileUploadRef{ID: uploadID},
				}},
			},
		},
	}

	var page Page
	if err := c.postJSON(ctx, c.baseURL+"/pages", req, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// SearchDatabases lists the databases the integration can see.
func (c *Client) SearchDatabases(ctx context.Context) ([]Database, error) {
	req := searchRequest{
		Filter:   searchFilter{Value: "database", Property: "object"},
		PageSize: 100,
	}

	var resp searchResponse
	if err := c.postJSON(ctx, c.baseURL+"/search", req, &resp); err != nil {
		return nil, err
	}

	databases := make([]Database, 0, len(resp.Results))
	for _, result := range resp.Results {
		title := "Untitled"
		if len(result.Title) > 0 && result.Title[0].PlainText != "" {
			title = result.Title[0].PlainText
		}

		properties := make([]string, 0, len(result.Properties))
		for name := range result.Properties {
			properties = append(properties, name)
		}
		sort.Strings(properties)

		databases = append(databases, Database{
			ID:             result.ID,
			Title:          title,
			Properties:     properties,
			URL:            result.URL,
			LastEditedTime: result.LastEditedTime,
		})
	}
	return databases, nil
}

func (c *Client) postJSON(ctx context.Context, url string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	if err := c.authorize(req); err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("notion API returned status %d: %s", resp.StatusCode, detail)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) authorize(req *http.Request) error {
	token, err := c.token()
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Notion-Version", APIVersion)
	return nil
}
