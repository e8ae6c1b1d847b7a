package notion

// FileUpload is the handle returned by the upload-intent API. The
// upload URL is one-time and the id is what a page references later.
type FileUpload struct {
	ID        string `json:"id"`
	UploadURL string `json:"upload_url"`
}

// Page is the created database record.
type Page struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Database describes a database found in the workspace.
type Database struct {
	ID             string
	Title          string
	Properties     []string
	URL            string
	LastEditedTime string
}

type createFileUploadRequest struct {
	Name     string `json:"name"`
	MimeType string `json:"mime_type"`
}

type createPageRequest struct {
	Parent     pageParent     `json:"parent"`
	Properties pageProperties `json:"properties"`
}

type pageParent struct {
	DatabaseID string `json:"database_id"`
}

type pageProperties struct {
	Caption titleProperty `json:"Caption"`
	Photo   filesProperty `json:"Photo"`
}

type titleProperty struct {
	Title []titleEntry `json:"title"`
}

type titleEntry struct {
	Text titleText `json:"text"`
}

type titleText struct {
	Content string `json:"content"`
}

type filesProperty struct {
	Files []fileEntry `json:"files"`
}

type fileEntry struct {
	Name       string        `json:"name"`
	Type       string        `json:"type"`
	FileUpload fileUploadRef `json:"file_upload"`
}

type fileUploadRef struct {
	ID string `json:"id"`
}

type searchRequest struct {
	Filter   searchFilter `json:"filter"`
	PageSize int          `json:"page_size"`
}

type searchFilter struct {
	Value    string `json:"value"`
	Property string `json:"property"`
}

type searchResponse struct {
	Results []searchResult `json:"results"`
}

type searchResult struct {
	ID             string                    `json:"id"`
	URL            string                    `json:"url"`
	LastEditedTime string                    `json:"last_edited_time"`
	Title          []richText                `json:"title"`
	Properties     map[string]map[string]any `json:"properties"`
}

type richText struct {
	PlainText string `json:"plain_text"`
}
