package notion

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"snapnote/pkg/store"
)

// ErrNoDatabase signals the "authenticated but not configured" state:
// a credential exists but no target database has been selected.
var ErrNoDatabase = errors.New("no database selected - run 'snapnote databases' to pick one")

// Phase names the three steps of an upload.
type Phase string

const (
	PhaseCreateIntent Phase = "create upload intent"
	PhaseStreamBytes  Phase = "stream bytes"
	PhaseCreateRecord Phase = "create record"
)

// PhaseError reports which upload phase failed. No phase is retried and
// no cleanup happens: an intent orphaned by a later phase failing is
// left unconfirmed on Notion's side.
type PhaseError struct {
	Phase Phase
	Err   error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("upload failed at %s: %v", e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() error {
	return e.Err
}

// JobStatus tracks an upload job through its phases.
type JobStatus int

const (
	JobCreated JobStatus = iota
	JobIntentPending
	JobStreaming
	JobRecordPending
	JobDone
	JobFailed
)

// UploadJob is the transient record of one upload invocation. It lives
// for the duration of the call and is never persisted.
type UploadJob struct {
	ID             string
	SourceURI      string
	Caption        string
	UploadIntentID string
	Status         JobStatus
}

// Pipeline runs the three-phase upload protocol against a live
// credential and the selected target database.
type Pipeline struct {
	client *Client
	store  store.Store

	// now is swappable for tests of the default caption.
	now func() time.Time
}

// NewPipeline creates a pipeline over an API client and the store that
// holds the target database id.
func NewPipeline(client *Client, s store.Store) *Pipeline {
	return &Pipeline{client: client, store: s, now: time.Now}
}

// DefaultCaption is the caption used when the caller supplies none.
func DefaultCaption(t time.Time) string {
	return "Photo - " + t.Format("2006-01-02")
}

// Upload pushes a local photo into the target database: create the
// upload intent, stream the bytes, create the record. Phases run
// strictly in order and the whole job is one non-resumable attempt; a
// failure aborts with whatever earlier phases produced left in place.
func (p *Pipeline) Upload(ctx context.Context, photoPath, caption string) (*Page, error) {
	databaseID, err := p.store.Get(store.KeyDatabaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to read database selection: %w", err)
	}
	if databaseID == "" {
		return nil, ErrNoDatabase
	}

	job := &UploadJob{
		ID:        uuid.NewString(),
		SourceURI: photoPath,
		Caption:   caption,
		Status:    JobCreated,
	}

	fileName := fmt.Sprintf("photo-%d.jpg", p.now().UnixMilli())

	job.Status = JobIntentPending
	upload, err := p.client.CreateFileUpload(ctx, fileName, "image/jpeg")
	if err != nil {
		job.Status = JobFailed
		return nil, &PhaseError{Phase: PhaseCreateIntent, Err: err}
	}
	job.UploadIntentID = upload.ID

	file, err := os.Open(filepath.Clean(photoPath))
	if err != nil {
		job.Status = JobFailed
		return nil, &PhaseError{Phase: PhaseStreamBytes, Err: err}
	}
	defer file.Close()

	job.Status = JobStreaming
	if err := p.client.SendFileContents(ctx, upload.UploadURL, fileName, file); err != nil {
		job.Status = JobFailed
		return nil, &PhaseError{Phase: PhaseStreamBytes, Err: err}
	}

	if caption == "" {
		caption = DefaultCaption(p.now())
	}

	job.Status = JobRecordPending
	page, err := p.client.CreatePage(ctx, databaseID, caption, fileName, upload.ID)
	if err != nil {
		job.Status = JobFailed
		return nil, &PhaseError{Phase: PhaseCreateRecord, Err: err}
	}
	job.Status = JobDone

	// Best effort; the upload already succeeded.
	if err := p.store.Set(store.KeyLastPhoto, strconv.FormatInt(p.now().Unix(), 10)); err != nil {
		log.Printf("Failed to record last photo time: %v", err)
	}

	return page, nil
}
