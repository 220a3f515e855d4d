// ABOUTME: Upload coordinator: NoSelection -> Selected(file) -> Uploaded(document)
// ABOUTME: Generation counter makes results for replaced selections stale instead of applied

package upload

import (
	"context"
	"errors"
	"fmt"

	"github.com/mauromedda/academic-assistant/internal/log"
	"github.com/mauromedda/academic-assistant/internal/transport"
)

// State is the coordinator state.
type State int

const (
	StateNoSelection State = iota
	StateSelected
	StateUploaded
)

// String returns the human-readable label for the state.
func (s State) String() string {
	switch s {
	case StateNoSelection:
		return "NoSelection"
	case StateSelected:
		return "Selected"
	case StateUploaded:
		return "Uploaded"
	default:
		return "Unknown"
	}
}

// Outcome describes how an upload attempt settled.
type Outcome int

const (
	// OutcomeUploaded means a document is now available.
	OutcomeUploaded Outcome = iota
	// OutcomeEmpty means the service returned no data; not an error.
	OutcomeEmpty
	// OutcomeFailed means the request failed; the selection is kept for retry.
	OutcomeFailed
	// OutcomeStale means the selection changed while the request was in flight.
	OutcomeStale
)

var (
	ErrNoSelection     = errors.New("no file selected")
	ErrUploadInFlight  = errors.New("an upload is already in flight")
	ErrAlreadyUploaded = errors.New("selected file is already uploaded")
)

// Uploader posts a file and returns the extracted document.
// *transport.Client satisfies it.
type Uploader interface {
	PostUpload(ctx context.Context, path string) (*transport.Document, error)
}

// Ticket identifies one upload attempt.
type Ticket struct {
	Path string
	gen  uint64
}

// Coordinator tracks the pending file selection and the uploaded document.
// Like session.Session it is driven from a single goroutine.
type Coordinator struct {
	state    State
	path     string
	doc      *transport.Document
	gen      uint64
	inFlight bool
}

// New returns a coordinator with no selection.
func New() *Coordinator {
	return &Coordinator{}
}

// State returns the current state.
func (c *Coordinator) State() State {
	return c.state
}

// Selection returns the selected file path, or "".
func (c *Coordinator) Selection() string {
	return c.path
}

// Uploading reports whether an upload for the current selection is in flight.
func (c *Coordinator) Uploading() bool {
	return c.inFlight
}

// Document returns the uploaded document, or nil.
func (c *Coordinator) Document() *transport.Document {
	return c.doc
}

// SelectFile moves to Selected(path), discarding any uploaded document and
// invalidating an in-flight upload.
func (c *Coordinator) SelectFile(path string) {
	c.gen++
	c.state = StateSelected
	c.path = path
	c.doc = nil
	c.inFlight = false
	log.Debug("upload: selected %s (generation %d)", path, c.gen)
}

// Begin starts an upload of the current selection.
func (c *Coordinator) Begin() (Ticket, error) {
	switch {
	case c.state == StateNoSelection:
		return Ticket{}, ErrNoSelection
	case c.state == StateUploaded:
		return Ticket{}, ErrAlreadyUploaded
	case c.inFlight:
		return Ticket{}, ErrUploadInFlight
	}
	c.inFlight = true
	return Ticket{Path: c.path, gen: c.gen}, nil
}

// Complete applies a successful response. A nil doc leaves the coordinator
// Selected without a document.
func (c *Coordinator) Complete(t Ticket, doc *transport.Document) Outcome {
	if t.gen != c.gen {
		log.Debug("upload: dropping result for replaced selection %s", t.Path)
		return OutcomeStale
	}
	c.inFlight = false
	if doc == nil {
		log.Info("upload: no data returned for %s", t.Path)
		return OutcomeEmpty
	}
	c.doc = doc
	c.state = StateUploaded
	log.Info("upload: %s accepted (%d completed courses, %d requirement groups)",
		t.Path, len(doc.CompletedCourses), len(doc.Requirements))
	return OutcomeUploaded
}

// Fail records a failed attempt. The selection is kept so upload can be retried.
func (c *Coordinator) Fail(t Ticket, err error) Outcome {
	if t.gen != c.gen {
		return OutcomeStale
	}
	c.inFlight = false
	log.Error("upload: %s failed: %v", t.Path, err)
	return OutcomeFailed
}

// Upload runs Begin, the request and Complete/Fail synchronously.
func (c *Coordinator) Upload(ctx context.Context, u Uploader) (Outcome, error) {
	t, err := c.Begin()
	if err != nil {
		return OutcomeFailed, err
	}
	doc, err := u.PostUpload(ctx, t.Path)
	if err != nil {
		return c.Fail(t, err), fmt.Errorf("uploading %s: %w", t.Path, err)
	}
	return c.Complete(t, doc), nil
}
