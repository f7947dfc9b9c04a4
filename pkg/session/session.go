// Package session manages viewing sessions. A session pairs one parsed
// diagram with one visibility state; every interactive surface (HTTP API,
// terminal UI) operates on a session and re-renders the filtered text after
// each visibility mutation.
//
// Two storage backends are provided:
//   - memory: per-process map, used by the CLI and in tests
//   - redis: shared store for multi-instance server deployments
//
// The parsed model is deliberately not serialized. Stores persist the
// source text plus the visibility snapshot and rebuild the model by
// re-parsing on load; parsing is deterministic and cheap at diagram scale.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/hbauer/flowview/pkg/flowchart"
	"github.com/hbauer/flowview/pkg/visibility"
)

// Sentinel errors for session operations.
var (
	// ErrNotFound is returned when a session does not exist.
	ErrNotFound = errors.New("session not found")
)

// DefaultTTL is the default session lifetime in stores that expire entries.
const DefaultTTL = 24 * time.Hour

// Session is one viewing session over a parsed diagram.
// The model is immutable; all interaction happens through Visibility.
type Session struct {
	ID        string
	Name      string
	Source    string
	CreatedAt time.Time
	UpdatedAt time.Time

	model *flowchart.Model
	vis   *visibility.State
}

// New parses source and opens an all-visible session over it.
func New(name, source string) *Session {
	now := time.Now().UTC()
	s := &Session{
		ID:        uuid.NewString(),
		Name:      name,
		Source:    source,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.model = flowchart.Parse(source)
	s.vis = visibility.New(s.model)
	return s
}

// Restore rebuilds a session from persisted fields and a visibility
// snapshot, re-parsing the stored source.
func Restore(id, name, source string, snapshot map[string]bool, created, updated time.Time) *Session {
	s := &Session{
		ID:        id,
		Name:      name,
		Source:    source,
		CreatedAt: created,
		UpdatedAt: updated,
	}
	s.model = flowchart.Parse(source)
	s.vis = visibility.New(s.model)
	s.vis.Restore(snapshot)
	return s
}

// Model returns the parsed diagram model.
func (s *Session) Model() *flowchart.Model { return s.model }

// Visibility returns the session's mutable visibility state.
func (s *Session) Visibility() *visibility.State { return s.vis }

// Touch updates the last-modified timestamp. Stores call this on Put.
func (s *Session) Touch() { s.UpdatedAt = time.Now().UTC() }

// Render regenerates the filtered diagram text for the current visibility.
func (s *Session) Render(r flowchart.Renderer) string {
	return r.Render(s.model, s.vis)
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a session by id. Returns ErrNotFound if absent.
	Get(ctx context.Context, id string) (*Session, error)

	// Put stores a session, overwriting any previous version.
	Put(ctx context.Context, s *Session) error

	// Delete removes a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the ids of all stored sessions.
	List(ctx context.Context) ([]string, error)

	// Close releases backend resources.
	Close() error
}
