// Package store persists named diagram sources for the server surface.
// A Diagram is raw source text plus identity; parsing always happens at
// session-open time, so the store never holds structural state.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a diagram does not exist.
var ErrNotFound = errors.New("diagram not found")

// Diagram is one stored diagram document.
type Diagram struct {
	ID        string    `json:"id" bson:"id"`
	Name      string    `json:"name" bson:"name"`
	Source    string    `json:"source" bson:"source"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Store is the interface for diagram storage backends.
type Store interface {
	// Put stores a diagram, overwriting any previous version with the
	// same id.
	Put(ctx context.Context, d *Diagram) error

	// Get retrieves a diagram by id. Returns ErrNotFound if absent.
	Get(ctx context.Context, id string) (*Diagram, error)

	// List returns all diagrams ordered by creation time.
	List(ctx context.Context) ([]*Diagram, error)

	// Delete removes a diagram. Deleting a missing diagram is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
