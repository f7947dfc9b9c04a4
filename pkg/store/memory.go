package store

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore keeps diagrams in a process-local map. Used by the CLI and
// as the default server backend when no Mongo URI is configured.
type MemoryStore struct {
	mu       sync.RWMutex
	diagrams map[string]Diagram
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{diagrams: make(map[string]Diagram)}
}

// Put stores a copy of the diagram.
func (st *MemoryStore) Put(ctx context.Context, d *Diagram) error {
	st.mu.Lock()
	st.diagrams[d.ID] = *d
	st.mu.Unlock()
	return nil
}

// Get retrieves a diagram by id.
func (st *MemoryStore) Get(ctx context.Context, id string) (*Diagram, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	d, ok := st.diagrams[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &d, nil
}

// List returns all diagrams ordered by creation time, then id for ties.
func (st *MemoryStore) List(ctx context.Context) ([]*Diagram, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	out := make([]*Diagram, 0, len(st.diagrams))
	for _, d := range st.diagrams {
		d := d
		out = append(out, &d)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Delete removes a diagram.
func (st *MemoryStore) Delete(ctx context.Context, id string) error {
	st.mu.Lock()
	delete(st.diagrams, id)
	st.mu.Unlock()
	return nil
}

// Close does nothing for the memory store.
func (st *MemoryStore) Close(ctx context.Context) error { return nil }

var _ Store = (*MemoryStore)(nil)
