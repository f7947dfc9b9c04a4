package session

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore keeps sessions in a process-local map.
// Safe for concurrent use. Get and Put exchange independent copies rebuilt
// from the source text and visibility snapshot, the same way the redis
// store does, so concurrent requests never share mutable session state.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*Session)}
}

// Get retrieves a session by id. The returned session is an independent
// copy; mutations are not visible to other callers until Put.
func (st *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	// Stored sessions are never mutated after Put, so reading the snapshot
	// under the read lock is safe.
	return Restore(s.ID, s.Name, s.Source, s.Visibility().Snapshot(), s.CreatedAt, s.UpdatedAt), nil
}

// Put stores a session. The store keeps its own copy, so the caller may
// keep mutating the session it passed in.
func (st *MemoryStore) Put(ctx context.Context, s *Session) error {
	s.Touch()
	cp := Restore(s.ID, s.Name, s.Source, s.Visibility().Snapshot(), s.CreatedAt, s.UpdatedAt)
	st.mu.Lock()
	st.sessions[cp.ID] = cp
	st.mu.Unlock()
	return nil
}

// Delete removes a session.
func (st *MemoryStore) Delete(ctx context.Context, id string) error {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
	return nil
}

// List returns all session ids in sorted order.
func (st *MemoryStore) List(ctx context.Context) ([]string, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	ids := make([]string, 0, len(st.sessions))
	for id := range st.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Close does nothing for the memory store.
func (st *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
