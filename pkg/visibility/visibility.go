// Package visibility tracks which diagram nodes a viewing session currently
// shows. One State instance exists per session; all operations are
// synchronous and mutate nothing beyond the state map itself.
package visibility

import (
	"github.com/hbauer/flowview/pkg/flowchart"
	"github.com/hbauer/flowview/pkg/reach"
)

// State is a mutable id-to-visible mapping over a diagram's known-id
// universe. Every id known at parse time defaults to visible; ids the state
// has never seen also report visible, matching the permissive contract of
// [flowchart.Visibility].
//
// State is not safe for concurrent use without external synchronization.
type State struct {
	vis   map[string]bool
	known []string
	idx   *reach.Index
}

// New creates an all-visible state for the model, building the model's
// reachability index internally.
func New(m *flowchart.Model) *State {
	return NewWithIndex(reach.NewIndex(m), m.KnownIDs())
}

// NewWithIndex creates an all-visible state over an explicit id universe,
// reusing an already-built index.
func NewWithIndex(idx *reach.Index, known []string) *State {
	s := &State{idx: idx, known: known}
	s.ShowAll()
	return s
}

// Index returns the reachability index backing ShowDescendants and
// ShowAncestors.
func (s *State) Index() *reach.Index { return s.idx }

// IsVisible returns the stored value for id, or true if none is stored.
func (s *State) IsVisible(id string) bool {
	v, ok := s.vis[id]
	return v || !ok
}

// SetVisible stores an explicit visibility value for id.
func (s *State) SetVisible(id string, visible bool) {
	s.vis[id] = visible
}

// ShowAll overwrites the state with every known id visible.
func (s *State) ShowAll() { s.fill(true) }

// HideAll overwrites the state with every known id hidden.
func (s *State) HideAll() { s.fill(false) }

func (s *State) fill(visible bool) {
	s.vis = make(map[string]bool, len(s.known))
	for _, id := range s.known {
		s.vis[id] = visible
	}
}

// ShowDescendants makes id and everything reachable along forward arcs
// visible. It only ever adds to the visible set, never hides.
func (s *State) ShowDescendants(id string) {
	for _, d := range s.idx.Descendants(id) {
		s.vis[d] = true
	}
}

// ShowAncestors makes id and everything reachable along backward arcs
// visible. It only ever adds to the visible set, never hides.
func (s *State) ShowAncestors(id string) {
	for _, a := range s.idx.Ancestors(id) {
		s.vis[a] = true
	}
}

// Visible returns the known ids that are currently visible, in known-id
// order.
func (s *State) Visible() []string {
	var out []string
	for _, id := range s.known {
		if s.IsVisible(id) {
			out = append(out, id)
		}
	}
	return out
}

// Snapshot returns a copy of the stored mapping, suitable for persisting a
// session.
func (s *State) Snapshot() map[string]bool {
	out := make(map[string]bool, len(s.vis))
	for id, v := range s.vis {
		out[id] = v
	}
	return out
}

// Restore overwrites the state from a snapshot. Known ids missing from the
// snapshot default to visible.
func (s *State) Restore(snapshot map[string]bool) {
	s.fill(true)
	for id, v := range snapshot {
		s.vis[id] = v
	}
}
