// Package reach builds a directed-reachability index over a parsed diagram
// and answers breadth-first closure queries.
//
// Direction is inferred from edge operator tokens: a ">" anywhere in the
// token adds an arc from the declared source towards the declared target
// (descendant direction), a "<" adds the mirrored arc, and a token carrying
// both yields bidirectional arcs. Operators with neither character (plain
// links such as "---") contribute no arcs at all.
package reach

import (
	"slices"
	"strings"

	"github.com/hbauer/flowview/pkg/flowchart"
)

// Index holds forward and backward adjacency for one diagram. It is built
// once from an immutable model and is safe for concurrent reads.
type Index struct {
	forward  map[string][]string
	backward map[string][]string
}

// NewIndex builds the index from the model's edge list over its full
// known-id universe (declared nodes plus dangling edge endpoints).
func NewIndex(m *flowchart.Model) *Index {
	return New(m.Edges(), m.KnownIDs())
}

// New builds an index from an explicit edge list and id universe.
// Ids appearing in edges but missing from ids are indexed as well, so a
// dangling endpoint is always traversable as an isolated node.
func New(edges []flowchart.Edge, ids []string) *Index {
	idx := &Index{
		forward:  make(map[string][]string, len(ids)),
		backward: make(map[string][]string, len(ids)),
	}
	for _, id := range ids {
		idx.forward[id] = nil
		idx.backward[id] = nil
	}
	for _, e := range edges {
		if strings.Contains(e.Op, ">") {
			idx.addArc(e.From, e.To)
		}
		if strings.Contains(e.Op, "<") {
			idx.addArc(e.To, e.From)
		}
	}
	return idx
}

func (idx *Index) addArc(from, to string) {
	idx.forward[from] = append(idx.forward[from], to)
	idx.backward[to] = append(idx.backward[to], from)
}

// Descendants returns the smallest set containing id that is closed under
// forward arcs. The result always contains id itself, even when id is
// entirely unknown to the index.
func (idx *Index) Descendants(id string) []string {
	return bfs(idx.forward, id)
}

// Ancestors returns the smallest set containing id that is closed under
// backward arcs. The result always contains id itself, even when id is
// entirely unknown to the index.
func (idx *Index) Ancestors(id string) []string {
	return bfs(idx.backward, id)
}

// bfs walks adjacency breadth-first from start, visiting each id at most
// once so cycles terminate. Result order is visit order, deterministic for
// a given index.
func bfs(adj map[string][]string, start string) []string {
	seen := map[string]bool{start: true}
	order := []string{start}
	for i := 0; i < len(order); i++ {
		for _, next := range adj[order[i]] {
			if !seen[next] {
				seen[next] = true
				order = append(order, next)
			}
		}
	}
	return slices.Clip(order)
}
