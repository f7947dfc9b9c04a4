package flowchart

import "slices"

// DefaultOpen and DefaultClose are the rectangle delimiters substituted when
// a node was declared without an explicit shape.
const (
	DefaultOpen  = "["
	DefaultClose = "]"
)

// Node is one declared diagram node. Open and Close record the delimiter
// pair as written in the source; both are empty for nodes that were never
// declared with a shape, and the renderer falls back to the default
// rectangle. Subgraph is the owning subgraph id, or empty for top-level
// nodes.
type Node struct {
	ID       string
	Label    string
	Open     string
	Close    string
	Subgraph string
}

// Subgraph is a named grouping block with an ordered member list.
// Header preserves the declaration line verbatim for round-trip rendering.
type Subgraph struct {
	ID      string
	Header  string
	Members []string
}

// Edge is a directed connection as written in the source. From and To keep
// raw declaration order, which is not necessarily the semantic direction:
// the operator token decides that (see package reach). Op is the literal
// operator run, e.g. "-->", "<--", "<-->", "---".
type Edge struct {
	From string
	To   string
	Op   string
}

// ClassAssignment applies a style class to a set of node ids.
type ClassAssignment struct {
	IDs  []string
	Name string
}

// DroppedLine records a source line the permissive parser could not
// classify. Collected for diagnostics only; dropping is never an error.
type DroppedLine struct {
	Line int // 1-based line number in the original input
	Text string
}

// Model is the immutable structural model of one parsed diagram.
// Build it with [Parse]; accessors return copies, so a Model can be shared
// freely across goroutines once constructed.
type Model struct {
	frontMatter []string
	directive   string
	subgraphs   []*Subgraph
	topLevel    []string
	nodes       map[string]*Node
	declOrder   []string
	edges       []Edge
	classDefs   []string
	classes     []ClassAssignment
	knownIDs    []string
	knownSet    map[string]bool
	dropped     []DroppedLine
}

// FrontMatter returns the captured front-matter block verbatim, including
// both "---" delimiter lines, or nil if the input had none.
func (m *Model) FrontMatter() []string { return slices.Clone(m.frontMatter) }

// Directive returns the captured "flowchart ..." directive line verbatim,
// or the empty string if the input had none.
func (m *Model) Directive() string { return m.directive }

// Node returns the declared node with the given id.
func (m *Model) Node(id string) (Node, bool) {
	n, ok := m.nodes[id]
	if !ok {
		return Node{}, false
	}
	return *n, true
}

// Nodes returns all declared nodes in first-declaration order.
func (m *Model) Nodes() []Node {
	out := make([]Node, 0, len(m.declOrder))
	for _, id := range m.declOrder {
		out = append(out, *m.nodes[id])
	}
	return out
}

// Subgraphs returns the subgraph blocks in declaration order.
func (m *Model) Subgraphs() []Subgraph {
	out := make([]Subgraph, 0, len(m.subgraphs))
	for _, sg := range m.subgraphs {
		out = append(out, Subgraph{ID: sg.ID, Header: sg.Header, Members: slices.Clone(sg.Members)})
	}
	return out
}

// TopLevel returns the ids of nodes declared outside any subgraph,
// in first-declaration order.
func (m *Model) TopLevel() []string { return slices.Clone(m.topLevel) }

// Edges returns all edges in declaration order.
func (m *Model) Edges() []Edge { return slices.Clone(m.edges) }

// ClassDefs returns the classDef directive lines verbatim, in order.
func (m *Model) ClassDefs() []string { return slices.Clone(m.classDefs) }

// ClassAssignments returns the class directives in order.
func (m *Model) ClassAssignments() []ClassAssignment {
	out := make([]ClassAssignment, 0, len(m.classes))
	for _, c := range m.classes {
		out = append(out, ClassAssignment{IDs: slices.Clone(c.IDs), Name: c.Name})
	}
	return out
}

// KnownIDs returns every id the diagram mentions - declared nodes plus ids
// that appear only as edge endpoints (dangling) - in first-appearance order.
// This is the id universe for reachability and visibility.
func (m *Model) KnownIDs() []string { return slices.Clone(m.knownIDs) }

// Knows reports whether id is part of the diagram's id universe.
func (m *Model) Knows(id string) bool { return m.knownSet[id] }

// Dropped returns the lines the parser could not classify.
func (m *Model) Dropped() []DroppedLine { return slices.Clone(m.dropped) }

// NodeCount returns the number of declared nodes.
func (m *Model) NodeCount() int { return len(m.nodes) }

// EdgeCount returns the number of edges.
func (m *Model) EdgeCount() int { return len(m.edges) }
