package flowchart

import "strings"

// Visibility answers whether a node id is currently visible. Ids the
// implementation has never been told about must report true.
type Visibility interface {
	IsVisible(id string) bool
}

// AllVisible is the Visibility that shows every node.
type AllVisible struct{}

// IsVisible always returns true.
func (AllVisible) IsVisible(string) bool { return true }

// Renderer defaults, used when the corresponding Renderer field is empty.
const (
	// DefaultDirective is substituted when the source carried no
	// "flowchart ..." directive line.
	DefaultDirective = "flowchart TD"

	// DefaultCallback is the callback name emitted in click hook
	// directives for the external rendering collaborator.
	DefaultCallback = "nodeClick"
)

// Renderer regenerates diagram text from a model restricted to a visible
// subset. The zero value renders with [DefaultDirective] and
// [DefaultCallback]; configuration is passed explicitly, there is no
// process-wide render state.
type Renderer struct {
	Directive string
	Callback  string
}

// Render is shorthand for Renderer{}.Render.
func Render(m *Model, vis Visibility) string {
	return Renderer{}.Render(m, vis)
}

// Render produces diagram text containing only visible nodes. The output
// never mentions a hidden id in any position: subgraph membership, class
// assignments, click hooks, and edges are all filtered. Sections that would
// be empty after filtering are omitted entirely, and a subgraph is emitted
// only if at least one member is visible. Rendering a grammar-conforming
// model with an all-visible state round-trips through [Parse].
func (r Renderer) Render(m *Model, vis Visibility) string {
	var out []string

	if fm := m.frontMatter; len(fm) > 0 {
		out = append(out, fm...)
		out = append(out, "")
	}

	directive := m.directive
	if directive == "" {
		directive = r.Directive
	}
	if directive == "" {
		directive = DefaultDirective
	}
	out = append(out, directive)

	out = append(out, m.classDefs...)

	for _, sg := range m.subgraphs {
		var members []string
		for _, id := range sg.Members {
			if vis.IsVisible(id) {
				members = append(members, "    "+m.nodeText(id))
			}
		}
		if len(members) == 0 {
			continue
		}
		out = append(out, sg.Header)
		out = append(out, members...)
		out = append(out, "end")
	}

	for _, id := range m.topLevel {
		if vis.IsVisible(id) {
			out = append(out, m.nodeText(id))
		}
	}

	for _, c := range m.classes {
		var ids []string
		for _, id := range c.IDs {
			if vis.IsVisible(id) {
				ids = append(ids, id)
			}
		}
		if len(ids) > 0 {
			out = append(out, "class "+strings.Join(ids, ",")+" "+c.Name)
		}
	}

	callback := r.Callback
	if callback == "" {
		callback = DefaultCallback
	}
	for _, id := range m.knownIDs {
		if vis.IsVisible(id) {
			out = append(out, "click "+id+" "+callback)
		}
	}

	for _, e := range m.edges {
		if vis.IsVisible(e.From) && vis.IsVisible(e.To) {
			out = append(out, e.From+" "+e.Op+" "+e.To)
		}
	}

	return strings.Join(out, "\n") + "\n"
}

// nodeText re-serializes one node declaration, falling back to the default
// rectangle delimiters when the source recorded none.
func (m *Model) nodeText(id string) string {
	n := m.nodes[id]
	open, cls := n.Open, n.Close
	if open == "" {
		open, cls = DefaultOpen, DefaultClose
	}
	return n.ID + open + n.Label + cls
}
