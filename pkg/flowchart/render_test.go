package flowchart

import (
	"slices"
	"sort"
	"strings"
	"testing"
)

// setVis is a minimal Visibility for renderer tests: ids present in the map
// use the stored value, everything else is visible.
type setVis map[string]bool

func (v setVis) IsVisible(id string) bool {
	vis, ok := v[id]
	return vis || !ok
}

func idSet(m *Model) []string {
	ids := m.KnownIDs()
	sort.Strings(ids)
	return ids
}

func edgeSet(m *Model) []Edge {
	edges := m.Edges()
	sort.Slice(edges, func(i, j int) bool {
		a, b := edges[i], edges[j]
		return a.From+a.Op+a.To < b.From+b.Op+b.To
	})
	return edges
}

func TestRenderRoundTrip(t *testing.T) {
	src := `---
title: Pipeline
---
flowchart LR
classDef warn fill:#f96
subgraph stage1 Ingest
    fetch[/Fetch/]
    clean[Clean]
end
store[(Store)]
check{Valid?}
class fetch,clean warn
fetch --> clean
clean --> store
store <--> check
check -.-> ghost
`
	m := Parse(src)
	out := Render(m, AllVisible{})
	m2 := Parse(out)

	if !slices.Equal(idSet(m), idSet(m2)) {
		t.Errorf("id set changed across round trip:\n  before %v\n  after  %v", idSet(m), idSet(m2))
	}
	if !slices.Equal(edgeSet(m), edgeSet(m2)) {
		t.Errorf("edge set changed across round trip:\n  before %v\n  after  %v", edgeSet(m), edgeSet(m2))
	}
	if m2.Directive() != "flowchart LR" {
		t.Errorf("directive = %q", m2.Directive())
	}
	if !slices.Equal(m2.FrontMatter(), m.FrontMatter()) {
		t.Errorf("front matter changed: %v", m2.FrontMatter())
	}
	if len(m2.Dropped()) != 0 {
		t.Errorf("round-tripped output has unparseable lines: %v", m2.Dropped())
	}
}

func TestRenderDefaultDirective(t *testing.T) {
	m := Parse("a[A]\n")
	out := Render(m, AllVisible{})
	if !strings.HasPrefix(out, DefaultDirective+"\n") {
		t.Errorf("output does not start with default directive:\n%s", out)
	}
}

func TestRenderCustomConfig(t *testing.T) {
	m := Parse("a[A]\n")
	r := Renderer{Directive: "flowchart RL", Callback: "onNode"}
	out := r.Render(m, AllVisible{})
	if !strings.Contains(out, "flowchart RL\n") {
		t.Errorf("custom directive missing:\n%s", out)
	}
	if !strings.Contains(out, "click a onNode\n") {
		t.Errorf("custom callback missing:\n%s", out)
	}
}

// Hiding one endpoint must drop the whole edge line.
func TestRenderNoOrphanEdges(t *testing.T) {
	m := Parse("flowchart TD\na[A]\nb[B]\na --> b\n")
	out := Render(m, setVis{"b": false})

	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "-->") {
			t.Errorf("orphan edge survived: %q", line)
		}
		if strings.Contains(line, "b") && line != "flowchart TD" {
			t.Errorf("hidden id mentioned: %q", line)
		}
	}
}

func TestRenderEmptySubgraphElision(t *testing.T) {
	m := Parse("flowchart TD\nsubgraph grp Group\n    x[X]\nend\ny[Y]\n")
	out := Render(m, setVis{"x": false})

	if strings.Contains(out, "subgraph") || strings.Contains(out, "end") {
		t.Errorf("empty subgraph not elided:\n%s", out)
	}
	if !strings.Contains(out, "y[Y]") {
		t.Errorf("visible node missing:\n%s", out)
	}
}

func TestRenderShapeRoundTrip(t *testing.T) {
	m := Parse("flowchart TD\ndb[(Records)]\n")
	out := Render(m, AllVisible{})
	if !strings.Contains(out, "db[(Records)]") {
		t.Errorf("cylinder delimiters lost:\n%s", out)
	}
}

func TestRenderDefaultRectangleFallback(t *testing.T) {
	m := Parse("flowchart TD\nsubgraph g\n    a[A]\nend\na --> b\n")
	// b is dangling: it has no declaration, so it renders nowhere except the
	// hook and edge lines.
	out := Render(m, AllVisible{})
	if !strings.Contains(out, "click b") {
		t.Errorf("dangling id missing from hooks:\n%s", out)
	}
	if !strings.Contains(out, "a --> b") {
		t.Errorf("edge missing:\n%s", out)
	}
}

func TestRenderClassAssignmentFiltering(t *testing.T) {
	m := Parse("flowchart TD\na[A]\nb[B]\nc[C]\nclass a,b,c warn\n")

	out := Render(m, setVis{"b": false})
	if !strings.Contains(out, "class a,c warn") {
		t.Errorf("filtered class line wrong:\n%s", out)
	}

	out = Render(m, setVis{"a": false, "b": false, "c": false})
	if strings.Contains(out, "class ") {
		t.Errorf("empty class assignment not omitted:\n%s", out)
	}
}

func TestRenderHooksOnlyVisible(t *testing.T) {
	m := Parse("flowchart TD\na[A]\nb[B]\n")
	out := Render(m, setVis{"b": false})
	if !strings.Contains(out, "click a") {
		t.Errorf("hook for visible node missing:\n%s", out)
	}
	if strings.Contains(out, "click b") {
		t.Errorf("hook for hidden node emitted:\n%s", out)
	}
}

// A fully hidden model still renders a valid, if empty, diagram.
func TestRenderAllHidden(t *testing.T) {
	m := Parse("flowchart TD\na[A]\nb[B]\na --> b\n")
	out := Render(m, setVis{"a": false, "b": false})
	if out != "flowchart TD\n" {
		t.Errorf("all-hidden render = %q, want directive only", out)
	}
	if m2 := Parse(out); m2.NodeCount() != 0 || len(m2.Dropped()) != 0 {
		t.Errorf("all-hidden output does not re-parse cleanly")
	}
}

func TestRenderSubgraphIndentation(t *testing.T) {
	m := Parse("flowchart TD\nsubgraph g Group\n    a[A]\nend\n")
	out := Render(m, AllVisible{})
	if !strings.Contains(out, "subgraph g Group\n    a[A]\nend\n") {
		t.Errorf("subgraph block malformed:\n%s", out)
	}
}
