package preview

import (
	"strings"
	"testing"

	"github.com/hbauer/flowview/pkg/flowchart"
)

type setVis map[string]bool

func (v setVis) IsVisible(id string) bool {
	vis, ok := v[id]
	return vis || !ok
}

func TestToDOTBasic(t *testing.T) {
	m := flowchart.Parse("flowchart LR\na[Start]\nb{Choice}\na --> b\n")
	dot := ToDOT(m, flowchart.AllVisible{})

	for _, want := range []string{
		"rankdir=LR",
		`"a" [label="Start", shape=box]`,
		`"b" [label="Choice", shape=diamond]`,
		`"a" -> "b" [dir=forward]`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTFiltersHidden(t *testing.T) {
	m := flowchart.Parse("flowchart TD\na[A]\nb[B]\na --> b\n")
	dot := ToDOT(m, setVis{"b": false})

	if strings.Contains(dot, `"b"`) {
		t.Errorf("hidden node in DOT:\n%s", dot)
	}
	if strings.Contains(dot, "->") {
		t.Errorf("orphan edge in DOT:\n%s", dot)
	}
}

func TestToDOTSubgraphCluster(t *testing.T) {
	m := flowchart.Parse("flowchart TD\nsubgraph grp Group\n    x[X]\nend\n")
	dot := ToDOT(m, flowchart.AllVisible{})

	if !strings.Contains(dot, "subgraph cluster_0") || !strings.Contains(dot, `label="grp"`) {
		t.Errorf("cluster missing:\n%s", dot)
	}

	dot = ToDOT(m, setVis{"x": false})
	if strings.Contains(dot, "cluster_0") {
		t.Errorf("empty cluster not elided:\n%s", dot)
	}
}

func TestToDOTEdgeDirections(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"forward", "a --> b", "dir=forward"},
		{"backward", "a <-- b", "dir=back"},
		{"bidirectional", "a <--> b", "dir=both"},
		{"plain", "a --- b", "dir=none"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := flowchart.Parse("flowchart TD\n" + tt.src + "\n")
			dot := ToDOT(m, flowchart.AllVisible{})
			if !strings.Contains(dot, tt.want) {
				t.Errorf("DOT missing %q:\n%s", tt.want, dot)
			}
		})
	}
}

func TestToDOTDanglingEndpoint(t *testing.T) {
	m := flowchart.Parse("flowchart TD\na[A]\na --> ghost\n")
	dot := ToDOT(m, flowchart.AllVisible{})
	if !strings.Contains(dot, `"ghost"`) {
		t.Errorf("dangling endpoint missing from DOT:\n%s", dot)
	}
}
