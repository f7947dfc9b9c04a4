package cli

import (
	"strings"
	"testing"

	"github.com/hbauer/flowview/pkg/flowchart"
)

const filterSrc = `flowchart LR
a[Start]
b[Middle]
c[End]
a --> b
b --> c
`

func TestRunFilterNoOps(t *testing.T) {
	text, err := runFilter(filterSrc, filterOptions{}, flowchart.Renderer{})
	if err != nil {
		t.Fatalf("runFilter error: %v", err)
	}
	for _, want := range []string{"a[Start]", "b[Middle]", "c[End]", "a --> b"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
}

func TestRunFilterHide(t *testing.T) {
	text, err := runFilter(filterSrc, filterOptions{Hide: "b"}, flowchart.Renderer{})
	if err != nil {
		t.Fatalf("runFilter error: %v", err)
	}
	if strings.Contains(text, "b[Middle]") || strings.Contains(text, "a --> b") {
		t.Errorf("hidden node leaked:\n%s", text)
	}
	if !strings.Contains(text, "a[Start]") || !strings.Contains(text, "c[End]") {
		t.Errorf("visible nodes missing:\n%s", text)
	}
}

func TestRunFilterHideAllThenDescendants(t *testing.T) {
	opts := filterOptions{HideAll: true, Descendants: []string{"b"}}
	text, err := runFilter(filterSrc, opts, flowchart.Renderer{})
	if err != nil {
		t.Fatalf("runFilter error: %v", err)
	}
	if strings.Contains(text, "a[Start]") {
		t.Errorf("node outside closure leaked:\n%s", text)
	}
	if !strings.Contains(text, "b[Middle]") || !strings.Contains(text, "c[End]") {
		t.Errorf("closure nodes missing:\n%s", text)
	}
}

func TestRunFilterShowOverridesHideAll(t *testing.T) {
	opts := filterOptions{HideAll: true, Show: "a, c"}
	text, err := runFilter(filterSrc, opts, flowchart.Renderer{})
	if err != nil {
		t.Fatalf("runFilter error: %v", err)
	}
	if !strings.Contains(text, "a[Start]") || !strings.Contains(text, "c[End]") {
		t.Errorf("shown nodes missing:\n%s", text)
	}
	// No edge survives since b stays hidden.
	if strings.Contains(text, "-->") {
		t.Errorf("edge through hidden node leaked:\n%s", text)
	}
}

func TestRunFilterHideWinsLast(t *testing.T) {
	opts := filterOptions{Show: "b", Hide: "b"}
	text, err := runFilter(filterSrc, opts, flowchart.Renderer{})
	if err != nil {
		t.Fatalf("runFilter error: %v", err)
	}
	if strings.Contains(text, "b[Middle]") {
		t.Errorf("--hide should apply after --show:\n%s", text)
	}
}

func TestRunFilterConflictingFlags(t *testing.T) {
	if _, err := runFilter(filterSrc, filterOptions{HideAll: true, ShowAll: true}, flowchart.Renderer{}); err == nil {
		t.Error("expected error for --hide-all with --show-all")
	}
}

func TestSplitIDList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b ", []string{"a", "b"}},
		{"a,,b,", []string{"a", "b"}},
	}
	for _, tt := range tests {
		got := splitIDList(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("splitIDList(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("splitIDList(%q) = %v, want %v", tt.in, got, tt.want)
				break
			}
		}
	}
}
