package reach

import (
	"slices"
	"sort"
	"testing"

	"github.com/hbauer/flowview/pkg/flowchart"
)

func sorted(ids []string) []string {
	out := slices.Clone(ids)
	sort.Strings(out)
	return out
}

func TestDescendantsChain(t *testing.T) {
	m := flowchart.Parse("flowchart TD\na --> b\nb --> c\n")
	idx := NewIndex(m)

	if got := sorted(idx.Descendants("a")); !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("Descendants(a) = %v, want [a b c]", got)
	}
	if got := idx.Descendants("c"); !slices.Equal(got, []string{"c"}) {
		t.Errorf("Descendants(c) = %v, want [c]", got)
	}
}

func TestAncestorsChain(t *testing.T) {
	m := flowchart.Parse("flowchart TD\na --> b\nb --> c\n")
	idx := NewIndex(m)

	if got := sorted(idx.Ancestors("c")); !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("Ancestors(c) = %v, want [a b c]", got)
	}
	if got := idx.Ancestors("a"); !slices.Equal(got, []string{"a"}) {
		t.Errorf("Ancestors(a) = %v, want [a]", got)
	}
}

func TestBidirectionalOperator(t *testing.T) {
	m := flowchart.Parse("flowchart TD\na <--> b\n")
	idx := NewIndex(m)

	if got := sorted(idx.Descendants("a")); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Descendants(a) = %v, want [a b]", got)
	}
	if got := sorted(idx.Ancestors("a")); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Ancestors(a) = %v, want [a b]", got)
	}
}

func TestBackwardOperator(t *testing.T) {
	m := flowchart.Parse("flowchart TD\na <-- b\n")
	idx := NewIndex(m)

	// "<" points at the declared source: b is the semantic parent.
	if got := sorted(idx.Descendants("b")); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Descendants(b) = %v, want [a b]", got)
	}
	if got := sorted(idx.Ancestors("a")); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Ancestors(a) = %v, want [a b]", got)
	}
}

func TestPlainLinkAddsNoArcs(t *testing.T) {
	m := flowchart.Parse("flowchart TD\na --- b\n")
	idx := NewIndex(m)

	if got := idx.Descendants("a"); !slices.Equal(got, []string{"a"}) {
		t.Errorf("Descendants(a) = %v, want [a]", got)
	}
	if got := idx.Ancestors("b"); !slices.Equal(got, []string{"b"}) {
		t.Errorf("Ancestors(b) = %v, want [b]", got)
	}
}

func TestCycleTerminates(t *testing.T) {
	m := flowchart.Parse("flowchart TD\na --> b\nb --> c\nc --> a\n")
	idx := NewIndex(m)

	got := sorted(idx.Descendants("b"))
	if !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("Descendants(b) = %v, want full cycle once each", got)
	}
}

func TestUnknownID(t *testing.T) {
	m := flowchart.Parse("flowchart TD\na --> b\n")
	idx := NewIndex(m)

	if got := idx.Descendants("zzz"); !slices.Equal(got, []string{"zzz"}) {
		t.Errorf("Descendants(zzz) = %v, want singleton", got)
	}
	if got := idx.Ancestors("zzz"); !slices.Equal(got, []string{"zzz"}) {
		t.Errorf("Ancestors(zzz) = %v, want singleton", got)
	}
}

func TestDanglingEndpointTraversable(t *testing.T) {
	m := flowchart.Parse("flowchart TD\na[A]\na --> ghost\n")
	idx := NewIndex(m)

	if got := sorted(idx.Descendants("a")); !slices.Equal(got, []string{"a", "ghost"}) {
		t.Errorf("Descendants(a) = %v, want [a ghost]", got)
	}
	if got := sorted(idx.Ancestors("ghost")); !slices.Equal(got, []string{"a", "ghost"}) {
		t.Errorf("Ancestors(ghost) = %v, want [a ghost]", got)
	}
}
