package flowchart

import "testing"

func TestParseNodeShapes(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		id    string
		label string
		open  string
		close string
	}{
		{"rectangle", "a[Box]", "a", "Box", "[", "]"},
		{"round edge", "a(Round)", "a", "Round", "(", ")"},
		{"circle", "a((Circle))", "a", "Circle", "((", "))"},
		{"subroutine", "a[[Sub]]", "a", "Sub", "[[", "]]"},
		{"hexagon", "a{{Hex}}", "a", "Hex", "{{", "}}"},
		{"stadium", "a([Stadium])", "a", "Stadium", "([", "])"},
		{"cylinder", "a[(Cylinder)]", "a", "Cylinder", "[(", ")]"},
		{"parallelogram", "a[/Lean/]", "a", "Lean", "[/", "/]"},
		{"parallelogram alt", `a[\Lean\]`, "a", "Lean", `[\`, `\]`},
		{"trapezoid", `a[/Trap\]`, "a", "Trap", "[/", `\]`},
		{"trapezoid alt", `a[\Trap/]`, "a", "Trap", `[\`, "/]"},
		{"asymmetric", "a>Flag]", "a", "Flag", ">", "]"},
		{"rhombus", "a{Choice}", "a", "Choice", "{", "}"},
		{"id with hyphen and digits", "my-node2{{X}}", "my-node2", "X", "{{", "}}"},
		{"empty label", "a[]", "a", "", "[", "]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := parseNode(tt.line)
			if !ok {
				t.Fatalf("parseNode(%q) did not match", tt.line)
			}
			if d.id != tt.id || d.label != tt.label || d.open != tt.open || d.close != tt.close {
				t.Errorf("parseNode(%q) = %+v, want id=%q label=%q open=%q close=%q",
					tt.line, d, tt.id, tt.label, tt.open, tt.close)
			}
		})
	}
}

func TestParseNodeNoMatch(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"bare id", "a"},
		{"leading digit id", "1a[Box]"},
		{"unterminated shape", "a[Box"},
		{"edge line", "a --> b"},
		{"style directive", "classDef warn fill:#f96"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if d, ok := parseNode(tt.line); ok {
				t.Errorf("parseNode(%q) matched unexpectedly: %+v", tt.line, d)
			}
		})
	}
}

// A circle declaration is prefix-compatible with the round-edge pair; the
// catalog order must let the longer open token win.
func TestParseNodeDelimiterPrecedence(t *testing.T) {
	d, ok := parseNode("id((Label))")
	if !ok {
		t.Fatal("circle declaration did not match")
	}
	if d.open != "((" || d.close != "))" {
		t.Errorf("got delimiters %q %q, want %q %q", d.open, d.close, "((", "))")
	}
	if d.label != "Label" {
		t.Errorf("got label %q, want %q", d.label, "Label")
	}
}

func TestParseEdge(t *testing.T) {
	tests := []struct {
		name string
		line string
		from string
		to   string
		op   string
	}{
		{"forward", "a --> b", "a", "b", "-->"},
		{"forward no spaces", "a-->b", "a", "b", "-->"},
		{"backward", "a <-- b", "a", "b", "<--"},
		{"bidirectional", "a <--> b", "a", "b", "<-->"},
		{"plain link", "a --- b", "a", "b", "---"},
		{"dotted", "a -.-> b", "a", "b", "-.->"},
		{"thick", "a ==> b", "a", "b", "==>"},
		{"hyphenated ids", "first-step --> second-step", "first-step", "second-step", "-->"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ok := parseEdge(tt.line)
			if !ok {
				t.Fatalf("parseEdge(%q) did not match", tt.line)
			}
			if e.From != tt.from || e.To != tt.to || e.Op != tt.op {
				t.Errorf("parseEdge(%q) = %+v, want from=%q to=%q op=%q",
					tt.line, e, tt.from, tt.to, tt.op)
			}
		})
	}
}

func TestParseEdgeNoMatch(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"missing target", "a -->"},
		{"missing operator", "a b"},
		{"target with shape", "a --> b[Box]"},
		{"trailing text", "a --> b extra"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if e, ok := parseEdge(tt.line); ok {
				t.Errorf("parseEdge(%q) matched unexpectedly: %+v", tt.line, e)
			}
		})
	}
}

func TestStripComment(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"plain", "  a[Box]  ", "a[Box]"},
		{"full-line comment", "%% nothing here", ""},
		{"inline comment", "a[Box] %% trailing", "a[Box]"},
		{"blank", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripComment(tt.line); got != tt.want {
				t.Errorf("stripComment(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestNormalizeLabel(t *testing.T) {
	if got := normalizeLabel(`first\nsecond`); got != "first second" {
		t.Errorf("normalizeLabel = %q, want %q", got, "first second")
	}
}
