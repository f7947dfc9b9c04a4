package flowchart

import (
	"regexp"
	"strings"
)

// commentMarker starts an inline comment; everything from the marker to the
// end of the line is ignored.
const commentMarker = "%%"

// shapePair is one delimiter pair from the shape catalog.
type shapePair struct {
	open  string
	close string
}

// shapeCatalog lists the supported delimiter pairs, tried longest open token
// first so that an ambiguous shorter prefix can never shadow a longer one
// ("((" must win over "("). The `[/` and `[\` opens appear twice because
// parallelograms and trapezoids share opens and differ only in their close.
var shapeCatalog = []shapePair{
	{"((", "))"},  // circle
	{"[[", "]]"},  // subroutine
	{"{{", "}}"},  // hexagon
	{"([", "])"},  // stadium
	{"[(", ")]"},  // cylinder
	{"[/", "/]"},  // parallelogram
	{`[\`, `\]`},  // parallelogram alt
	{"[/", `\]`},  // trapezoid
	{`[\`, "/]"},  // trapezoid alt
	{"(", ")"},    // round edge
	{">", "]"},    // asymmetric
	{"[", "]"},    // rectangle
	{"{", "}"},    // rhombus
}

var (
	idRe        = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*`)
	edgeRe      = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9_-]*?)\s*([<>=.\-]+)\s*([A-Za-z][A-Za-z0-9_-]*)$`)
	directiveRe = regexp.MustCompile(`(?i)^flowchart\b`)
)

// nodeDecl is the result of matching a node declaration line.
type nodeDecl struct {
	id    string
	label string
	open  string
	close string
}

// stripComment removes an inline comment and surrounding whitespace.
// An empty result means the line carries no grammar content.
func stripComment(line string) string {
	if i := strings.Index(line, commentMarker); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line)
}

// parseNode matches a single comment-stripped line against the shape
// catalog. A match requires a valid leading id token whose remainder starts
// with a catalog open token and ends with the corresponding close token.
func parseNode(line string) (nodeDecl, bool) {
	id := idRe.FindString(line)
	if id == "" {
		return nodeDecl{}, false
	}
	rest := line[len(id):]
	for _, s := range shapeCatalog {
		if len(rest) < len(s.open)+len(s.close) {
			continue
		}
		if strings.HasPrefix(rest, s.open) && strings.HasSuffix(rest, s.close) {
			label := rest[len(s.open) : len(rest)-len(s.close)]
			return nodeDecl{id: id, label: label, open: s.open, close: s.close}, true
		}
	}
	return nodeDecl{}, false
}

// parseEdge matches "id <op> id" where op is a non-empty run drawn from the
// operator character set. The left id is matched lazily because "-" belongs
// to both the id and the operator alphabet.
func parseEdge(line string) (Edge, bool) {
	m := edgeRe.FindStringSubmatch(line)
	if m == nil {
		return Edge{}, false
	}
	return Edge{From: m[1], To: m[3], Op: m[2]}, true
}

// normalizeLabel folds escaped-newline sequences into single spaces.
// Applied uniformly at build time so every parsing entry point agrees.
func normalizeLabel(label string) string {
	return strings.ReplaceAll(label, `\n`, " ")
}
