package flowchart

import (
	"fmt"
	"strings"
)

// Parse builds the structural model for one diagram source text.
//
// Parsing is permissive: lines that match no recognized construct are
// collected in [Model.Dropped] and otherwise ignored, so Parse never fails.
// Each line is classified with a fixed precedence: blank/comment, classDef,
// class, subgraph open, subgraph close, click hook, node declaration, edge
// declaration, dropped.
//
// Only one subgraph container is open at a time. Opening a subgraph while
// inside one replaces the current container rather than nesting, and a
// block left unterminated stays open through the rest of the input.
func Parse(text string) *Model {
	b := &builder{
		m: &Model{
			nodes:    make(map[string]*Node),
			knownSet: make(map[string]bool),
		},
	}

	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = strings.TrimSuffix(lines[i], "\r")
	}

	start := b.captureFrontMatter(lines)
	for i := start; i < len(lines); i++ {
		b.consume(i+1, lines[i])
	}
	return b.m
}

// builder holds the mutable state of one Parse run. The model it produces
// is never touched again after Parse returns.
type builder struct {
	m            *Model
	current      *Subgraph // open subgraph container, nil at top level
	subgraphSeq  int
	gotDirective bool
}

// captureFrontMatter captures a leading block delimited by exact "---"
// lines, both delimiters included, and returns the index of the first line
// after the block. The block is kept verbatim and excluded from grammar
// parsing. An unterminated block swallows the rest of the input.
func (b *builder) captureFrontMatter(lines []string) int {
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return 0
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			b.m.frontMatter = append([]string(nil), lines[:i+1]...)
			return i + 1
		}
	}
	b.m.frontMatter = append([]string(nil), lines...)
	return len(lines)
}

// consume classifies one line and updates the model.
func (b *builder) consume(lineNo int, raw string) {
	line := stripComment(raw)
	if line == "" {
		return
	}

	// "flowchart" is a valid node id, so a line like "flowchart[Label]" or
	// "flowchart --> x" must win over directive capture; only a line that
	// parses as neither becomes the directive.
	if !b.gotDirective && directiveRe.MatchString(line) && !looksLikeDeclaration(line) {
		b.m.directive = line
		b.gotDirective = true
		return
	}

	fields := strings.Fields(line)
	switch fields[0] {
	case "classDef":
		if len(fields) >= 3 {
			b.m.classDefs = append(b.m.classDefs, line)
			return
		}
	case "class":
		if len(fields) >= 3 {
			b.assignClass(fields)
			return
		}
	case "subgraph":
		b.openSubgraph(line)
		return
	case "end":
		if len(fields) == 1 {
			b.current = nil
			return
		}
	case "click":
		// Interaction hooks are part of the emitted grammar; consuming them
		// silently keeps rendered output free of diagnostic noise on
		// re-parse. The hook target is rebuilt at render time.
		return
	}

	if d, ok := parseNode(line); ok {
		b.declareNode(d)
		return
	}
	if e, ok := parseEdge(line); ok {
		b.m.edges = append(b.m.edges, e)
		b.know(e.From)
		b.know(e.To)
		return
	}

	b.m.dropped = append(b.m.dropped, DroppedLine{Line: lineNo, Text: line})
}

// assignClass records a "class <id-list> <name>" directive. The id list is
// split on whitespace and commas; the final field is the class name.
func (b *builder) assignClass(fields []string) {
	var ids []string
	for _, f := range fields[1 : len(fields)-1] {
		for _, id := range strings.Split(f, ",") {
			if id != "" {
				ids = append(ids, id)
			}
		}
	}
	if len(ids) == 0 {
		return
	}
	b.m.classes = append(b.m.classes, ClassAssignment{IDs: ids, Name: fields[len(fields)-1]})
}

// openSubgraph starts a new container. The header is kept verbatim; the id
// is the leading id token of the header remainder, or a synthesized "sgN"
// when omitted. Opening while a container is already open replaces it - the
// grammar has a single container slot, not a stack.
func (b *builder) openSubgraph(line string) {
	rest := strings.TrimSpace(strings.TrimPrefix(line, "subgraph"))
	b.subgraphSeq++
	id := idRe.FindString(rest)
	if id == "" {
		id = fmt.Sprintf("sg%d", b.subgraphSeq)
	}
	sg := &Subgraph{ID: id, Header: line}
	b.m.subgraphs = append(b.m.subgraphs, sg)
	b.current = sg
}

// declareNode registers a node declaration. Attributes are last-write-wins,
// but container membership and list position are fixed at first occurrence.
func (b *builder) declareNode(d nodeDecl) {
	label := normalizeLabel(d.label)
	if n, ok := b.m.nodes[d.id]; ok {
		n.Label = label
		n.Open = d.open
		n.Close = d.close
		return
	}

	n := &Node{ID: d.id, Label: label, Open: d.open, Close: d.close}
	if b.current != nil {
		n.Subgraph = b.current.ID
		b.current.Members = append(b.current.Members, d.id)
	} else {
		b.m.topLevel = append(b.m.topLevel, d.id)
	}
	b.m.nodes[d.id] = n
	b.m.declOrder = append(b.m.declOrder, d.id)
	b.know(d.id)
}

// looksLikeDeclaration reports whether line parses as a node or edge.
func looksLikeDeclaration(line string) bool {
	if _, ok := parseNode(line); ok {
		return true
	}
	_, ok := parseEdge(line)
	return ok
}

// know adds id to the known-id universe, keeping first-appearance order.
func (b *builder) know(id string) {
	if !b.m.knownSet[id] {
		b.m.knownSet[id] = true
		b.m.knownIDs = append(b.m.knownIDs, id)
	}
}
