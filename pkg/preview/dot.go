// Package preview is a reference implementation of the rendering
// collaborator consumed by the core: it accepts a filtered diagram model
// and draws it. The diagram subset is translated to Graphviz DOT and laid
// out with the embedded Graphviz engine.
//
// The core never calls into this package; interactive surfaces hand it a
// model plus a visibility state when the user asks for a visual preview.
package preview

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/hbauer/flowview/pkg/flowchart"
)

// dotShapes maps shape open delimiters to Graphviz node shapes.
// Anything unmapped falls back to a plain box.
var dotShapes = map[string]string{
	"(":  "ellipse",
	"((": "doublecircle",
	"[[": "box",
	"{{": "hexagon",
	"([": "oval",
	"[(": "cylinder",
	"[/": "parallelogram",
	`[\`: "parallelogram",
	"{":  "diamond",
	">":  "cds",
}

// ToDOT converts the visible part of a model to Graphviz DOT. Subgraphs
// become clusters, edge arrowheads follow the operator token (">" forward,
// "<" backward, both bidirectional, neither undirected), and the layout
// direction is taken from the directive line ("LR", "RL", "BT", else
// top-down).
func ToDOT(m *flowchart.Model, vis flowchart.Visibility) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir(m.Directive()))
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white];\n")
	buf.WriteString("\n")

	for i, sg := range m.Subgraphs() {
		var members []string
		for _, id := range sg.Members {
			if vis.IsVisible(id) {
				members = append(members, id)
			}
		}
		if len(members) == 0 {
			continue
		}
		fmt.Fprintf(&buf, "  subgraph cluster_%d {\n", i)
		fmt.Fprintf(&buf, "    label=%q;\n", sg.ID)
		for _, id := range members {
			n, _ := m.Node(id)
			fmt.Fprintf(&buf, "    %s;\n", nodeStmt(n))
		}
		buf.WriteString("  }\n")
	}

	for _, id := range m.TopLevel() {
		if vis.IsVisible(id) {
			n, _ := m.Node(id)
			fmt.Fprintf(&buf, "  %s;\n", nodeStmt(n))
		}
	}
	for _, id := range m.KnownIDs() {
		if _, declared := m.Node(id); !declared && vis.IsVisible(id) {
			// Dangling endpoint: no declaration, draw as a bare box.
			fmt.Fprintf(&buf, "  %q;\n", id)
		}
	}

	buf.WriteString("\n")
	for _, e := range m.Edges() {
		if !vis.IsVisible(e.From) || !vis.IsVisible(e.To) {
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [dir=%s];\n", e.From, e.To, edgeDir(e.Op))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeStmt(n flowchart.Node) string {
	label := n.Label
	if label == "" {
		label = n.ID
	}
	shape, ok := dotShapes[n.Open]
	if !ok {
		shape = "box"
	}
	return fmt.Sprintf("%q [label=%q, shape=%s]", n.ID, label, shape)
}

func rankdir(directive string) string {
	for _, d := range []string{"LR", "RL", "BT"} {
		if strings.HasSuffix(strings.TrimSpace(directive), d) {
			return d
		}
	}
	return "TB"
}

func edgeDir(op string) string {
	fwd := strings.Contains(op, ">")
	back := strings.Contains(op, "<")
	switch {
	case fwd && back:
		return "both"
	case back:
		return "back"
	case fwd:
		return "forward"
	default:
		return "none"
	}
}

// RenderSVG lays out a DOT graph and returns SVG bytes.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
