// Package flowchart parses a practical subset of the flowchart diagram
// grammar into an immutable structural model and regenerates valid diagram
// text restricted to a visible node subset.
//
// # Architecture
//
// The package has three parts:
//
//   - Line parser: classifies one source line and extracts node
//     declarations (id, label, shape delimiters)
//   - Model builder: consumes the line stream and produces a [Model]
//   - Renderer: pure function from ([Model], [Visibility]) to diagram text
//
// The model is built once by [Parse] and never mutated afterwards. All
// interactivity happens through a visibility implementation supplied at
// render time (see package visibility).
//
// # Supported grammar
//
// Front matter blocks delimited by "---" lines, a "flowchart ..." directive,
// node declarations with thirteen delimiter pairs (rectangle, round edge,
// circle, subroutine, hexagon, stadium, cylinder, parallelograms, trapezoids,
// asymmetric, rhombus), directed edges with operator tokens drawn from
// "< > = . -", subgraph blocks, classDef/class style directives, and click
// hook directives. Anything else is dropped, never rejected: the parser is
// deliberately permissive so that degenerate input degrades to an emptier
// but still valid diagram. Dropped lines are collected for diagnostics.
//
// # Usage
//
//	m := flowchart.Parse(src)
//	text := flowchart.Render(m, vis)
//
// Round-trip guarantee: for grammar-conforming input, rendering with an
// all-visible state and re-parsing yields the same node-id set and edge set.
package flowchart
