// Package pkg provides the core libraries for flowview diagram filtering.
//
// # Overview
//
// Flowview parses flowchart diagram text, tracks which nodes are visible,
// and regenerates the diagram with hidden nodes removed. The pkg directory
// is organized into three main areas:
//
//  1. Core - diagram semantics ([flowchart], [reach], [visibility])
//  2. Infra - supporting infrastructure ([session], [store], [cache], [events])
//  3. Collaborators - optional surfaces the core never depends on ([preview])
//
// # Architecture
//
// The typical data flow through flowview:
//
//	Diagram text
//	         ↓
//	    [flowchart] package (parse into an immutable model)
//	         ↓
//	    [reach] package (forward/backward reachability index)
//	         ↓
//	    [visibility] package (per-session show/hide state)
//	         ↓
//	    [flowchart] renderer (filtered diagram text)
//
// The model produced by parsing is immutable; all interaction happens
// through visibility state. Rendering a fully visible model reproduces an
// equivalent diagram, so parse and render form a round trip.
//
// # Quick Start
//
//	m := flowchart.Parse(source)
//	vis := visibility.New(m)
//	vis.HideAll()
//	vis.ShowDescendants("api")
//	text := flowchart.Render(m, vis)
package pkg
