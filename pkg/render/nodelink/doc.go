// Package nodelink renders parameter graphs as node-link diagrams.
//
// Nodes appear as rounded boxes connected by arrows from each dependency to
// the parameters computed from it. Layout and encoding are done in process
// by Graphviz.
//
// # Usage
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Detailed: true})
//	svg, err := nodelink.Render(ctx, dot, "svg")
//
// # Options
//
// With Detailed set, node labels list the node's depth row followed by its
// metadata in key order. Nodes whose metadata sets [MetaHighlight] are
// filled with a highlight color.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for rendering, which
// embeds Graphviz as WebAssembly and needs no system installation.
package nodelink
