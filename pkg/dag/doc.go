// Package dag provides a small directed graph with deterministic ordering.
//
// # Overview
//
// labutil uses the graph to describe how experiment parameters depend on
// each other: an edge "length" → "height" says the value list of height is
// computed from the current value of length. Nodes remember the order in
// which they were added, and every accessor that returns several nodes
// reports them in that order. Orderings derived from the graph are
// therefore reproducible between runs.
//
// # Basic Usage
//
//	g := dag.New(nil)
//	g.AddNode(dag.Node{ID: "length"})
//	g.AddNode(dag.Node{ID: "height"})
//	g.AddEdge(dag.Edge{From: "length", To: "height"})
//
// Use [DAG.Validate] or [DAG.Cycle] to detect directed cycles.
//
// # Metadata
//
// Both nodes and the graph itself carry [Metadata] maps. The experiment
// package stores a parameter's value count there so that renderers can
// annotate nodes. Metadata maps are never nil.
//
// # Concurrency
//
// DAG instances are not safe for concurrent use.
//
// # Related Packages
//
// The [transform] subpackage orders a graph topologically and assigns
// depth rows to its nodes.
//
// [transform]: github.com/matzehuels/labutil/pkg/dag/transform
package dag
