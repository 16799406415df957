// Package pkg provides the libraries behind labutil, a toolkit for plotting
// the results of parameter-sweep experiments.
//
// # Overview
//
// An experiment produces a table: one row per measurement, one column per
// parameter or metric. labutil sorts that table by a stack of layers and
// walks it row by row, calling user or preset callbacks whenever a layer's
// value changes. The pkg directory is organized as follows:
//
//  1. [table] - The in-memory table, value ordering, CSV and JSON I/O
//  2. [plot] - Reordering, boundary detection and the layer-iteration engine
//  3. [plotfns] - Preset callbacks that draw figures with gonum/plot
//  4. [experiment] - Parameter sets with dependent value lists
//  5. [config] - TOML plot files
//
// # Architecture
//
// The typical data flow:
//
//	results.csv ──▶ [table] ──▶ [plot].Reorder ──▶ [plot].Run
//	                                                   │
//	                              callbacks ◀──────────┘
//	                       ([plotfns] presets or user code)
//	                                   │
//	                                   ▼
//	                     one image per Figure layer value
//
// Experiments feed the table: [experiment] enumerates every combination of
// parameters, and each run appends its measurements as rows.
//
// # Quick Start
//
//	tbl, _ := table.Load("results.csv")
//	_, err := plot.Run(ctx, plot.Config{
//	    Table:  tbl,
//	    Layers: plot.Layers{"Figure", "Subplot", "Series", "Point"},
//	    Groups: plot.Groups{
//	        "Figure":  {"Offset"},
//	        "Subplot": {},
//	        "Series":  {"Mode"},
//	        "Point":   {"X", "Y"},
//	    },
//	    Preset:    plotfns.BarStacked,
//	    Registry:  plotfns.NewRegistry(),
//	    OutputDir: "plots",
//	})
//
// # Supporting Packages
//
// [dag] - Directed graph with Kahn topological sort, used to order
// experiment parameters by their dependencies.
//
// [render/nodelink] - Graphviz rendering of parameter dependency graphs.
//
// [errors] - Coded errors: CONFIG_ERROR, CALLBACK_ERROR and friends.
//
// [observability] - Optional hooks for plot runs, written figures and
// parameter enumeration.
//
// [table]: https://pkg.go.dev/github.com/matzehuels/labutil/pkg/table
// [plot]: https://pkg.go.dev/github.com/matzehuels/labutil/pkg/plot
// [plotfns]: https://pkg.go.dev/github.com/matzehuels/labutil/pkg/plotfns
// [experiment]: https://pkg.go.dev/github.com/matzehuels/labutil/pkg/experiment
// [config]: https://pkg.go.dev/github.com/matzehuels/labutil/pkg/config
// [dag]: https://pkg.go.dev/github.com/matzehuels/labutil/pkg/dag
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/labutil/pkg/render/nodelink
// [errors]: https://pkg.go.dev/github.com/matzehuels/labutil/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/labutil/pkg/observability
package pkg
