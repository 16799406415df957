// Package plot implements the layered plot-iteration engine.
//
// # Overview
//
// A plot is described by a table, a stack of layers and a grouping that
// assigns table columns to each layer:
//
//	layers := plot.Layers{"Figure", "Subplot", "Series", "Point"}
//	groups := plot.Groups{
//	    "Figure":  {"Offset"},
//	    "Subplot": {"Exponent"},
//	    "Series":  {"Slope"},
//	    "Point":   {"X", "Y"},
//	}
//
// [Run] sorts the table by the grouping columns in layer order and walks the
// rows once. Whenever a layer's group key changes between two adjacent rows
// the engine closes that layer (its After callback) and reopens it (its
// Before callback). The last layer of the stack is the leaf: it is never
// opened or closed, and its Point callback fires once per row.
//
// # Callbacks
//
// Every callback receives the shared [State] and may stash whatever it needs
// in State.Vars. Callbacks come from a [Callbacks] bundle supplied by the
// caller, from a named [Preset] in a [Registry], or from both: unset slots in
// the caller's bundle are filled positionally from the preset. See [Resolve].
//
// # Boundaries
//
// [ChangedLayers] decides which layers change between two rows. A layer with
// an empty grouping has no key of its own; it is reported as changed when the
// layer directly enclosing it changed its key. The inheritance is one level
// deep. Set Config.Cascade to reopen every inner layer whenever an outer one
// changes.
//
// # Errors
//
// Configuration problems are reported as CONFIG_ERROR before any callback
// runs. Errors returned by callbacks abort the run and are returned to the
// caller unmodified.
package plot
