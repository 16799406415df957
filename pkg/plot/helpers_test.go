package plot_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matzehuels/labutil/pkg/plot"
	"github.com/matzehuels/labutil/pkg/table"
)

// recorder builds a complete callback bundle that logs every invocation.
type recorder struct {
	events []string
	points []table.Row
}

func (r *recorder) fn(name string) plot.Fn {
	return func(*plot.State) error {
		r.events = append(r.events, name)
		return nil
	}
}

func (r *recorder) callbacks(layers plot.Layers) plot.Callbacks {
	cb := plot.Callbacks{
		Init: r.fn("Init"),
		Fini: r.fn("Fini"),
		Point: func(s *plot.State) error {
			r.events = append(r.events, "Point")
			r.points = append(r.points, s.Table.Rows[s.Row])
			return nil
		},
		Layers: map[string]plot.Pair{},
	}
	for _, l := range layers.Boundaries() {
		cb.Layers[l] = plot.Pair{Before: r.fn("+" + l), After: r.fn("-" + l)}
	}
	return cb
}

func (r *recorder) count(name string) int {
	n := 0
	for _, e := range r.events {
		if e == name {
			n++
		}
	}
	return n
}

func mustTable(t *testing.T, cols []string, rows ...table.Row) table.Table {
	t.Helper()
	tb, err := table.New(cols, rows)
	require.NoError(t, err)
	return tb
}

func noop(*plot.State) error { return nil }

func completePreset(name string, layers ...string) plot.Preset {
	p := plot.Preset{
		Name: name,
		Callbacks: plot.Callbacks{
			Init: noop, Fini: noop, Point: noop,
			Layers: map[string]plot.Pair{},
		},
	}
	for _, l := range layers {
		p.Callbacks.Layers[l] = plot.Pair{Before: noop, After: noop}
	}
	return p
}

func keyOf(vals ...table.Value) plot.Key { return plot.Key(vals) }

func ids(keys []plot.Key) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.String()
	}
	return out
}
