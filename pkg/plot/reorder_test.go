package plot_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/matzehuels/labutil/pkg/errors"
	"github.com/matzehuels/labutil/pkg/plot"
	"github.com/matzehuels/labutil/pkg/table"
)

func TestReorder_ColumnOrder(t *testing.T) {
	tb := mustTable(t, []string{"Y", "Unused", "X", "Series", "Offset"},
		table.Row{10, "u", 2, "b", 0},
		table.Row{20, "u", 1, "a", 5},
	)
	layers := plot.Layers{"Figure", "Series", "Point"}
	groups := plot.Groups{"Figure": {"Offset"}, "Series": {"Series"}, "Point": {"X", "Y", "Offset"}}

	got, err := plot.Reorder(tb, layers, groups, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Offset", "Series", "X", "Y"}, got.Columns)
	assert.Equal(t, []table.Row{{0, "b", 2, 10}, {5, "a", 1, 20}}, got.Rows)

	// input untouched
	assert.Equal(t, []string{"Y", "Unused", "X", "Series", "Offset"}, tb.Columns)
}

func TestReorder_Errors(t *testing.T) {
	tb := mustTable(t, []string{"A"}, table.Row{1})

	_, err := plot.Reorder(tb, plot.Layers{"Figure", "Point"}, plot.Groups{"Figure": {"Missing"}, "Point": {}}, nil)
	require.Error(t, err)
	assert.True(t, errs.IsConfig(err))

	_, err = plot.Reorder(tb, plot.Layers{"Figure", "Point"}, plot.Groups{"Point": {"A"}}, nil)
	require.Error(t, err)
	assert.True(t, errs.IsConfig(err))
}

func TestReorder_Idempotent(t *testing.T) {
	tb := mustTable(t, []string{"G", "X"},
		table.Row{"b", 2}, table.Row{"a", 3}, table.Row{"b", 1}, table.Row{"a", 1},
	)
	layers := plot.Layers{"Series", "Point"}
	groups := plot.Groups{"Series": {"G"}, "Point": {"X"}}
	reverse := []string{"X"}

	once, err := plot.Reorder(tb, layers, groups, reverse)
	require.NoError(t, err)
	twice, err := plot.Reorder(once, layers, groups, reverse)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
	assert.Equal(t, []table.Row{{"a", 3}, {"a", 1}, {"b", 2}, {"b", 1}}, once.Rows)
}

// tagged compares equal to every tagged with the same label, so the sort
// cannot tell rows apart by it; id records the input position.
type tagged struct {
	label string
	id    int
}

func (t tagged) String() string { return t.label }

func TestReorder_StableForEqualKeys(t *testing.T) {
	tb := mustTable(t, []string{"G", "T"},
		table.Row{"x", tagged{"t", 0}},
		table.Row{"a", tagged{"t", 1}},
		table.Row{"x", tagged{"t", 2}},
		table.Row{"x", tagged{"t", 3}},
		table.Row{"a", tagged{"t", 4}},
	)
	got, err := plot.Reorder(tb, plot.Layers{"Series", "Point"},
		plot.Groups{"Series": {"G"}, "Point": {"T"}}, nil)
	require.NoError(t, err)

	var order []int
	for _, r := range got.Rows {
		order = append(order, r[1].(tagged).id)
	}
	assert.Equal(t, []int{1, 4, 0, 2, 3}, order)
}

func TestReorder_ReverseColumn(t *testing.T) {
	tb := mustTable(t, []string{"G", "Y"},
		table.Row{"A", 3}, table.Row{"A", 1}, table.Row{"A", 2},
	)
	layers := plot.Layers{"Series", "Point"}
	groups := plot.Groups{"Series": {"G"}, "Point": {"Y"}}

	got, err := plot.Reorder(tb, layers, groups, []string{"Y"})
	require.NoError(t, err)

	y, err := got.Column("Y")
	require.NoError(t, err)
	assert.Equal(t, []table.Value{3, 2, 1}, y)
}

func TestReorder_ReverseKeepsLaterTieBreak(t *testing.T) {
	tb := mustTable(t, []string{"A", "B"},
		table.Row{1, "y"}, table.Row{2, "b"}, table.Row{1, "x"}, table.Row{2, "a"},
	)
	got, err := plot.Reorder(tb, plot.Layers{"Series", "Point"},
		plot.Groups{"Series": {"A"}, "Point": {"B"}}, []string{"A"})
	require.NoError(t, err)
	assert.Equal(t, []table.Row{{2, "a"}, {2, "b"}, {1, "x"}, {1, "y"}}, got.Rows)
}
