package plot_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/matzehuels/labutil/pkg/errors"
	"github.com/matzehuels/labutil/pkg/plot"
)

func TestLabel_Render(t *testing.T) {
	row := plot.RowValues{"Offset": 5.0, "Exponent": int64(2), "Name": "fast"}

	tests := []struct {
		name  string
		label plot.Label
		want  string
	}{
		{"plain text", plot.Literal("Slope"), "Slope"},
		{"substitution", plot.Literal("figure with offset: ${Offset}"), "figure with offset: 5"},
		{"several columns", plot.Literal("${Name} e=${Exponent}"), "fast e=2"},
		{"computed", plot.Computed(func(r plot.RowValues) string {
			return fmt.Sprintf("exp:%v,\noff:%v", r["Exponent"], r["Offset"])
		}), "exp:2,\noff:5"},
		{"zero value", plot.Label{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.label.Render(row)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLabel_UnknownColumn(t *testing.T) {
	_, err := plot.Literal("${Missing} and ${Name}").Render(plot.RowValues{"Name": "x"})
	require.Error(t, err)
	assert.True(t, errs.IsConfig(err))
	assert.Contains(t, err.Error(), "Missing")
}

func TestLabel_Validate(t *testing.T) {
	assert.NoError(t, plot.Literal("${A}").Validate())
	assert.Error(t, plot.Literal("${A").Validate())
	assert.NoError(t, plot.Computed(func(plot.RowValues) string { return "" }).Validate())
	assert.True(t, plot.Computed(func(plot.RowValues) string { return "" }).IsComputed())
	assert.Equal(t, "${A}", plot.Literal("${A}").Template())
}

func TestState_LayerLabel(t *testing.T) {
	s := &plot.State{
		Values:  plot.LayerValues{"Figure": keyOf(0.5, "x"), "Series": keyOf("s")},
		Columns: plot.RowValues{"Name": "fast"},
		Labels:  map[string]plot.Label{"Series": plot.Literal("series ${Name}")},
	}

	got, err := s.LayerLabel("Figure")
	require.NoError(t, err)
	assert.Equal(t, "0.5 x", got)

	got, err = s.LayerLabel("Series")
	require.NoError(t, err)
	assert.Equal(t, "series fast", got)

	_, ok, err := s.Label("XAxis")
	assert.False(t, ok)
	assert.NoError(t, err)
}
