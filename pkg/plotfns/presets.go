package plotfns

import (
	"github.com/matzehuels/labutil/pkg/plot"
)

// Preset names.
const (
	Line                    = "Line"
	LineCumulative          = "LineCumulative"
	BarStacked              = "BarStacked"
	BarStacked100Pct        = "BarStacked100Pct"
	BarInterleaved          = "BarInterleaved"
	GroupedBarStacked       = "GroupedBarStacked"
	GroupedBarStacked100Pct = "GroupedBarStacked100Pct"
	GroupedBarInterleaved   = "GroupedBarInterleaved"
	Hist                    = "Hist"
	Trace                   = "Trace"
)

var (
	seriesLayers  = plot.Layers{plot.LayerFigure, plot.LayerSubplot, plot.LayerSeries, plot.LayerPoint}
	groupedLayers = plot.Layers{plot.LayerFigure, plot.LayerSubplot, plot.LayerGroup, plot.LayerSeries, plot.LayerPoint}
)

// Presets returns the preset library in display order.
func Presets() []plot.Preset {
	return []plot.Preset{
		{
			Name:          Line,
			Description:   "one line with point markers per series",
			DefaultLayers: seriesLayers,
			Callbacks:     chart{kind: lineChart}.callbacks(),
		},
		{
			Name:          LineCumulative,
			Description:   "lines of the running sum of each series",
			DefaultLayers: seriesLayers,
			Callbacks:     chart{kind: lineChart, cumulative: true}.callbacks(),
		},
		{
			Name:          BarStacked,
			Description:   "series stacked into one bar per x value",
			DefaultLayers: seriesLayers,
			Callbacks:     chart{kind: barChart, stacked: true}.callbacks(),
		},
		{
			Name:          BarStacked100Pct,
			Description:   "stacked bars scaled to 100% per x value",
			DefaultLayers: seriesLayers,
			Callbacks:     chart{kind: barChart, stacked: true, percent: true}.callbacks(),
		},
		{
			Name:          BarInterleaved,
			Description:   "series side by side, centred on each x value",
			DefaultLayers: seriesLayers,
			Callbacks:     chart{kind: barChart}.callbacks(),
		},
		{
			Name:          GroupedBarStacked,
			Description:   "stacked bars clustered by group",
			DefaultLayers: groupedLayers,
			Callbacks:     chart{kind: barChart, stacked: true, grouped: true}.callbacks(),
		},
		{
			Name:          GroupedBarStacked100Pct,
			Description:   "100% stacked bars clustered by group",
			DefaultLayers: groupedLayers,
			Callbacks:     chart{kind: barChart, stacked: true, percent: true, grouped: true}.callbacks(),
		},
		{
			Name:          GroupedBarInterleaved,
			Description:   "side-by-side bars clustered by group",
			DefaultLayers: groupedLayers,
			Callbacks:     chart{kind: barChart, grouped: true}.callbacks(),
		},
		{
			Name:          Hist,
			Description:   "overlapping translucent bars per series",
			DefaultLayers: seriesLayers,
			Callbacks:     chart{kind: histChart}.callbacks(),
		},
		{
			Name:          Trace,
			Description:   "log every callback without drawing",
			DefaultLayers: seriesLayers,
			Callbacks:     traceCallbacks(),
		},
	}
}

// Register adds every preset to reg.
func Register(reg *plot.Registry) error {
	for _, p := range Presets() {
		if err := reg.Register(p); err != nil {
			return err
		}
	}
	return nil
}

// NewRegistry returns a registry holding the preset library.
func NewRegistry() *plot.Registry {
	reg := plot.NewRegistry()
	for _, p := range Presets() {
		reg.MustRegister(p)
	}
	return reg
}
