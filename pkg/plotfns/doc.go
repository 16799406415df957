// Package plotfns is the preset callback library for the plot engine.
//
// Presets accumulate series data while the engine walks the table and draw
// it with gonum.org/v1/plot at subplot boundaries. Every Figure boundary
// writes one image to the run's output directory. Figures hold one subplot
// per key of the Subplot layer, tiled vertically.
//
// # Presets
//
//   - Line, LineCumulative: one line per series
//   - BarStacked, BarStacked100Pct, BarInterleaved: one bar per x value
//     and series, stacked or side by side
//   - GroupedBarStacked, GroupedBarStacked100Pct, GroupedBarInterleaved:
//     bars clustered by the Group layer along the x axis
//   - Hist: overlapping bars, one color per series
//   - Trace: logs every callback and draws nothing
//
// [Register] adds them to a [plot.Registry]; [NewRegistry] returns a
// registry holding only these presets.
//
// # Point columns
//
// The leaf layer's grouping names the x column first and the y column
// second. Y values must be numeric. X values may be anything: bars always
// sit at category positions in first-seen order, lines use numeric x values
// directly and fall back to category positions otherwise.
//
// # Labels
//
// Labels registered under Figure, Subplot, XAxis, YAxis and Series become
// the figure title, subplot title, axis labels and legend title. Group
// labels are written under each group of bars.
//
// # Options
//
// Drawing options travel in State.Vars under [OptionsKey]; see [Options].
//
// [plot.Registry]: github.com/matzehuels/labutil/pkg/plot
package plotfns
