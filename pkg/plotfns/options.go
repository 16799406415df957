package plotfns

import (
	"slices"

	"gonum.org/v1/plot/palette/brewer"

	errs "github.com/matzehuels/labutil/pkg/errors"
	"github.com/matzehuels/labutil/pkg/plot"
)

// OptionsKey is the State.Vars key under which presets look up [Options].
const OptionsKey = "plotfns.options"

// Formats lists the supported image formats.
var Formats = []string{"pdf", "svg", "png", "eps", "jpg", "tif"}

// paletteSize is the number of colors requested from a brewer palette.
// Every qualitative palette offers at least eight.
const paletteSize = 8

// Options controls figure output and drawing.
type Options struct {
	// Format is the image format and file extension.
	Format string `toml:"format"`

	// FigureWidth and SubplotHeight are in inches. A figure with n subplots
	// is n*SubplotHeight tall.
	FigureWidth   float64 `toml:"figure_width"`
	SubplotHeight float64 `toml:"subplot_height"`

	// BarWidth and BarInterleaveOffset are in points. A zero interleave
	// offset places interleaved bars edge to edge.
	BarWidth            float64 `toml:"bar_width"`
	BarInterleaveOffset float64 `toml:"bar_interleave_offset"`

	// GroupSeparation is the gap between bar groups, in x-axis units.
	GroupSeparation float64 `toml:"group_separation"`

	// Padding is the gap around and between subplots, in millimetres.
	Padding float64 `toml:"padding"`

	// XLabelOnLast draws the x-axis label on the last subplot only.
	XLabelOnLast bool `toml:"xlabel_on_last"`

	LegendTop  bool `toml:"legend_top"`
	LegendLeft bool `toml:"legend_left"`

	// Palette names a qualitative ColorBrewer palette.
	Palette string `toml:"palette"`
}

// DefaultOptions returns the options presets use when none are supplied.
func DefaultOptions() Options {
	return Options{
		Format:          "pdf",
		FigureWidth:     6,
		SubplotHeight:   3,
		BarWidth:        12,
		GroupSeparation: 1,
		Padding:         2,
		LegendTop:       true,
		Palette:         "Set1",
	}
}

// WithDefaults returns o with every zero numeric or string field replaced by
// its default.
func (o Options) WithDefaults() Options {
	d := DefaultOptions()
	if o.Format == "" {
		o.Format = d.Format
	}
	if o.FigureWidth == 0 {
		o.FigureWidth = d.FigureWidth
	}
	if o.SubplotHeight == 0 {
		o.SubplotHeight = d.SubplotHeight
	}
	if o.BarWidth == 0 {
		o.BarWidth = d.BarWidth
	}
	if o.BarInterleaveOffset == 0 {
		o.BarInterleaveOffset = o.BarWidth
	}
	if o.GroupSeparation == 0 {
		o.GroupSeparation = d.GroupSeparation
	}
	if o.Padding == 0 {
		o.Padding = d.Padding
	}
	if o.Palette == "" {
		o.Palette = d.Palette
	}
	return o
}

// Validate reports option values that cannot be drawn.
func (o Options) Validate() error {
	if !slices.Contains(Formats, o.Format) {
		return errs.Config("unsupported image format %q (want one of %v)", o.Format, Formats)
	}
	for name, v := range map[string]float64{
		"figure_width":   o.FigureWidth,
		"subplot_height": o.SubplotHeight,
		"bar_width":      o.BarWidth,
	} {
		if v <= 0 {
			return errs.Config("%s must be positive, got %g", name, v)
		}
	}
	if o.BarInterleaveOffset < 0 || o.GroupSeparation < 0 || o.Padding < 0 {
		return errs.Config("bar_interleave_offset, group_separation and padding must not be negative")
	}
	if _, err := brewer.GetPalette(brewer.TypeQualitative, o.Palette, paletteSize); err != nil {
		return errs.Wrap(errs.ErrCodeConfig, err, "palette %q", o.Palette)
	}
	return nil
}

// OptionsFrom returns the options stored in s, with defaults applied.
// Both Options and *Options values are accepted.
func OptionsFrom(s *plot.State) Options {
	switch o := s.Vars[OptionsKey].(type) {
	case Options:
		return o.WithDefaults()
	case *Options:
		if o != nil {
			return o.WithDefaults()
		}
	}
	return DefaultOptions().WithDefaults()
}
