package plotfns

import (
	"fmt"
	"io"
	"os"

	gplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	errs "github.com/matzehuels/labutil/pkg/errors"
)

// FigureOption configures [RenderFigure] and [SaveFigure].
type FigureOption func(*figureWriter)

type figureWriter struct {
	format        string
	width         vg.Length
	subplotHeight vg.Length
	pad           vg.Length
}

// WithFormat sets the image format ("pdf", "svg", "png", ...).
func WithFormat(format string) FigureOption { return func(w *figureWriter) { w.format = format } }

// WithWidth sets the figure width.
func WithWidth(l vg.Length) FigureOption { return func(w *figureWriter) { w.width = l } }

// WithSubplotHeight sets the height of each tiled subplot.
func WithSubplotHeight(l vg.Length) FigureOption {
	return func(w *figureWriter) { w.subplotHeight = l }
}

// WithPadding sets the gap around and between subplots.
func WithPadding(l vg.Length) FigureOption { return func(w *figureWriter) { w.pad = l } }

func newFigureWriter(opts ...FigureOption) figureWriter {
	d := DefaultOptions()
	w := figureWriter{
		format:        d.Format,
		width:         vg.Length(d.FigureWidth) * vg.Inch,
		subplotHeight: vg.Length(d.SubplotHeight) * vg.Inch,
		pad:           2 * vg.Millimeter,
	}
	for _, opt := range opts {
		opt(&w)
	}
	return w
}

// figureOptions translates o into figure writer options.
func figureOptions(o Options) []FigureOption {
	return []FigureOption{
		WithFormat(o.Format),
		WithWidth(vg.Length(o.FigureWidth) * vg.Inch),
		WithSubplotHeight(vg.Length(o.SubplotHeight) * vg.Inch),
		WithPadding(vg.Length(o.Padding) * vg.Millimeter),
	}
}

// RenderFigure tiles plots vertically, first on top, and encodes the
// result to dst.
func RenderFigure(dst io.Writer, plots []*gplot.Plot, opts ...FigureOption) error {
	if len(plots) == 0 {
		return errs.New(errs.ErrCodeInvalidInput, "figure has no subplots")
	}
	w := newFigureWriter(opts...)

	c, err := draw.NewFormattedCanvas(w.width, w.subplotHeight*vg.Length(len(plots)), w.format)
	if err != nil {
		return errs.Wrap(errs.ErrCodeUnsupported, err, "canvas")
	}

	rows := make([][]*gplot.Plot, len(plots))
	for i, p := range plots {
		rows[i] = []*gplot.Plot{p}
	}
	tiles := draw.Tiles{
		Rows:      len(plots),
		Cols:      1,
		PadX:      w.pad,
		PadY:      w.pad,
		PadTop:    w.pad,
		PadBottom: w.pad,
		PadLeft:   w.pad,
		PadRight:  w.pad,
	}
	canvases := gplot.Align(rows, tiles, draw.New(c))
	for i := range rows {
		rows[i][0].Draw(canvases[i][0])
	}

	if _, err := c.WriteTo(dst); err != nil {
		return fmt.Errorf("encode %s: %w", w.format, err)
	}
	return nil
}

// SaveFigure renders plots to the file at path.
func SaveFigure(path string, plots []*gplot.Plot, opts ...FigureOption) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := RenderFigure(f, plots, opts...); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
