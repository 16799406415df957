package plotfns

import (
	gplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/matzehuels/labutil/pkg/table"
)

// Series past the palette size cycle through dash patterns.
var dashes = [][]vg.Length{
	nil,
	{vg.Points(6), vg.Points(2)},
	{vg.Points(2), vg.Points(2)},
	{vg.Points(6), vg.Points(2), vg.Points(2), vg.Points(2)},
}

var glyphs = []draw.GlyphDrawer{
	draw.CircleGlyph{},
	draw.TriangleGlyph{},
	draw.SquareGlyph{},
	draw.CrossGlyph{},
	draw.PyramidGlyph{},
	draw.PlusGlyph{},
	draw.RingGlyph{},
	draw.BoxGlyph{},
}

// drawLines adds one line with point markers per series. Numeric x values
// are plotted as they are; otherwise every x value gets a category
// position and a labelled tick.
func (c chart) drawLines(ss *session, sub *subplot, list []*series) error {
	numeric := true
	for _, sr := range list {
		for _, x := range sr.xs {
			numeric = numeric && table.IsNumber(x)
		}
	}

	for _, sr := range list {
		xys := make(plotter.XYs, len(sr.xs))
		var sum float64
		for i, x := range sr.xs {
			if numeric {
				xys[i].X, _ = table.Float(x)
			} else {
				pos, _ := sub.cats.pos(x)
				xys[i].X = float64(pos)
			}
			y := sr.ys[i]
			if c.cumulative {
				sum += y
				y = sum
			}
			xys[i].Y = y
		}

		l, pts, err := plotter.NewLinePoints(xys)
		if err != nil {
			return err
		}
		col := ss.color(sr.style)
		l.Color = col
		l.Dashes = dashes[(sr.style/len(ss.colors))%len(dashes)]
		pts.Color = col
		pts.Shape = glyphs[sr.style%len(glyphs)]

		sub.plot.Add(l, pts)
		addLegend(sub, sr.label, l, pts)
	}

	if !numeric {
		for i, v := range sub.cats.values {
			sub.ticks = append(sub.ticks, gplot.Tick{Value: float64(i), Label: table.Format(v)})
		}
	}
	return nil
}
