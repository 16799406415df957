package plotfns

import (
	"image/color"

	gplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/matzehuels/labutil/pkg/table"
)

// histAlpha keeps overlapping bars readable.
const histAlpha = 0x99

// drawHist overlays one translucent bar chart per series at shared
// category positions.
func (c chart) drawHist(ss *session, sub *subplot, list []*series) error {
	cats := sub.cats.values
	vals := barValues(list, cats)
	width := vg.Points(ss.opts.BarWidth)
	for i, sr := range list {
		bc, err := plotter.NewBarChart(vals[i], width)
		if err != nil {
			return err
		}
		bc.Color = translucent(ss.color(sr.style))
		bc.LineStyle.Width = 0
		sub.plot.Add(bc)
		addLegend(sub, sr.label, bc)
	}
	for j, v := range cats {
		sub.ticks = append(sub.ticks, gplot.Tick{Value: float64(j), Label: table.Format(v)})
	}
	return nil
}

func translucent(c color.Color) color.Color {
	r, g, b, _ := c.RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: histAlpha}
}
