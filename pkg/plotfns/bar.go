package plotfns

import (
	"slices"

	gplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	errs "github.com/matzehuels/labutil/pkg/errors"
	"github.com/matzehuels/labutil/pkg/plot"
	"github.com/matzehuels/labutil/pkg/table"
)

// barValues sums each series' y values at the position of their x value in
// cats. Missing positions are zero.
func barValues(list []*series, cats []table.Value) []plotter.Values {
	var idx categories
	for _, v := range cats {
		idx.add(v)
	}
	out := make([]plotter.Values, len(list))
	for i, sr := range list {
		vals := make(plotter.Values, len(cats))
		for j, x := range sr.xs {
			if pos, ok := idx.pos(x); ok {
				vals[pos] += sr.ys[j]
			}
		}
		out[i] = vals
	}
	return out
}

// normalize rescales every position to percentages of its total across
// series. Positions whose total is zero stay zero.
func normalize(vals []plotter.Values) {
	if len(vals) == 0 {
		return
	}
	totals := make([]float64, len(vals[0]))
	for _, vs := range vals {
		for j, v := range vs {
			totals[j] += v
		}
	}
	for _, vs := range vals {
		for j := range vs {
			if totals[j] == 0 {
				vs[j] = 0
				continue
			}
			vs[j] = 100 * vs[j] / totals[j]
		}
	}
}

// interleaveOffset centres n bars of spacing inc around their position.
func interleaveOffset(i, n int, inc vg.Length) vg.Length {
	return -inc*vg.Length(n-1)/2 + vg.Length(i)*inc
}

// drawBars adds one bar chart per series with its first bar at xmin and
// returns the number of positions used. Ticks label every position.
func (c chart) drawBars(ss *session, sub *subplot, list []*series, cats []table.Value, xmin float64) (int, error) {
	vals := barValues(list, cats)
	if c.percent {
		normalize(vals)
	}

	width := vg.Points(ss.opts.BarWidth)
	inc := vg.Points(ss.opts.BarInterleaveOffset)
	var prev *plotter.BarChart
	for i, sr := range list {
		bc, err := plotter.NewBarChart(vals[i], width)
		if err != nil {
			return 0, err
		}
		bc.Color = ss.color(sr.style)
		bc.LineStyle.Width = 0
		bc.XMin = xmin
		if c.stacked {
			if prev != nil {
				bc.StackOn(prev)
			}
		} else {
			bc.Offset = interleaveOffset(i, len(list), inc)
		}
		prev = bc

		sub.plot.Add(bc)
		addLegend(sub, sr.label, bc)
	}

	for j, v := range cats {
		sub.ticks = append(sub.ticks, gplot.Tick{Value: xmin + float64(j), Label: table.Format(v)})
	}
	return len(cats), nil
}

func (c chart) beforeGroup(s *plot.State) error {
	ss, err := sessionOf(s)
	if err != nil {
		return err
	}
	label, err := s.LayerLabel(plot.LayerGroup)
	if err != nil {
		return errs.Wrap(errs.ErrCodeCallback, err, "group label")
	}
	ss.group = &group{label: label}
	return nil
}

// afterGroup draws the group's bars after the groups already drawn in the
// subplot, separated by GroupSeparation, and writes the group label under
// the group's centre.
func (c chart) afterGroup(s *plot.State) error {
	ss, err := sessionOf(s)
	if err != nil {
		return err
	}
	g, sub := ss.group, ss.sub
	ss.group = nil
	if g == nil || sub == nil {
		return nil
	}

	var cats []table.Value
	for _, v := range sub.cats.values {
		if slices.ContainsFunc(g.series, func(sr *series) bool {
			return slices.ContainsFunc(sr.xs, func(x table.Value) bool { return table.Equal(x, v) })
		}) {
			cats = append(cats, v)
		}
	}

	offset := float64(sub.groups)*ss.opts.GroupSeparation + float64(sub.width)
	n, err := c.drawBars(ss, sub, g.series, cats, offset)
	if err != nil {
		return errs.Wrap(errs.ErrCodeCallback, err, "draw group %q", g.label)
	}
	if g.label != "" && n > 0 {
		sub.ticks = append(sub.ticks, gplot.Tick{Value: offset + float64(n-1)/2, Label: "\n" + g.label})
	}
	sub.width += n
	sub.groups++
	return nil
}
