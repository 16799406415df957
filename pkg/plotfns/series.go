package plotfns

import (
	gplot "gonum.org/v1/plot"

	errs "github.com/matzehuels/labutil/pkg/errors"
	"github.com/matzehuels/labutil/pkg/plot"
	"github.com/matzehuels/labutil/pkg/table"
)

type chartKind int

const (
	lineChart chartKind = iota
	barChart
	histChart
)

// chart holds the callbacks shared by the drawing presets. Series data is
// collected per subplot and drawn when the subplot, or for grouped bars the
// group, closes.
type chart struct {
	kind       chartKind
	stacked    bool
	cumulative bool
	percent    bool
	grouped    bool
}

func (c chart) callbacks() plot.Callbacks {
	cb := plot.Callbacks{
		Init:  c.init,
		Fini:  c.fini,
		Point: c.point,
		Layers: map[string]plot.Pair{
			plot.LayerFigure:  {Before: c.beforeFigure, After: c.afterFigure},
			plot.LayerSubplot: {Before: c.beforeSubplot, After: c.afterSubplot},
			plot.LayerSeries:  {Before: c.beforeSeries, After: c.afterSeries},
		},
	}
	if c.grouped {
		cb.Layers[plot.LayerGroup] = plot.Pair{Before: c.beforeGroup, After: c.afterGroup}
	}
	return cb
}

// A stack without a Figure or Subplot layer still draws one figure or one
// subplot per enclosing boundary; init, fini and the figure callbacks open
// and close the missing levels.

func (c chart) init(s *plot.State) error {
	if err := Init(s); err != nil {
		return err
	}
	if err := pointColumnsOK(s); err != nil {
		return err
	}
	if !s.HasLayer(plot.LayerFigure) {
		return c.beforeFigure(s)
	}
	return nil
}

func (c chart) fini(s *plot.State) error {
	if !s.HasLayer(plot.LayerFigure) {
		if err := c.afterFigure(s); err != nil {
			return err
		}
	}
	return Fini(s)
}

func (c chart) beforeFigure(s *plot.State) error {
	if err := BeforeFigure(s); err != nil {
		return err
	}
	if !s.HasLayer(plot.LayerSubplot) {
		return c.beforeSubplot(s)
	}
	return nil
}

func (c chart) afterFigure(s *plot.State) error {
	if !s.HasLayer(plot.LayerSubplot) {
		if err := c.afterSubplot(s); err != nil {
			return err
		}
	}
	return AfterFigure(s)
}

func (c chart) beforeSubplot(s *plot.State) error {
	ss, err := sessionOf(s)
	if err != nil {
		return err
	}
	if ss.fig == nil {
		ss.fig = &figure{}
	}

	p := gplot.New()
	p.Legend.Top = ss.opts.LegendTop
	p.Legend.Left = ss.opts.LegendLeft

	title, err := s.LayerLabel(plot.LayerSubplot)
	if err != nil {
		return errs.Wrap(errs.ErrCodeCallback, err, "subplot title")
	}
	if len(ss.fig.plots) == 0 && ss.fig.title != "" {
		if title == "" {
			title = ss.fig.title
		} else {
			title = ss.fig.title + "\n" + title
		}
	}
	p.Title.Text = title

	xcol, ycol := pointColumns(s)
	if p.X.Label.Text, err = axisLabel(s, "XAxis", xcol); err != nil {
		return err
	}
	if p.Y.Label.Text, err = axisLabel(s, "YAxis", ycol); err != nil {
		return err
	}
	if c.grouped && s.HasLayer(plot.LayerGroup) {
		p.X.Label.Text = ""
	}
	if ss.opts.XLabelOnLast && s.HasLayer(plot.LayerSubplot) {
		if i, n := s.SubplotIndex(), len(s.FigureSubplots()); i >= 0 && i < n-1 {
			p.X.Label.Text = ""
		}
	}

	legendTitle, _, err := s.Label(plot.LayerSeries)
	if err != nil {
		return errs.Wrap(errs.ErrCodeCallback, err, "legend title")
	}
	if legendTitle != "" {
		p.Legend.Add(legendTitle)
	}

	ss.sub = &subplot{plot: p, legend: make(map[string]bool)}
	return nil
}

func (c chart) afterSubplot(s *plot.State) error {
	ss, err := sessionOf(s)
	if err != nil {
		return err
	}
	sub := ss.sub
	if sub == nil {
		return nil
	}
	if ss.series != nil {
		c.finishSeries(ss)
	}

	if c.grouped && s.HasLayer(plot.LayerGroup) {
		sep := ss.opts.GroupSeparation
		sub.plot.X.Min = -0.5 * sep
		sub.plot.X.Max = (float64(sub.groups)-0.5)*sep + float64(sub.width)
	} else if err := c.draw(ss, sub, sub.series, 0); err != nil {
		return errs.Wrap(errs.ErrCodeCallback, err, "draw subplot")
	}
	if len(sub.ticks) > 0 {
		sub.plot.X.Tick.Marker = gplot.ConstantTicks(sub.ticks)
	}

	ss.fig.plots = append(ss.fig.plots, sub.plot)
	ss.sub = nil
	return nil
}

func (c chart) beforeSeries(s *plot.State) error {
	ss, err := sessionOf(s)
	if err != nil {
		return err
	}
	ss.series = newSeries(ss, s.Values[plot.LayerSeries].String())
	return nil
}

func (c chart) afterSeries(s *plot.State) error {
	ss, err := sessionOf(s)
	if err != nil {
		return err
	}
	if ss.series != nil {
		c.finishSeries(ss)
	}
	return nil
}

func (c chart) point(s *plot.State) error {
	ss, err := sessionOf(s)
	if err != nil {
		return err
	}
	if ss.sub == nil {
		return errs.New(errs.ErrCodeCallback, "row %d: point outside of a subplot", s.Row)
	}
	if err := pointColumnsOK(s); err != nil {
		return err
	}
	xcol, ycol := pointColumns(s)
	y, ok := table.Float(s.Value(ycol))
	if !ok {
		return errs.New(errs.ErrCodeCallback, "row %d: %s value %v is not numeric", s.Row, ycol, s.Value(ycol))
	}
	if ss.series == nil {
		ss.series = newSeries(ss, "")
	}
	ss.series.xs = append(ss.series.xs, s.Value(xcol))
	ss.series.ys = append(ss.series.ys, y)
	return nil
}

func newSeries(ss *session, label string) *series {
	return &series{label: label, style: ss.style(label)}
}

// finishSeries hands the current series to its group or subplot and
// registers its x values as categories.
func (c chart) finishSeries(ss *session) {
	sr := ss.series
	ss.series = nil
	if ss.sub == nil {
		return
	}
	for _, x := range sr.xs {
		ss.sub.cats.add(x)
	}
	if c.grouped && ss.group != nil {
		ss.group.series = append(ss.group.series, sr)
		return
	}
	ss.sub.series = append(ss.sub.series, sr)
}

func (c chart) draw(ss *session, sub *subplot, list []*series, xmin float64) error {
	switch c.kind {
	case lineChart:
		return c.drawLines(ss, sub, list)
	case histChart:
		return c.drawHist(ss, sub, list)
	default:
		_, err := c.drawBars(ss, sub, list, sub.cats.values, xmin)
		return err
	}
}

// addLegend adds a legend entry unless label is empty or already shown in
// the subplot.
func addLegend(sub *subplot, label string, thumbs ...gplot.Thumbnailer) {
	if label == "" || sub.legend[label] {
		return
	}
	sub.legend[label] = true
	sub.plot.Legend.Add(label, thumbs...)
}

func pointColumns(s *plot.State) (x, y string) {
	cols := s.Groups[s.Layers.Leaf()]
	if len(cols) >= 2 {
		return cols[0], cols[1]
	}
	return "", ""
}

func pointColumnsOK(s *plot.State) error {
	if cols := s.Groups[s.Layers.Leaf()]; len(cols) < 2 {
		return errs.New(errs.ErrCodeCallback, "layer %q must group by an x and a y column, got %v", s.Layers.Leaf(), cols)
	}
	return nil
}

func axisLabel(s *plot.State, name, fallback string) (string, error) {
	text, ok, err := s.Label(name)
	if err != nil {
		return "", errs.Wrap(errs.ErrCodeCallback, err, "%s label", name)
	}
	if !ok {
		return fallback, nil
	}
	return text, nil
}
