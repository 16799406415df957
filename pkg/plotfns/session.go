package plotfns

import (
	"image/color"

	gplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"

	"github.com/matzehuels/labutil/pkg/plot"
	"github.com/matzehuels/labutil/pkg/table"
)

const sessionKey = "plotfns.session"

// session is the drawing state of one run, stashed in State.Vars.
type session struct {
	opts   Options
	colors []color.Color

	// styles assigns every distinct series label a style index for the
	// whole run, so a series keeps its color across subplots and groups.
	styles map[string]int

	fig    *figure
	sub    *subplot
	group  *group
	series *series
}

type figure struct {
	plots []*gplot.Plot
	title string
}

type subplot struct {
	plot   *gplot.Plot
	series []*series
	cats   categories

	// legend holds the labels already shown in this subplot's legend.
	legend map[string]bool
	ticks  []gplot.Tick

	// groups counts closed groups; width is the number of category
	// positions they occupy.
	groups int
	width  int
}

type group struct {
	label  string
	series []*series
}

type series struct {
	label string
	style int
	xs    []table.Value
	ys    []float64
}

// categories numbers distinct x values in first-seen order.
type categories struct {
	values []table.Value
	index  map[string]int
}

func (c *categories) add(v table.Value) int {
	id := plot.Key{v}.ID()
	if i, ok := c.index[id]; ok {
		return i
	}
	if c.index == nil {
		c.index = make(map[string]int)
	}
	c.index[id] = len(c.values)
	c.values = append(c.values, v)
	return len(c.values) - 1
}

func (c *categories) pos(v table.Value) (int, bool) {
	i, ok := c.index[plot.Key{v}.ID()]
	return i, ok
}

func (c *categories) len() int { return len(c.values) }

// sessionOf returns the run's session, creating it on first use.
func sessionOf(s *plot.State) (*session, error) {
	if ss, ok := plot.Var[*session](s, sessionKey); ok {
		return ss, nil
	}
	return newSession(s)
}

func newSession(s *plot.State) (*session, error) {
	opts := OptionsFrom(s)
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	pal, err := brewer.GetPalette(brewer.TypeQualitative, opts.Palette, paletteSize)
	if err != nil {
		return nil, err
	}
	ss := &session{
		opts:   opts,
		colors: pal.Colors(),
		styles: make(map[string]int),
	}
	if s.Vars == nil {
		s.Vars = make(map[string]any)
	}
	s.Vars[sessionKey] = ss
	return ss, nil
}

func (ss *session) style(label string) int {
	if i, ok := ss.styles[label]; ok {
		return i
	}
	i := len(ss.styles)
	ss.styles[label] = i
	return i
}

func (ss *session) color(style int) color.Color {
	return ss.colors[style%len(ss.colors)]
}
