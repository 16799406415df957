package plot

import (
	"context"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/labutil/pkg/table"
)

// Phase is the lifecycle position of a run.
type Phase int

const (
	NotStarted Phase = iota
	Running
	Finished
)

func (p Phase) String() string {
	switch p {
	case NotStarted:
		return "not started"
	case Running:
		return "running"
	case Finished:
		return "finished"
	}
	return "unknown"
}

// State is the iteration state shared by every callback of one run.
//
// The engine owns Row, Values, Columns and Phase; callbacks must treat them
// as read-only. Vars is free for callbacks to use.
type State struct {
	RunID  string
	Preset string

	// Table is the reordered table the engine iterates.
	Table  table.Table
	Layers Layers
	Groups Groups
	Labels map[string]Label

	Callbacks Callbacks

	// Row is the index of the current row in Table.
	Row int
	// Values holds every layer's key for the current row.
	Values LayerValues
	// Columns holds the current row keyed by column name.
	Columns RowValues

	// SubplotsInFigure maps the ID of each outer-layer key to the inner-layer
	// keys seen under it, in first-seen order.
	SubplotsInFigure map[string][]Key

	// Points counts Point invocations so far.
	Points int

	OutputDir string
	Trace     bool
	Logger    *log.Logger
	Phase     Phase

	Vars map[string]any

	ctx context.Context
}

// Context returns the context the run was started with.
func (s *State) Context() context.Context {
	if s.ctx == nil {
		return context.Background()
	}
	return s.ctx
}

// Value returns the current row's value of col, or nil if the table has
// no such column.
func (s *State) Value(col string) table.Value { return s.Columns[col] }

// Label renders the label registered under name against the current row.
// The second result is false when no label is registered.
func (s *State) Label(name string) (string, bool, error) {
	l, ok := s.Labels[name]
	if !ok {
		return "", false, nil
	}
	text, err := l.Render(s.Columns)
	return text, true, err
}

// LayerLabel renders the label of layer, falling back to the layer's
// current key when no label is registered.
func (s *State) LayerLabel(layer string) (string, error) {
	text, ok, err := s.Label(layer)
	if !ok {
		return s.Values[layer].String(), nil
	}
	return text, err
}

// IsLeaf reports whether layer is the last layer of the stack.
func (s *State) IsLeaf(layer string) bool { return s.Layers.Leaf() == layer }

// HasLayer reports whether layer is part of the stack.
func (s *State) HasLayer(layer string) bool { return slices.Contains(s.Layers, layer) }

// FigureKey returns the current key of the outermost boundary layer.
func (s *State) FigureKey() Key {
	if o := s.outerLayer(); o != "" {
		return s.Values[o]
	}
	return Key{}
}

// FigureSubplots returns the inner keys enclosed by the current figure.
func (s *State) FigureSubplots() []Key {
	return s.SubplotsInFigure[s.FigureKey().ID()]
}

// SubplotIndex returns the position of the current subplot within its
// figure, or -1 if it is unknown.
func (s *State) SubplotIndex() int {
	cur := Key{}
	if in := s.innerLayer(); in != "" {
		cur = s.Values[in]
	}
	for i, k := range s.FigureSubplots() {
		if k.Equal(cur) {
			return i
		}
	}
	return -1
}

// outerLayer is the first boundary layer, if any.
func (s *State) outerLayer() string {
	if len(s.Layers) >= 2 {
		return s.Layers[0]
	}
	return ""
}

// innerLayer is the second boundary layer, if any.
func (s *State) innerLayer() string {
	if len(s.Layers) >= 3 {
		return s.Layers[1]
	}
	return ""
}

// Var returns s.Vars[key] asserted to T.
func Var[T any](s *State, key string) (T, bool) {
	v, ok := s.Vars[key].(T)
	return v, ok
}
