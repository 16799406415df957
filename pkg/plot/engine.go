package plot

import (
	"context"
	"maps"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	errs "github.com/matzehuels/labutil/pkg/errors"
	"github.com/matzehuels/labutil/pkg/observability"
	"github.com/matzehuels/labutil/pkg/table"
)

// Config describes one plot run.
type Config struct {
	Table  table.Table
	Layers Layers
	Groups Groups
	Labels map[string]Label

	// ReverseColumns sort descending.
	ReverseColumns []string

	// Preset names the registry entry that fills unset callback slots.
	Preset    string
	Callbacks Callbacks
	Registry  *Registry

	OutputDir string

	// Cascade reopens every inner boundary layer whenever an outer one
	// changes, in addition to the layers ChangedLayers reports.
	Cascade bool

	// Trace logs every callback invocation at debug level.
	Trace bool

	// Logger defaults to log.Default().
	Logger *log.Logger

	// Vars seeds State.Vars.
	Vars map[string]any
}

// Prepare validates cfg, reorders the table and resolves callbacks without
// invoking any of them. The returned state is NotStarted.
func Prepare(cfg Config) (*State, error) {
	if err := cfg.Layers.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Table.Validate(); err != nil {
		return nil, err
	}
	for name, l := range cfg.Labels {
		if err := l.Validate(); err != nil {
			return nil, errs.Wrap(errs.ErrCodeConfig, err, "label %q", name)
		}
	}

	sorted, err := Reorder(cfg.Table, cfg.Layers, cfg.Groups, cfg.ReverseColumns)
	if err != nil {
		return nil, err
	}
	cb, err := Resolve(cfg.Layers, cfg.Callbacks, cfg.Preset, cfg.Registry)
	if err != nil {
		return nil, err
	}
	if sorted.Len() == 0 {
		return nil, errs.Config("table has no rows to plot")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	vars := make(map[string]any, len(cfg.Vars))
	maps.Copy(vars, cfg.Vars)

	return &State{
		RunID:     uuid.New().String(),
		Preset:    cfg.Preset,
		Table:     sorted,
		Layers:    slices.Clone(cfg.Layers),
		Groups:    cfg.Groups,
		Labels:    cfg.Labels,
		Callbacks: cb,
		OutputDir: cfg.OutputDir,
		Trace:     cfg.Trace,
		Logger:    logger,
		Phase:     NotStarted,
		Vars:      vars,
	}, nil
}

// Run executes a plot: it prepares cfg, then walks the sorted rows invoking
// callbacks at every layer boundary.
//
// The returned state is non-nil whenever preparation succeeded, including
// when a callback failed; its Phase is Finished only after Fini returned.
func Run(ctx context.Context, cfg Config) (*State, error) {
	s, err := Prepare(cfg)
	if err != nil {
		return nil, err
	}
	s.ctx = ctx
	e := &engine{state: s, cascade: cfg.Cascade}

	start := time.Now()
	observability.Plot().OnPlotStart(ctx, s.RunID, s.Preset, s.Table.Len())
	s.Logger.Debug("plot started", "run", s.RunID, "preset", s.Preset, "rows", s.Table.Len(), "layers", s.Layers)

	err = e.run()

	observability.Plot().OnPlotComplete(ctx, s.RunID, s.Points, time.Since(start), err)
	if err != nil {
		return s, err
	}
	s.Logger.Debug("plot finished", "run", s.RunID, "points", s.Points, "elapsed", time.Since(start).Round(time.Millisecond))
	return s, nil
}

type engine struct {
	state   *State
	keys    keyIndex
	cascade bool
}

func (e *engine) run() error {
	s := e.state
	keys, err := newKeyIndex(s.Table, s.Layers, s.Groups)
	if err != nil {
		return err
	}
	e.keys = keys
	s.SubplotsInFigure = e.subplots()

	s.Phase = Running
	e.setRow(0)
	if err := e.call("Init", s.Callbacks.Init); err != nil {
		return err
	}
	if err := e.open(s.Layers.Boundaries()); err != nil {
		return err
	}

	for i, row := range s.Table.Rows {
		if i > 0 {
			changed := ChangedLayers(s.Layers, s.Groups, s.Values, e.keys.values(row))
			if e.cascade {
				changed = cascade(s.Layers, changed)
			}
			if err := e.close(changed); err != nil {
				return err
			}
			e.setRow(i)
			if err := e.open(changed); err != nil {
				return err
			}
		}
		if err := e.call(s.Layers.Leaf(), s.Callbacks.Point); err != nil {
			return err
		}
		s.Points++
	}

	if err := e.close(s.Layers.Boundaries()); err != nil {
		return err
	}
	if err := e.call("Fini", s.Callbacks.Fini); err != nil {
		return err
	}
	s.Phase = Finished
	return nil
}

func (e *engine) setRow(i int) {
	s := e.state
	s.Row = i
	s.Values = e.keys.values(s.Table.Rows[i])
	s.Columns = s.Table.RowMap(i)
}

// open runs Before callbacks outermost first.
func (e *engine) open(layers []string) error {
	for _, l := range layers {
		if err := e.call("+"+l, e.state.Callbacks.Layers[l].Before); err != nil {
			return err
		}
	}
	return nil
}

// close runs After callbacks innermost first.
func (e *engine) close(layers []string) error {
	for i := len(layers) - 1; i >= 0; i-- {
		l := layers[i]
		if err := e.call("-"+l, e.state.Callbacks.Layers[l].After); err != nil {
			return err
		}
	}
	return nil
}

func (e *engine) call(name string, fn Fn) error {
	s := e.state
	if s.Trace {
		s.Logger.Debug("callback", "call", name, "row", s.Row)
	}
	return fn(s)
}

// subplots scans the sorted rows once and collects, for every outer-layer
// key, the distinct inner-layer keys seen while it was current.
func (e *engine) subplots() map[string][]Key {
	s := e.state
	outer, inner := s.outerLayer(), s.innerLayer()
	out := make(map[string][]Key)

	var (
		curID   string
		current []Key
		started bool
	)
	flush := func() {
		for _, k := range current {
			if !slices.ContainsFunc(out[curID], k.Equal) {
				out[curID] = append(out[curID], k)
			}
		}
		current = nil
	}

	for _, row := range s.Table.Rows {
		vals := e.keys.values(row)
		outerKey, innerKey := Key{}, Key{}
		if outer != "" {
			outerKey = vals[outer]
		}
		if inner != "" {
			innerKey = vals[inner]
		}
		if id := outerKey.ID(); !started || id != curID {
			if started {
				flush()
			}
			curID, started = id, true
		}
		if !slices.ContainsFunc(current, innerKey.Equal) {
			current = append(current, innerKey)
		}
	}
	if started {
		flush()
	}
	return out
}
