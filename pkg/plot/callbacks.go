package plot

import (
	"maps"
	"slices"
	"sync"

	errs "github.com/matzehuels/labutil/pkg/errors"
)

// Fn is a lifecycle callback. It receives the shared iteration state.
type Fn func(*State) error

// Pair holds the callbacks that open and close one boundary layer.
type Pair struct {
	Before Fn
	After  Fn
}

// Complete reports whether both slots are set.
func (p Pair) Complete() bool { return p.Before != nil && p.After != nil }

// Callbacks is a callback bundle. Init and Fini run once per plot, Point
// runs once per row for the leaf layer, and Layers holds the Before/After
// pair of each boundary layer by name.
type Callbacks struct {
	Init  Fn
	Fini  Fn
	Point Fn

	Layers map[string]Pair
}

// Preset is a named, complete callback bundle for one plot style.
type Preset struct {
	Name        string
	Description string

	// DefaultLayers is the layer stack the preset is designed for. It is
	// used when a plot does not declare its own stack.
	DefaultLayers Layers

	Callbacks Callbacks
}

// Registry maps preset names to presets. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	presets map[string]Preset
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{presets: make(map[string]Preset)}
}

// Register adds p after checking that every callback slot is set: Init,
// Fini and Point, and both halves of every layer pair.
func (r *Registry) Register(p Preset) error {
	if err := errs.ValidateName("preset", p.Name); err != nil {
		return errs.Wrap(errs.ErrCodeConfig, err, "invalid preset")
	}
	cb := p.Callbacks
	switch {
	case cb.Init == nil:
		return errs.Config("preset %q: Init callback is not set", p.Name)
	case cb.Fini == nil:
		return errs.Config("preset %q: Fini callback is not set", p.Name)
	case cb.Point == nil:
		return errs.Config("preset %q: Point callback is not set", p.Name)
	}
	for name, pair := range cb.Layers {
		if !pair.Complete() {
			return errs.Config("preset %q: layer %q needs both Before and After", p.Name, name)
		}
	}
	for _, l := range p.DefaultLayers.Boundaries() {
		if _, ok := cb.Layers[l]; !ok {
			return errs.Config("preset %q: default layer %q has no callbacks", p.Name, l)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.presets[p.Name]; exists {
		return errs.Config("preset %q already registered", p.Name)
	}
	r.presets[p.Name] = p
	return nil
}

// MustRegister is like Register but panics on error. It is meant for
// package-level preset tables.
func (r *Registry) MustRegister(p Preset) {
	if err := r.Register(p); err != nil {
		panic(err)
	}
}

// Lookup returns the preset registered under name.
func (r *Registry) Lookup(name string) (Preset, bool) {
	if r == nil {
		return Preset{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.presets[name]
	return p, ok
}

// Names returns the registered preset names in sorted order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.presets))
}

// Resolve produces a complete bundle for layers.
//
// Without a preset, user must already set Init, Fini, Point and both halves
// of every boundary layer's pair. With a preset, it must be registered in
// reg; any slot user leaves nil is taken from the preset's matching slot,
// and a layer user does not mention at all takes the preset's pair whole.
// The result holds pairs for the boundary layers of the stack only; a user
// pair for the leaf layer or for a layer outside the stack is a
// configuration error.
func Resolve(layers Layers, user Callbacks, preset string, reg *Registry) (Callbacks, error) {
	if err := layers.Validate(); err != nil {
		return Callbacks{}, err
	}
	bounds := layers.Boundaries()
	for _, l := range slices.Sorted(maps.Keys(user.Layers)) {
		switch {
		case l == layers.Leaf():
			return Callbacks{}, errs.Config("leaf layer %q takes a Point callback, not a before/after pair", l)
		case !slices.Contains(bounds, l):
			return Callbacks{}, errs.Config("callbacks given for layer %q, which is not in the stack %v", l, []string(layers))
		}
	}

	var (
		defaults Callbacks
		from     string
	)
	if preset != "" {
		p, ok := reg.Lookup(preset)
		if !ok {
			return Callbacks{}, errs.Config("unknown preset %q", preset)
		}
		defaults = p.Callbacks
		from = preset
	}

	out := Callbacks{
		Init:   firstSet(user.Init, defaults.Init),
		Fini:   firstSet(user.Fini, defaults.Fini),
		Point:  firstSet(user.Point, defaults.Point),
		Layers: make(map[string]Pair, len(layers)-1),
	}
	switch {
	case out.Init == nil:
		return Callbacks{}, missing("Init", from)
	case out.Fini == nil:
		return Callbacks{}, missing("Fini", from)
	case out.Point == nil:
		return Callbacks{}, missing(layers.Leaf(), from)
	}

	for _, l := range bounds {
		u := user.Layers[l]
		d := defaults.Layers[l]
		pair := Pair{Before: firstSet(u.Before, d.Before), After: firstSet(u.After, d.After)}
		if !pair.Complete() {
			return Callbacks{}, missing(l, from)
		}
		out.Layers[l] = pair
	}
	return out, nil
}

func firstSet(fns ...Fn) Fn {
	for _, fn := range fns {
		if fn != nil {
			return fn
		}
	}
	return nil
}

func missing(slot, preset string) error {
	if preset == "" {
		return errs.Config("no callback for %q and no preset to fall back on", slot)
	}
	return errs.Config("no callback for %q: preset %q does not define it", slot, preset)
}
