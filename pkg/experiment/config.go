package experiment

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/matzehuels/labutil/pkg/dag"
	"github.com/matzehuels/labutil/pkg/dag/transform"
	errs "github.com/matzehuels/labutil/pkg/errors"
	"github.com/matzehuels/labutil/pkg/observability"
)

// Assignment maps parameter names to values.
type Assignment map[string]any

// ValueFn returns a parameter's value list. It receives the current values
// of the parameter's dependencies and nothing else.
type ValueFn func(Assignment) ([]any, error)

// Param declares one experiment parameter.
type Param struct {
	Name    string
	Depends []string
	Values  ValueFn
}

// Fixed returns a ValueFn that always yields vals.
func Fixed(vals ...any) ValueFn {
	return func(Assignment) ([]any, error) { return slices.Clone(vals), nil }
}

// Config is a validated parameter set. Only [Config.SetDisplayOrder]
// modifies it after New returns.
type Config struct {
	params   map[string]Param
	declared []string
	order    []string

	describing map[string]bool
	display    []string

	// maxValues is the longest value list seen per parameter.
	maxValues map[string]int
	count     int
}

// New validates params, orders them by dependency and walks every
// combination once to find the describing parameters.
//
// Errors are CONFIG_ERROR for malformed declarations and empty value lists,
// DEPENDENCY_CYCLE for cyclic dependencies, and CALLBACK_ERROR when a value
// function fails.
func New(ctx context.Context, params []Param) (*Config, error) {
	start := time.Now()
	c, err := build(ctx, params)
	count := 0
	if c != nil {
		count = c.count
	}
	observability.Experiment().OnConfigBuilt(ctx, len(params), count, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func build(ctx context.Context, params []Param) (*Config, error) {
	if len(params) == 0 {
		return nil, errs.Config("no parameters declared")
	}

	c := &Config{
		params:     make(map[string]Param, len(params)),
		describing: make(map[string]bool, len(params)),
		maxValues:  make(map[string]int, len(params)),
	}
	for i, p := range params {
		if err := errs.ValidateName("parameter", p.Name); err != nil {
			return nil, errs.Wrap(errs.ErrCodeConfig, err, "param %d", i)
		}
		if _, dup := c.params[p.Name]; dup {
			return nil, errs.Config("parameter %q declared twice", p.Name)
		}
		if p.Values == nil {
			return nil, errs.Config("parameter %q has no value function", p.Name)
		}
		c.params[p.Name] = p
		c.declared = append(c.declared, p.Name)
	}
	for _, p := range params {
		for _, dep := range p.Depends {
			if _, ok := c.params[dep]; !ok {
				return nil, errs.Config("dependence %q of parameter %q does not exist", dep, p.Name)
			}
			if dep == p.Name {
				return nil, errs.New(errs.ErrCodeCycle, "parameter %q depends on itself", p.Name)
			}
		}
	}

	order, err := transform.TopoSort(c.dependencyGraph())
	if err != nil {
		return nil, cycleError(c, err)
	}
	c.order = order

	if err := c.scan(ctx); err != nil {
		return nil, err
	}
	c.SetDisplayOrder(c.declared)
	return c, nil
}

// dependencyGraph has one node per parameter in declaration order and an
// edge from every dependency to its dependent.
func (c *Config) dependencyGraph() *dag.DAG {
	g := dag.New(nil)
	for _, name := range c.declared {
		_ = g.AddNode(dag.Node{ID: name})
	}
	for _, name := range c.declared {
		for _, dep := range c.params[name].Depends {
			_ = g.AddEdge(dag.Edge{From: dep, To: name})
		}
	}
	return g
}

func cycleError(c *Config, err error) error {
	var ce *transform.CycleError
	if !errors.As(err, &ce) {
		return errs.Wrap(errs.ErrCodeCycle, err, "order parameters")
	}
	cycle := c.dependencyGraph().Cycle()
	return errs.New(errs.ErrCodeCycle, "parameters %v cannot be ordered; look for a cycle among %v", cycle, ce.Remaining)
}

// scan walks every combination once, recording value list lengths.
func (c *Config) scan(ctx context.Context) error {
	it := c.Iter()
	it.observe = func(name string, n int) {
		if n > 1 {
			c.describing[name] = true
		}
		c.maxValues[name] = max(c.maxValues[name], n)
	}
	for it.Next() {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.count++
	}
	return it.Err()
}

// values evaluates name's value function against the dependency values in
// cur.
func (c *Config) values(name string, cur Assignment) ([]any, error) {
	p := c.params[name]
	deps := make(Assignment, len(p.Depends))
	for _, d := range p.Depends {
		deps[d] = cur[d]
	}

	vals, err := p.Values(deps)
	if err != nil {
		code := errs.GetCode(err)
		if code == "" {
			code = errs.ErrCodeCallback
		}
		return nil, errs.Wrap(code, err, "parameter %q with %v", name, deps)
	}
	if len(vals) == 0 {
		return nil, errs.Config("parameter %q has no values for %v", name, deps)
	}
	return vals, nil
}

// Order returns the evaluation order.
func (c *Config) Order() []string { return slices.Clone(c.order) }

// Params returns parameter names in declaration order.
func (c *Config) Params() []string { return slices.Clone(c.declared) }

// Depends returns the declared dependencies of name.
func (c *Config) Depends(name string) []string { return slices.Clone(c.params[name].Depends) }

// Describing returns the describing parameters in display order.
func (c *Config) Describing() []string { return slices.Clone(c.display) }

// IsDescribing reports whether name describes the experiment.
func (c *Config) IsDescribing(name string) bool { return c.describing[name] }

// SetDisplayOrder sets the label order. Names that are not describing
// parameters are ignored, and describing parameters not named are left
// out of labels.
func (c *Config) SetDisplayOrder(names []string) {
	c.display = c.display[:0]
	for _, n := range names {
		if c.describing[n] && !slices.Contains(c.display, n) {
			c.display = append(c.display, n)
		}
	}
}

// Has reports whether name is a declared parameter.
func (c *Config) Has(name string) bool {
	_, ok := c.params[name]
	return ok
}

// Count returns the number of combinations.
func (c *Config) Count() int { return c.count }

// MaxValues returns the longest value list name produced.
func (c *Config) MaxValues(name string) int { return c.maxValues[name] }

// All returns every combination in iteration order.
func (c *Config) All() ([]Assignment, error) {
	out := make([]Assignment, 0, c.count)
	it := c.Iter()
	for it.Next() {
		out = append(out, it.Values())
	}
	return out, it.Err()
}
