package experiment

import (
	"maps"
	"strings"

	"github.com/matzehuels/labutil/pkg/table"
)

// Iterator walks the combinations of a Config. Call Next before reading
// values:
//
//	it := cfg.Iter()
//	for it.Next() {
//	    run(it.Values())
//	}
//	err := it.Err()
type Iterator struct {
	cfg *Config

	idx  map[string]int
	cur  Assignment
	lens map[string]int

	started bool
	done    bool
	err     error

	observe func(name string, n int)
}

// Iter returns an iterator positioned before the first combination.
func (c *Config) Iter() *Iterator {
	return &Iterator{cfg: c}
}

// Next advances to the next combination. It returns false when every
// combination has been visited or a value function failed; see Err.
func (it *Iterator) Next() bool {
	if it.done || it.err != nil {
		return false
	}
	if !it.started {
		it.started = true
		it.idx = make(map[string]int, len(it.cfg.order))
		it.cur = make(Assignment, len(it.cfg.order))
		it.lens = make(map[string]int, len(it.cfg.order))
	} else if !it.inc() {
		it.done = true
		return false
	}
	if err := it.update(); err != nil {
		it.err = err
		return false
	}
	return true
}

// inc adds one to the last parameter's index and carries overflow towards
// the first. It reports false once every index has wrapped to zero.
func (it *Iterator) inc() bool {
	order := it.cfg.order
	for i := len(order) - 1; i >= 0; i-- {
		name := order[i]
		if it.idx[name]+1 < it.lens[name] {
			it.idx[name]++
			return true
		}
		it.idx[name] = 0
	}
	return false
}

// update recomputes every value list in order and picks the indexed value.
// Parameters after the one inc advanced have index zero, so lists that
// shrank are never indexed out of range.
func (it *Iterator) update() error {
	for _, name := range it.cfg.order {
		vals, err := it.cfg.values(name, it.cur)
		if err != nil {
			return err
		}
		if it.observe != nil {
			it.observe(name, len(vals))
		}
		it.lens[name] = len(vals)
		it.cur[name] = vals[it.idx[name]]
	}
	return nil
}

// Err returns the error that stopped iteration, if any.
func (it *Iterator) Err() error { return it.err }

// Value returns the current value of name, or nil before the first Next.
func (it *Iterator) Value(name string) any { return it.cur[name] }

// Values returns a copy of the current combination.
func (it *Iterator) Values() Assignment { return maps.Clone(it.cur) }

// Label names the current combination: "param_value" for every describing
// parameter in display order, joined by "__".
func (it *Iterator) Label() string {
	parts := make([]string, len(it.cfg.display))
	for i, name := range it.cfg.display {
		parts[i] = name + "_" + table.Format(it.cur[name])
	}
	return strings.Join(parts, "__")
}
