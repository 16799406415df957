package plot

import (
	"slices"
	"strconv"
	"strings"

	errs "github.com/matzehuels/labutil/pkg/errors"
	"github.com/matzehuels/labutil/pkg/table"
)

// Conventional layer names understood by the preset library.
const (
	LayerFigure  = "Figure"
	LayerSubplot = "Subplot"
	LayerGroup   = "Group"
	LayerSeries  = "Series"
	LayerStack   = "Stack"
	LayerPoint   = "Point"
)

// Layers is the ordered layer stack, outermost first. The last entry is the
// leaf layer.
type Layers []string

// Leaf returns the last layer, or "" for an empty stack.
func (l Layers) Leaf() string {
	if len(l) == 0 {
		return ""
	}
	return l[len(l)-1]
}

// Boundaries returns every layer except the leaf.
func (l Layers) Boundaries() []string {
	if len(l) == 0 {
		return nil
	}
	return l[:len(l)-1]
}

// Validate checks that the stack is non-empty, that names are valid and that
// no layer appears twice.
func (l Layers) Validate() error {
	if len(l) == 0 {
		return errs.Config("layer stack is empty")
	}
	seen := make(map[string]bool, len(l))
	for _, name := range l {
		if err := errs.ValidateName("layer", name); err != nil {
			return errs.Wrap(errs.ErrCodeConfig, err, "invalid layer")
		}
		if seen[name] {
			return errs.Config("layer %q appears twice in the stack", name)
		}
		seen[name] = true
	}
	return nil
}

// Groups maps a layer name to the columns that form its group key.
// An empty slice is a valid grouping.
type Groups map[string][]string

// Columns returns the grouping columns of all layers, in layer order.
// A column named by more than one layer is placed at its first mention.
func (g Groups) Columns(layers Layers) []string {
	var cols []string
	for _, l := range layers {
		for _, c := range g[l] {
			if !slices.Contains(cols, c) {
				cols = append(cols, c)
			}
		}
	}
	return cols
}

// Empty reports whether layer has no grouping columns.
func (g Groups) Empty(layer string) bool { return len(g[layer]) == 0 }

func (g Groups) validate(layers Layers) error {
	for _, l := range layers {
		if _, ok := g[l]; !ok {
			return errs.Config("layer %q has no grouping entry", l)
		}
	}
	return nil
}

// Key is a layer's group key for one row: the values of its grouping
// columns, in grouping order.
type Key []table.Value

// Equal reports whether both keys hold equal values position by position.
func (k Key) Equal(o Key) bool {
	return slices.EqualFunc(k, o, table.Equal)
}

// String joins the formatted values with spaces.
func (k Key) String() string {
	parts := make([]string, len(k))
	for i, v := range k {
		parts[i] = table.Format(v)
	}
	return strings.Join(parts, " ")
}

// ID returns a string that is identical for two keys exactly when they are
// Equal, suitable as a map key.
func (k Key) ID() string {
	var b strings.Builder
	for i, v := range k {
		if i > 0 {
			b.WriteByte(0x1f)
		}
		switch {
		case v == nil:
			b.WriteString("z:")
		case table.IsNumber(v):
			b.WriteString("n:")
			b.WriteString(table.NumberID(v))
		default:
			if _, ok := v.(string); ok {
				b.WriteString("s:")
			} else {
				b.WriteString("o:")
			}
			b.WriteString(strconv.Quote(table.Format(v)))
		}
	}
	return b.String()
}

// LayerValues maps each layer to its key for one row.
type LayerValues map[string]Key

// Clone returns a copy of the mapping. Keys are shared.
func (v LayerValues) Clone() LayerValues {
	out := make(LayerValues, len(v))
	for l, k := range v {
		out[l] = k
	}
	return out
}

// keyIndex holds, per layer, the positions of its grouping columns in a
// reordered table.
type keyIndex map[string][]int

func newKeyIndex(t table.Table, layers Layers, groups Groups) (keyIndex, error) {
	idx := make(keyIndex, len(layers))
	for _, l := range layers {
		pos := make([]int, len(groups[l]))
		for i, c := range groups[l] {
			pos[i] = t.Index(c)
			if pos[i] < 0 {
				return nil, errs.Config("layer %q groups by column %q, which is not in the table", l, c)
			}
		}
		idx[l] = pos
	}
	return idx, nil
}

func (idx keyIndex) values(row table.Row) LayerValues {
	out := make(LayerValues, len(idx))
	for l, pos := range idx {
		k := make(Key, len(pos))
		for i, p := range pos {
			k[i] = row[p]
		}
		out[l] = k
	}
	return out
}
