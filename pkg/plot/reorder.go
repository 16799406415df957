package plot

import (
	errs "github.com/matzehuels/labutil/pkg/errors"
	"github.com/matzehuels/labutil/pkg/table"
)

// Reorder returns a new table whose columns are the grouping columns of each
// layer in stack order and whose rows are sorted lexicographically on those
// columns, first column most significant.
//
// Columns listed in reverse sort descending. Rows with equal values in every
// grouping column keep their input order. Columns not named by any layer are
// dropped. The input table is not modified.
func Reorder(t table.Table, layers Layers, groups Groups, reverse []string) (table.Table, error) {
	if err := groups.validate(layers); err != nil {
		return table.Table{}, err
	}
	cols := groups.Columns(layers)
	for _, c := range cols {
		if !t.Has(c) {
			return table.Table{}, errs.Config("grouping column %q is not in the table", c)
		}
	}

	out, err := t.Project(cols)
	if err != nil {
		return table.Table{}, err
	}
	desc := make(map[string]bool, len(reverse))
	for _, c := range reverse {
		desc[c] = true
	}
	out.SortStable(desc)
	return out, nil
}
