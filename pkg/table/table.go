// Package table provides the small in-memory relation that every labutil
// component operates on: an ordered set of named columns and a list of rows
// aligned positionally to those columns.
//
// Values are dynamically typed. Numbers of any Go kind, strings, bools and
// nil are supported and ordered by [Compare], which is also what the stable
// multi-column sort in [Table.SortStable] uses.
//
// # Loading
//
// Tables are usually built in code, but [Load] reads CSV and JSON files:
//
//	t, err := table.Load("results.csv")
//	if err != nil {
//	    return err
//	}
//	ys, _ := t.Column("Latency")
package table

import (
	"slices"

	errs "github.com/matzehuels/labutil/pkg/errors"
)

// Value is a single cell.
type Value = any

// Row is a tuple of values aligned to a table's columns.
type Row []Value

// Table is an ordered tuple of unique column names plus rows of equal length.
//
// The zero value is an empty table with no columns.
type Table struct {
	Columns []string
	Rows    []Row
}

// New builds a table after checking that column names are valid and unique
// and that every row has exactly one value per column.
func New(columns []string, rows []Row) (Table, error) {
	t := Table{Columns: columns, Rows: rows}
	if err := t.Validate(); err != nil {
		return Table{}, err
	}
	return t, nil
}

// Validate checks the table invariants.
func (t Table) Validate() error {
	seen := make(map[string]bool, len(t.Columns))
	for _, c := range t.Columns {
		if err := errs.ValidateName("column", c); err != nil {
			return errs.Wrap(errs.ErrCodeConfig, err, "invalid column")
		}
		if seen[c] {
			return errs.Config("duplicate column %q", c)
		}
		seen[c] = true
	}
	for i, r := range t.Rows {
		if len(r) != len(t.Columns) {
			return errs.Config("row %d has %d values, want %d", i, len(r), len(t.Columns))
		}
	}
	return nil
}

// Len returns the number of rows.
func (t Table) Len() int { return len(t.Rows) }

// Index returns the position of col, or -1 if the table has no such column.
func (t Table) Index(col string) int {
	return slices.Index(t.Columns, col)
}

// Has reports whether the table has a column named col.
func (t Table) Has(col string) bool { return t.Index(col) >= 0 }

// Column returns a copy of the values of col in row order.
func (t Table) Column(col string) ([]Value, error) {
	idx := t.Index(col)
	if idx < 0 {
		return nil, errs.Config("column %q not in table", col)
	}
	out := make([]Value, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r[idx]
	}
	return out, nil
}

// Project returns a new table holding only cols, in the given order.
// Rows keep their relative order.
func (t Table) Project(cols []string) (Table, error) {
	idx := make([]int, len(cols))
	for i, c := range cols {
		idx[i] = t.Index(c)
		if idx[i] < 0 {
			return Table{}, errs.Config("column %q not in table", c)
		}
	}

	rows := make([]Row, len(t.Rows))
	for i, r := range t.Rows {
		nr := make(Row, len(idx))
		for j, k := range idx {
			nr[j] = r[k]
		}
		rows[i] = nr
	}
	return Table{Columns: slices.Clone(cols), Rows: rows}, nil
}

// Clone returns a deep copy of the column list and rows. Cell values are
// copied by assignment.
func (t Table) Clone() Table {
	rows := make([]Row, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = slices.Clone(r)
	}
	return Table{Columns: slices.Clone(t.Columns), Rows: rows}
}

// RowMap returns the values of row i keyed by column name.
func (t Table) RowMap(i int) map[string]Value {
	m := make(map[string]Value, len(t.Columns))
	for j, c := range t.Columns {
		m[c] = t.Rows[i][j]
	}
	return m
}

// SortStable orders rows lexicographically by column, first column most
// significant. Columns present in reverse sort descending; ties on such a
// column are still broken by the columns after it. Rows that compare equal
// on every column keep their original relative order.
func (t Table) SortStable(reverse map[string]bool) {
	desc := make([]bool, len(t.Columns))
	for i, c := range t.Columns {
		desc[i] = reverse[c]
	}
	slices.SortStableFunc(t.Rows, func(a, b Row) int {
		for i := range desc {
			c := Compare(a[i], b[i])
			if c == 0 {
				continue
			}
			if desc[i] {
				return -c
			}
			return c
		}
		return 0
	})
}
