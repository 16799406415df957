package plot

import (
	"slices"
	"strings"

	"github.com/drone/envsubst"

	errs "github.com/matzehuels/labutil/pkg/errors"
	"github.com/matzehuels/labutil/pkg/table"
)

// RowValues maps column names to the values of the current row.
type RowValues = map[string]table.Value

// Label is either a literal template or a computed function of the current
// row. The zero value renders as the empty string.
type Label struct {
	template string
	compute  func(RowValues) string
}

// Literal returns a label whose text is template with every ${Column}
// reference replaced by the current row's value of Column. Shell-style
// defaults such as ${Column:-none} are supported.
func Literal(template string) Label { return Label{template: template} }

// Computed returns a label produced by fn from the current row.
func Computed(fn func(RowValues) string) Label { return Label{compute: fn} }

// IsComputed reports whether the label was built with [Computed].
func (l Label) IsComputed() bool { return l.compute != nil }

// Template returns the literal template, or "" for a computed label.
func (l Label) Template() string { return l.template }

// Validate checks that a literal template parses.
func (l Label) Validate() error {
	if l.compute != nil {
		return nil
	}
	if _, err := envsubst.Parse(l.template); err != nil {
		return errs.Wrap(errs.ErrCodeConfig, err, "label template %q", l.template)
	}
	return nil
}

// Render produces the label text for row. A literal template that refers
// to a column missing from row is an error.
func (l Label) Render(row RowValues) (string, error) {
	if l.compute != nil {
		return l.compute(row), nil
	}
	if !strings.Contains(l.template, "$") {
		return l.template, nil
	}

	var unknown []string
	out, err := envsubst.Eval(l.template, func(name string) string {
		v, ok := row[name]
		if !ok {
			unknown = append(unknown, name)
			return ""
		}
		return table.Format(v)
	})
	if err != nil {
		return "", errs.Wrap(errs.ErrCodeConfig, err, "label template %q", l.template)
	}
	if len(unknown) > 0 {
		slices.Sort(unknown)
		return "", errs.Config("label template %q refers to unknown columns %v", l.template, slices.Compact(unknown))
	}
	return out, nil
}
