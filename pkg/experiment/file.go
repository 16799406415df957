package experiment

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	errs "github.com/matzehuels/labutil/pkg/errors"
	"github.com/matzehuels/labutil/pkg/table"
)

type paramFile struct {
	Params []paramSpec `toml:"param"`
}

type paramSpec struct {
	Name    string           `toml:"name"`
	Depends []string         `toml:"depends"`
	Values  []any            `toml:"values"`
	Cases   map[string][]any `toml:"cases"`
}

// LoadParams reads parameter declarations from a TOML document:
//
//	[[param]]
//	name = "length"
//	values = [1, 2, 3]
//
//	[[param]]
//	name = "height"
//	depends = ["length"]
//	values = [0]
//	[param.cases]
//	"2" = [4, 5]
//
// A parameter with dependencies looks up its value list in cases under the
// dependency values joined by ",", in depends order. When no case matches,
// values is used; a parameter with neither fails when evaluated.
func LoadParams(r io.Reader) ([]Param, error) {
	var f paramFile
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeConfig, err, "decode parameters")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errs.Config("unknown keys in parameter file: %v", undecoded)
	}
	if len(f.Params) == 0 {
		return nil, errs.Config("parameter file declares no [[param]]")
	}

	params := make([]Param, len(f.Params))
	for i, spec := range f.Params {
		if len(spec.Depends) == 0 && len(spec.Cases) > 0 {
			return nil, errs.Config("parameter %q has cases but no dependencies", spec.Name)
		}
		if len(spec.Depends) == 0 && len(spec.Values) == 0 {
			return nil, errs.Config("parameter %q has no values", spec.Name)
		}
		params[i] = Param{
			Name:    spec.Name,
			Depends: spec.Depends,
			Values:  spec.valueFn(),
		}
	}
	return params, nil
}

// LoadParamsFile reads parameter declarations from the TOML file at path.
func LoadParamsFile(path string) ([]Param, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	params, err := LoadParams(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return params, nil
}

func (spec paramSpec) valueFn() ValueFn {
	if len(spec.Depends) == 0 {
		return Fixed(spec.Values...)
	}
	return func(a Assignment) ([]any, error) {
		key := caseKey(spec.Depends, a)
		if vals, ok := spec.Cases[key]; ok {
			return slices.Clone(vals), nil
		}
		if len(spec.Values) == 0 {
			return nil, errs.Config("parameter %q has no case %q and no default values", spec.Name, key)
		}
		return slices.Clone(spec.Values), nil
	}
}

func caseKey(deps []string, a Assignment) string {
	parts := make([]string, len(deps))
	for i, d := range deps {
		parts[i] = table.Format(a[d])
	}
	return strings.Join(parts, ",")
}
