// Package config loads plot files: TOML documents that describe one plot
// run, from the data table through the layer stack to the preset and its
// drawing options.
//
//	preset = "BarStacked"
//	data = "results.csv"
//	output_dir = "plots"
//	layers = ["Figure", "Subplot", "Series", "Point"]
//	reverse_columns = ["Y"]
//
//	[groups]
//	Figure = ["Offset"]
//	Subplot = []
//	Series = ["Mode"]
//	Point = ["X", "Y"]
//
//	[labels]
//	Figure = "offset ${Offset}"
//	YAxis = "latency (ms)"
//
//	[options]
//	format = "svg"
//
// Relative data and output_dir paths resolve against the plot file's
// directory, after ${VAR} references to environment variables are expanded.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/drone/envsubst"

	errs "github.com/matzehuels/labutil/pkg/errors"
	"github.com/matzehuels/labutil/pkg/plot"
	"github.com/matzehuels/labutil/pkg/plotfns"
	"github.com/matzehuels/labutil/pkg/table"
)

// File is a decoded plot file.
type File struct {
	Preset         string              `toml:"preset"`
	Data           string              `toml:"data"`
	OutputDir      string              `toml:"output_dir"`
	Layers         []string            `toml:"layers"`
	ReverseColumns []string            `toml:"reverse_columns"`
	Groups         map[string][]string `toml:"groups"`
	Labels         map[string]string   `toml:"labels"`
	Trace          bool                `toml:"trace"`

	// Cascade reopens every inner layer when an outer one changes. It
	// defaults to true.
	Cascade *bool `toml:"cascade"`

	Options plotfns.Options `toml:"options"`

	// path is the file the plot file was loaded from; dir is the directory
	// relative paths resolve against.
	path string
	dir  string
}

// Parse decodes a plot file from r. Relative paths resolve against the
// working directory.
func Parse(r io.Reader) (*File, error) {
	f := &File{Options: plotfns.DefaultOptions()}
	md, err := toml.NewDecoder(r).Decode(f)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeConfig, err, "decode plot file")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errs.Config("unknown keys in plot file: %v", undecoded)
	}
	return f, nil
}

// Load reads and validates the plot file at path.
func Load(path string) (*File, error) {
	r, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer r.Close()

	f, err := Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f.path = path
	f.dir = filepath.Dir(path)
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Validate checks the fields that can be checked without the data table.
func (f *File) Validate() error {
	if f.Data == "" {
		return errs.Config("data is not set")
	}
	if f.OutputDir == "" {
		return errs.Config("output_dir is not set")
	}
	if len(f.Layers) > 0 {
		if err := plot.Layers(f.Layers).Validate(); err != nil {
			return err
		}
	}
	for name, tmpl := range f.Labels {
		if err := plot.Literal(tmpl).Validate(); err != nil {
			return errs.Wrap(errs.ErrCodeConfig, err, "label %q", name)
		}
	}
	return f.Options.WithDefaults().Validate()
}

// DataPath returns the resolved path of the data table.
func (f *File) DataPath() (string, error) { return f.resolve("data", f.Data) }

// OutputPath returns the resolved output directory.
func (f *File) OutputPath() (string, error) { return f.resolve("output_dir", f.OutputDir) }

func (f *File) resolve(key, p string) (string, error) {
	expanded, err := envsubst.EvalEnv(p)
	if err != nil {
		return "", errs.Wrap(errs.ErrCodeConfig, err, "%s %q", key, p)
	}
	if filepath.IsAbs(expanded) || f.dir == "" {
		return expanded, nil
	}
	return filepath.Join(f.dir, expanded), nil
}

// LoadTable reads the data table.
func (f *File) LoadTable() (table.Table, error) {
	p, err := f.DataPath()
	if err != nil {
		return table.Table{}, err
	}
	return table.Load(p)
}

// PlotConfig builds the engine configuration for tbl. An empty layer stack
// is taken from the preset's default layers. The output directory is wiped
// by the run, so one that holds the plot file, the data table or the working
// directory is a configuration error.
func (f *File) PlotConfig(tbl table.Table, reg *plot.Registry, logger *log.Logger) (plot.Config, error) {
	layers := plot.Layers(f.Layers)
	if len(layers) == 0 {
		p, ok := reg.Lookup(f.Preset)
		if !ok {
			return plot.Config{}, errs.Config("layers are not set and preset %q is unknown", f.Preset)
		}
		layers = p.DefaultLayers
	}

	out, err := f.OutputPath()
	if err != nil {
		return plot.Config{}, err
	}
	data, err := f.DataPath()
	if err != nil {
		return plot.Config{}, err
	}
	if err := errs.ValidateOutputDir(out, data, f.path); err != nil {
		return plot.Config{}, errs.Wrap(errs.ErrCodeConfig, err, "output_dir %q", f.OutputDir)
	}

	groups := make(plot.Groups, len(f.Groups))
	for l, cols := range f.Groups {
		groups[l] = cols
	}
	labels := make(map[string]plot.Label, len(f.Labels))
	for name, tmpl := range f.Labels {
		labels[name] = plot.Literal(tmpl)
	}

	cascade := true
	if f.Cascade != nil {
		cascade = *f.Cascade
	}

	return plot.Config{
		Table:          tbl,
		Layers:         layers,
		Groups:         groups,
		Labels:         labels,
		ReverseColumns: f.ReverseColumns,
		Preset:         f.Preset,
		Registry:       reg,
		OutputDir:      out,
		Cascade:        cascade,
		Trace:          f.Trace,
		Logger:         logger,
		Vars:           map[string]any{plotfns.OptionsKey: f.Options.WithDefaults()},
	}, nil
}
