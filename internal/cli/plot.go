package cli

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/labutil/pkg/config"
	errs "github.com/matzehuels/labutil/pkg/errors"
	"github.com/matzehuels/labutil/pkg/plot"
	"github.com/matzehuels/labutil/pkg/plotfns"
)

// plotOptions holds the command-line overrides of a plot file.
type plotOptions struct {
	output string
	data   string
	preset string
	format string
	trace  bool
	dryRun bool
}

// plotCommand creates the "plot" command.
func (c *CLI) plotCommand() *cobra.Command {
	var opts plotOptions

	cmd := &cobra.Command{
		Use:   "plot <plot.toml>",
		Short: "Draw the figures described by a plot file",
		Long: `Draw the figures described by a plot file.

The data table is sorted by the layer stack and every row is handed to the
preset's callbacks. One image is written per distinct value of the outermost
layer, into output_dir, which is emptied first.

Without a preset in the file or on the command line, an interactive picker is
shown when running in a terminal.`,
		Example: `  labutil plot latency.toml
  labutil plot latency.toml --preset BarStacked --format svg -o plots
  labutil plot latency.toml --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPlot(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output directory (overrides output_dir)")
	cmd.Flags().StringVar(&opts.data, "data", "", "data table, .csv or .json (overrides data)")
	cmd.Flags().StringVarP(&opts.preset, "preset", "p", "", "preset name (overrides preset)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "image format: "+strings.Join(plotfns.Formats, "|"))
	cmd.Flags().BoolVar(&opts.trace, "trace", false, "log every callback invocation")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "run the Trace preset instead of drawing")
	_ = cmd.RegisterFlagCompletionFunc("preset", c.completePresets)
	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return plotfns.Formats, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func (c *CLI) runPlot(cmd *cobra.Command, path string, opts plotOptions) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	p := newPrinter(cmd)

	f, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := applyOverrides(f, opts); err != nil {
		return err
	}

	if f.Preset == "" {
		if !c.interactive() {
			return errs.Config("%s: no preset; set preset in the file or pass --preset", path)
		}
		name, err := pickPreset(c.presets())
		if err != nil {
			return err
		}
		if name == "" {
			p.detail("No preset selected")
			return nil
		}
		f.Preset = name
	}

	if opts.dryRun {
		// Keep the stack the real preset would have drawn.
		if len(f.Layers) == 0 {
			if pr, ok := c.Registry.Lookup(f.Preset); ok {
				f.Layers = slices.Clone(pr.DefaultLayers)
			}
		}
		logger.Info("Dry run", "preset", f.Preset)
		f.Preset = plotfns.Trace
	}
	if f.Trace {
		logger.SetLevel(LogDebug)
	}

	tbl, err := f.LoadTable()
	if err != nil {
		return err
	}
	cfg, err := f.PlotConfig(tbl, c.Registry, logger)
	if err != nil {
		return err
	}

	logger.Info("Plotting", "preset", cfg.Preset, "rows", tbl.Len(), "layers", cfg.Layers)
	prog := newProgress(logger)
	s, err := plot.Run(ctx, cfg)
	if err != nil {
		return err
	}
	prog.done("Plot finished", "points", s.Points)

	if opts.dryRun {
		p.success("Dry run of %s finished (%d points)", path, s.Points)
		return nil
	}
	return printOutputs(p, cfg.OutputDir)
}

// applyOverrides copies command-line values into f and revalidates it.
// Paths given on the command line are relative to the working directory,
// not to the plot file.
func applyOverrides(f *config.File, opts plotOptions) error {
	if opts.output != "" {
		abs, err := filepath.Abs(opts.output)
		if err != nil {
			return errs.Wrap(errs.ErrCodeInvalidPath, err, "output %s", opts.output)
		}
		f.OutputDir = abs
	}
	if opts.data != "" {
		abs, err := filepath.Abs(opts.data)
		if err != nil {
			return errs.Wrap(errs.ErrCodeInvalidPath, err, "data %s", opts.data)
		}
		f.Data = abs
	}
	if opts.preset != "" {
		f.Preset = opts.preset
	}
	if opts.format != "" {
		f.Options.Format = opts.format
	}
	if opts.trace {
		f.Trace = true
	}
	return f.Validate()
}

// printOutputs lists the files the run left in dir.
func printOutputs(p printer, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		p.warning("No figures written to %s", dir)
		return nil
	}
	p.success("Wrote %d figure(s)", len(files))
	for _, f := range files {
		p.file(f)
	}
	return nil
}
