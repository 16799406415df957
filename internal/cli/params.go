package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/labutil/pkg/dag"
	"github.com/matzehuels/labutil/pkg/dag/transform"
	errs "github.com/matzehuels/labutil/pkg/errors"
	"github.com/matzehuels/labutil/pkg/experiment"
	"github.com/matzehuels/labutil/pkg/table"
)

// paramsCommand creates the "params" command group for experiment
// parameter files.
func (c *CLI) paramsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "params",
		Short: "Enumerate experiment parameter files",
		Long: `Enumerate experiment parameter files.

A parameter file declares named parameters whose value lists may depend on
other parameters:

  [[param]]
  name = "Mode"
  values = ["fast", "safe"]

  [[param]]
  name = "Threads"
  depends = ["Mode"]
  [param.cases]
  fast = [1, 2, 4]
  safe = [1]`,
	}

	cmd.AddCommand(c.paramsListCommand())
	cmd.AddCommand(c.paramsGraphCommand())

	return cmd
}

// paramsListCommand creates the "params list" subcommand.
func (c *CLI) paramsListCommand() *cobra.Command {
	var (
		display []string
		values  bool
	)

	cmd := &cobra.Command{
		Use:   "list <params.toml>",
		Short: "Print every parameter combination with its label",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadExperiment(cmd, args[0])
			if err != nil {
				return err
			}
			if len(display) > 0 {
				for _, name := range display {
					if !cfg.Has(name) {
						return errs.Config("display: unknown parameter %q", name)
					}
				}
				cfg.SetDisplayOrder(display)
			}

			g, err := cfg.Graph()
			if err != nil {
				return err
			}

			p := newPrinter(cmd)
			p.keyValue("Order", strings.Join(cfg.Order(), " → "))
			p.keyValue("Roots", strings.Join(nodeIDs(g.Sources()), ", "))
			p.keyValue("Leaves", strings.Join(nodeIDs(g.Sinks()), ", "))
			p.keyValue("Depth", strconv.Itoa(transform.MaxRow(g)+1))
			p.keyValue("Describing", strings.Join(cfg.Describing(), ", "))
			p.keyValue("Combinations", strconv.Itoa(cfg.Count()))
			p.newline()

			out := cmd.OutOrStdout()
			it := cfg.Iter()
			for i := 1; it.Next(); i++ {
				label := it.Label()
				if label == "" {
					label = StyleDim.Render("(single combination)")
				}
				if !values {
					fmt.Fprintf(out, "%s %s\n", StyleNumber.Render(fmt.Sprintf("%4d", i)), label)
					continue
				}
				fmt.Fprintf(out, "%s %s %s\n", StyleNumber.Render(fmt.Sprintf("%4d", i)), label,
					StyleDim.Render(formatAssignment(cfg.Order(), it.Values())))
			}
			return it.Err()
		},
	}

	cmd.Flags().StringSliceVar(&display, "display", nil, "describing parameter order in labels")
	cmd.Flags().BoolVar(&values, "values", false, "also print every parameter's value")

	return cmd
}

// paramsGraphCommand creates the "params graph" subcommand.
func (c *CLI) paramsGraphCommand() *cobra.Command {
	var (
		output   string
		format   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "graph <params.toml>",
		Short: "Render the parameter dependency graph",
		Long: `Render the parameter dependency graph with Graphviz.

Edges point from a parameter to the parameters whose values depend on it.
Describing parameters, those with more than one value somewhere, are
highlighted.`,
		Example: `  labutil params graph params.toml -o params.svg
  labutil params graph params.toml --format dot --detailed`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := loadExperiment(cmd, args[0])
			if err != nil {
				return err
			}

			if format == "" {
				format = "svg"
				if output != "" {
					if ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(output), ".")); ext != "" {
						format = ext
					}
				}
			}

			spinner := newSpinnerWithContext(ctx, cmd.ErrOrStderr(), "Rendering graph...")
			spinner.Start()
			data, err := cfg.RenderGraph(ctx, format, detailed)
			spinner.Stop()
			if err != nil {
				return err
			}

			if output == "" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			logger.Debug("Rendered graph", "format", format, "bytes", len(data))
			newPrinter(cmd).success("Wrote %s", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "svg, png, jpg or dot (default from --output, else svg)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "show depth and value counts on nodes")

	return cmd
}

// loadExperiment reads a parameter file and enumerates it.
func loadExperiment(cmd *cobra.Command, path string) (*experiment.Config, error) {
	logger := loggerFromContext(cmd.Context())

	params, err := experiment.LoadParamsFile(path)
	if err != nil {
		return nil, err
	}
	prog := newProgress(logger)
	cfg, err := experiment.New(cmd.Context(), params)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	prog.done("Enumerated parameters", "params", len(params), "combinations", cfg.Count())
	return cfg, nil
}

func nodeIDs(nodes []*dag.Node) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}

func formatAssignment(order []string, a experiment.Assignment) string {
	parts := make([]string, len(order))
	for i, name := range order {
		parts[i] = name + "=" + table.Format(a[name])
	}
	return strings.Join(parts, " ")
}
