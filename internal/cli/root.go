package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/labutil/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// The root's PersistentPreRunE attaches the CLI logger to the command
// context, so subcommands read it back with loggerFromContext. Callers that
// wrap PersistentPreRunE (main does, to apply --verbose) must call through.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "labutil plots experiment results layer by layer",
		Long:         `labutil turns tables of experiment results into figures. A plot file names the data, a stack of layers (Figure, Subplot, Series, ...) and a preset; labutil sorts the rows and draws one figure per distinct value of the outermost layer.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.plotCommand())
	root.AddCommand(c.presetsCommand())
	root.AddCommand(c.tableCommand())
	root.AddCommand(c.paramsCommand())
	root.AddCommand(c.completionCommand())

	return root
}
