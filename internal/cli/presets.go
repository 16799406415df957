package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

// presetsCommand creates the "presets" command, which lists the registered
// presets with their default layer stacks.
func (c *CLI) presetsCommand() *cobra.Command {
	var namesOnly bool

	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List the available plot presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := c.presets()
			if namesOnly {
				for _, p := range presets {
					fmt.Fprintln(cmd.OutOrStdout(), p.Name)
				}
				return nil
			}

			rows := make([][]string, len(presets))
			for i, p := range presets {
				rows[i] = []string{p.Name, strings.Join(p.DefaultLayers, ", "), p.Description}
			}
			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(styleTableBorder).
				Headers("Preset", "Default layers", "Description").
				Rows(rows...).
				StyleFunc(func(row, col int) lipgloss.Style {
					switch {
					case row == -1:
						return styleTableHeader.Padding(0, 1)
					case col == 0:
						return styleTableCell.Foreground(colorCyan)
					default:
						return styleTableCell
					}
				})
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return nil
		},
	}

	cmd.Flags().BoolVar(&namesOnly, "names", false, "print preset names only")

	return cmd
}

// completePresets completes --preset flag values.
func (c *CLI) completePresets(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var out []string
	for _, p := range c.presets() {
		if strings.HasPrefix(p.Name, toComplete) {
			out = append(out, p.Name+"\t"+p.Description)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
