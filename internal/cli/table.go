package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	errs "github.com/matzehuels/labutil/pkg/errors"
	"github.com/matzehuels/labutil/pkg/table"
)

// tableCommand creates the "table" command group for inspecting and
// reordering data tables.
func (c *CLI) tableCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Inspect and sort data tables",
	}

	cmd.AddCommand(c.tableShowCommand())
	cmd.AddCommand(c.tableSortCommand())

	return cmd
}

// tableShowCommand creates the "table show" subcommand.
func (c *CLI) tableShowCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "show <file>",
		Short: "Print the first rows of a .csv or .json table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := table.Load(args[0])
			if err != nil {
				return err
			}
			p := newPrinter(cmd)
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(t, limit))
			if limit > 0 && t.Len() > limit {
				p.detail("%d of %d rows", limit, t.Len())
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", previewRows, "rows to print (0 for all)")

	return cmd
}

// tableSortCommand creates the "table sort" subcommand, which applies the
// same stable multi-column sort the plot engine uses.
func (c *CLI) tableSortCommand() *cobra.Command {
	var (
		columns []string
		reverse []string
		output  string
	)

	cmd := &cobra.Command{
		Use:   "sort <file>",
		Short: "Sort a table by its columns, first column most significant",
		Long: `Sort a table by its columns, first column most significant.

--columns selects and orders the columns before sorting; columns listed in
--reverse sort descending. The result is written as CSV to stdout, or to
--output (.csv or .json).`,
		Example: `  labutil table sort results.csv --columns Offset,X,Y --reverse Y
  labutil table sort results.json -o sorted.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			t, err := table.Load(args[0])
			if err != nil {
				return err
			}
			if len(columns) > 0 {
				if t, err = t.Project(columns); err != nil {
					return err
				}
			}
			rev := make(map[string]bool, len(reverse))
			for _, col := range reverse {
				if !t.Has(col) {
					return errs.Config("reverse: column %q not in table", col)
				}
				rev[col] = true
			}
			t.SortStable(rev)
			logger.Debug("Sorted table", "rows", t.Len(), "columns", strings.Join(t.Columns, ","))

			if output == "" {
				return table.WriteCSV(t, cmd.OutOrStdout())
			}
			if err := table.Save(t, output); err != nil {
				return err
			}
			newPrinter(cmd).success("Wrote %d rows to %s", t.Len(), output)
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&columns, "columns", "c", nil, "columns to keep, in sort order")
	cmd.Flags().StringSliceVarP(&reverse, "reverse", "r", nil, "columns to sort descending")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.csv or .json)")

	return cmd
}

// renderTable draws up to limit rows of t (all rows when limit is 0).
func renderTable(t table.Table, limit int) string {
	n := t.Len()
	if limit > 0 {
		n = min(n, limit)
	}
	rows := make([][]string, n)
	for i := range n {
		cells := make([]string, len(t.Columns))
		for j, v := range t.Rows[i] {
			cells[j] = table.Format(v)
		}
		rows[i] = cells
	}

	return ltable.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleTableBorder).
		Headers(t.Columns...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleTableHeader.Padding(0, 1)
			}
			return styleTableCell
		}).
		Render()
}
