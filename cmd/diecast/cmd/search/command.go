// Package search provides the catalog search command.
package search

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/diecast"
	"github.com/agentstation/diecast/internal/cmd/application"
	"github.com/agentstation/diecast/internal/cmd/cmdutil"
	"github.com/agentstation/diecast/internal/cmd/emoji"
	"github.com/agentstation/diecast/internal/cmd/output"
	"github.com/agentstation/diecast/internal/cmd/table"
	"github.com/agentstation/diecast/pkg/grouping"
)

// NewCommand creates the search command.
func NewCommand(app application.Application) *cobra.Command {
	var filters *cmdutil.FilterFlags

	cmd := &cobra.Command{
		Use:     "search [query]",
		GroupID: "core",
		Short:   "Search the catalog",
		Long: `Search filters the catalog by a free-text query and facet flags.

Query forms:
  twin mill        cars whose name contains the text
  c-2025 a         every car of one case
  c-2025, c-a      every case of a year, or case A of every year
  s-j-imports      cars whose series contains "j-imports"
  th, sth          treasure hunts and super treasure hunts
  c-refresh        reload the catalog instead of searching

Cases released before the cutoff year are hidden unless --old is set.`,
		Example: `  diecast search twin mill
  diecast search c-2025 a -g series
  diecast search s-j-imports --unowned
  diecast search --year 2025 --color Red -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, app, strings.Join(args, " "), filters)
		},
	}

	filters = cmdutil.AddFilterFlags(cmd, grouping.NoFilter)

	return cmd
}

func run(cmd *cobra.Command, app application.Application, q string, filters *cmdutil.FilterFlags) error {
	format, err := cmdutil.OutputFormat(app)
	if err != nil {
		return err
	}
	mode, err := filters.Mode()
	if err != nil {
		return err
	}
	garage, err := app.Garage()
	if err != nil {
		return err
	}

	res, err := garage.Search(cmd.Context(), diecast.SearchRequest{
		Query:           q,
		Filters:         filters.State(),
		IncludeOldCases: app.IncludeOldCases(),
		GroupBy:         mode,
	})
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if res.Refreshed {
		if format == output.FormatJSON || format == output.FormatYAML {
			return output.NewFormatter(format).Format(w, res)
		}
		_, err := fmt.Fprintf(w, "%s Catalog reloaded\n", emoji.Success)
		return err
	}

	if err := output.Render(w, format, res, func(wide bool) table.Data {
		return table.GroupsToTableData(res.Groups, wide)
	}); err != nil {
		return err
	}

	// hints go to stderr so piped output stays clean
	if format == output.FormatTable || format == output.FormatWide {
		hint := cmd.ErrOrStderr()
		if res.Empty() {
			fmt.Fprintf(hint, "%s No cars found\n", emoji.Info)
			if len(res.Suggestions) > 0 {
				fmt.Fprintf(hint, "Did you mean: %s?\n", strings.Join(res.Suggestions, ", "))
			}
		} else {
			fmt.Fprintf(hint, "%d cars\n", res.Count)
		}
	}
	return nil
}
