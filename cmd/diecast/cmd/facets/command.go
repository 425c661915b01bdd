// Package facets provides the facet options command.
package facets

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/diecast"
	"github.com/agentstation/diecast/internal/cmd/application"
	"github.com/agentstation/diecast/internal/cmd/cmdutil"
	"github.com/agentstation/diecast/internal/cmd/output"
	"github.com/agentstation/diecast/internal/cmd/table"
	"github.com/agentstation/diecast/pkg/facets"
	"github.com/agentstation/diecast/pkg/grouping"
)

// NewCommand creates the facets command.
func NewCommand(app application.Application) *cobra.Command {
	var filters *cmdutil.FilterFlags

	cmd := &cobra.Command{
		Use:     "facets <dimension> [query]",
		GroupID: "core",
		Short:   "List the selectable values of a facet",
		Long: `Facets lists the values a facet offers under the current query and
filters. Dimensions: year, caseLetter, series, hw_number, color.

Series, HW number and color options narrow with the other active
filters; year and case letter always offer every value.`,
		Example: `  diecast facets series --year 2025
  diecast facets color twin mill`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dim, err := facets.ParseDimension(args[0])
			if err != nil {
				return err
			}
			format, err := cmdutil.OutputFormat(app)
			if err != nil {
				return err
			}
			garage, err := app.Garage()
			if err != nil {
				return err
			}

			values, err := garage.Facets(cmd.Context(), diecast.SearchRequest{
				Query:           strings.Join(args[1:], " "),
				Filters:         filters.State(),
				IncludeOldCases: app.IncludeOldCases(),
			}, dim)
			if err != nil {
				return err
			}

			return output.Render(cmd.OutOrStdout(), format, values, func(bool) table.Data {
				return table.StringsToTableData(string(dim), values)
			})
		},
	}

	filters = cmdutil.AddFilterFlags(cmd, grouping.NoFilter)

	return cmd
}
