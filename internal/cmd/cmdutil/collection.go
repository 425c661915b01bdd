package cmdutil

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/diecast"
	"github.com/agentstation/diecast/internal/cmd/application"
	"github.com/agentstation/diecast/internal/cmd/emoji"
	"github.com/agentstation/diecast/internal/cmd/output"
	"github.com/agentstation/diecast/internal/cmd/table"
	"github.com/agentstation/diecast/pkg/grouping"
)

// View is one of the garage's collection views, as a method expression
// such as (*diecast.Garage).Owned.
type View func(g *diecast.Garage, ctx context.Context, req diecast.ListRequest) (*diecast.CollectionResult, error)

// NewListCommand creates a command that renders view. Positional
// arguments form the search query applied within the list.
func NewListCommand(app application.Application, use, short string, view View) *cobra.Command {
	var filters *FilterFlags

	cmd := &cobra.Command{
		Use:   use + " [query]",
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := OutputFormat(app)
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

			res, err := view(garage, cmd.Context(), diecast.ListRequest{
				Query:   strings.Join(args, " "),
				Filters: filters.State(),
				GroupBy: mode,
			})
			if err != nil {
				return err
			}
			return RenderCollection(cmd, format, res)
		},
	}

	filters = AddFilterFlags(cmd, grouping.ByCase)

	return cmd
}

// RenderCollection writes a collection view followed, for tables, by
// its totals on stderr.
func RenderCollection(cmd *cobra.Command, format output.Format, res *diecast.CollectionResult) error {
	if err := output.Render(cmd.OutOrStdout(), format, res, func(wide bool) table.Data {
		return table.GroupsToTableData(res.Groups, wide)
	}); err != nil {
		return err
	}

	if format != output.FormatTable && format != output.FormatWide {
		return nil
	}
	hint := cmd.ErrOrStderr()
	if res.Empty() {
		_, err := fmt.Fprintf(hint, "%s Nothing here yet\n", emoji.Info)
		return err
	}
	_, err := fmt.Fprintf(hint, "%d cars, %d owned in total, %d spares\n", res.Count, res.TotalOwned, res.Duplicates)
	return err
}
