// Package browse provides the series, case and single car commands.
package browse

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/diecast/internal/cmd/application"
	"github.com/agentstation/diecast/internal/cmd/cmdutil"
	"github.com/agentstation/diecast/internal/cmd/output"
	"github.com/agentstation/diecast/internal/cmd/table"
	"github.com/agentstation/diecast/pkg/projection"
)

// NewSeriesCommand creates the series browser. With no arguments it
// lists the years, with a year the series of that year, and with a
// year and series the cars of that series.
func NewSeriesCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "series [year] [series]",
		GroupID: "core",
		Short:   "Browse the catalog by year and series",
		Example: `  diecast series
  diecast series 2025
  diecast series 2025 "HW J-Imports"`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := cmdutil.OutputFormat(app)
			if err != nil {
				return err
			}
			garage, err := app.Garage()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			switch len(args) {
			case 0:
				years := garage.Years()
				return output.Render(w, format, years, func(bool) table.Data {
					return table.StringsToTableData("Year", years)
				})
			case 1:
				series, err := garage.Series(args[0])
				if err != nil {
					return err
				}
				return output.Render(w, format, series, func(bool) table.Data {
					return table.StringsToTableData("Series", series)
				})
			default:
				cards, err := garage.SeriesCars(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				return renderCards(cmd, format, cards)
			}
		},
	}
}

// NewCaseCommand creates the case browser.
func NewCaseCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "case <year> <letter>",
		GroupID: "core",
		Short:   "List the cars of one case in catalog order",
		Example: `  diecast case 2025 A`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := cmdutil.OutputFormat(app)
			if err != nil {
				return err
			}
			garage, err := app.Garage()
			if err != nil {
				return err
			}
			cards, err := garage.CaseCars(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return renderCards(cmd, format, cards)
		},
	}
}

// NewShowCommand creates the single car command.
func NewShowCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "show <image>",
		GroupID: "core",
		Short:   "Show one car with its ownership and hunt status",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := cmdutil.OutputFormat(app)
			if err != nil {
				return err
			}
			garage, err := app.Garage()
			if err != nil {
				return err
			}
			card, err := garage.Card(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return output.Render(cmd.OutOrStdout(), format, card, func(bool) table.Data {
				return table.CardsToTableData([]projection.Card{card}, true)
			})
		},
	}
}

func renderCards(cmd *cobra.Command, format output.Format, cards []projection.Card) error {
	return output.Render(cmd.OutOrStdout(), format, cards, func(wide bool) table.Data {
		return table.CardsToTableData(cards, wide)
	})
}
