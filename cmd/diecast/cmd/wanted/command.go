// Package wanted provides commands for managing the wish list.
package wanted

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/diecast"
	"github.com/agentstation/diecast/internal/cmd/application"
	"github.com/agentstation/diecast/internal/cmd/cmdutil"
	"github.com/agentstation/diecast/internal/cmd/emoji"
)

// NewCommand creates the wanted command. Without a subcommand it lists
// the wanted cars.
func NewCommand(app application.Application) *cobra.Command {
	list := cmdutil.NewListCommand(app, "list", "List wanted cars", (*diecast.Garage).Wanted)

	cmd := &cobra.Command{
		Use:     "wanted",
		GroupID: "core",
		Short:   "Manage the wish list",
		Example: `  diecast wanted
  diecast wanted add 2024-sth.png
  diecast wanted remove 2024-sth.png`,
		Args: cobra.NoArgs,
		RunE: list.RunE,
	}
	cmd.Flags().AddFlagSet(list.Flags())

	cmd.AddCommand(list)
	cmd.AddCommand(&cobra.Command{
		Use:   "add <image>",
		Short: "Put a car on the wish list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			garage, err := app.Garage()
			if err != nil {
				return err
			}
			added, err := garage.AddWanted(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !added {
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s is already wanted\n", emoji.Info, args[0])
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s Wanted %s\n", emoji.Success, args[0])
			return err
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:     "remove <image>",
		Aliases: []string{"rm"},
		Short:   "Take a car off the wish list",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			garage, err := app.Garage()
			if err != nil {
				return err
			}
			if err := garage.RemoveWanted(cmd.Context(), args[0]); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s No longer wanted: %s\n", emoji.Success, args[0])
			return err
		},
	})

	return cmd
}
