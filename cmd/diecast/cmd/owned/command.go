// Package owned provides commands for managing owned cars.
package owned

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/agentstation/diecast"
	"github.com/agentstation/diecast/internal/cmd/application"
	"github.com/agentstation/diecast/internal/cmd/cmdutil"
	"github.com/agentstation/diecast/internal/cmd/emoji"
	"github.com/agentstation/diecast/pkg/errors"
)

// NewCommand creates the owned command. Without a subcommand it lists
// the owned cars.
func NewCommand(app application.Application) *cobra.Command {
	list := cmdutil.NewListCommand(app, "list", "List owned cars", (*diecast.Garage).Owned)

	cmd := &cobra.Command{
		Use:     "owned",
		GroupID: "core",
		Short:   "Manage owned cars",
		Long: `Owned manages the cars in your collection. Cars are identified by
their image key, as shown by 'diecast search -o wide'.

Decrementing a car held once, or setting its quantity to 0, removes it
from the collection.`,
		Example: `  diecast owned
  diecast owned add 2025-twin-mill.png
  diecast owned inc 2025-twin-mill.png
  diecast owned set 2025-twin-mill.png 3
  diecast owned remove 2025-twin-mill.png`,
		Args: cobra.NoArgs,
		RunE: list.RunE,
	}
	// the bare command accepts the list flags too
	cmd.Flags().AddFlagSet(list.Flags())

	cmd.AddCommand(list)
	cmd.AddCommand(newAddCommand(app))
	cmd.AddCommand(newRemoveCommand(app))
	cmd.AddCommand(newToggleCommand(app))
	cmd.AddCommand(newQuantityCommand(app, "inc", "Add one copy of a car", (*diecast.Garage).Increment))
	cmd.AddCommand(newQuantityCommand(app, "dec", "Remove one copy of a car", (*diecast.Garage).Decrement))
	cmd.AddCommand(newSetCommand(app))

	return cmd
}

func newAddCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "add <image>",
		Short: "Mark a car as owned",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			garage, err := app.Garage()
			if err != nil {
				return err
			}
			entry, err := garage.MarkOwned(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s Owned %s (%s %s), quantity %d\n",
				emoji.Success, entry.Car.Name, entry.Year, entry.CaseLetter, entry.Quantity)
			return err
		},
	}
}

func newRemoveCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <image>",
		Aliases: []string{"rm"},
		Short:   "Remove a car from the collection",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			garage, err := app.Garage()
			if err != nil {
				return err
			}
			if err := garage.Unmark(cmd.Context(), args[0]); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s Removed %s\n", emoji.Success, args[0])
			return err
		},
	}
}

func newToggleCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <image>",
		Short: "Flip a car between owned and not owned",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			garage, err := app.Garage()
			if err != nil {
				return err
			}
			owned, err := garage.ToggleOwned(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			state := "not owned"
			if owned {
				state = "owned"
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s is now %s\n", emoji.Success, args[0], state)
			return err
		},
	}
}

type quantityFunc func(g *diecast.Garage, ctx context.Context, image string) (int, error)

func newQuantityCommand(app application.Application, use, short string, fn quantityFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <image>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			garage, err := app.Garage()
			if err != nil {
				return err
			}
			q, err := fn(garage, cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printQuantity(cmd, args[0], q)
		},
	}
}

func newSetCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "set <image> <quantity>",
		Short: "Set how many copies of a car you own",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return errors.NewValidationError("quantity", args[1], "must be a whole number")
			}
			garage, err := app.Garage()
			if err != nil {
				return err
			}
			q, err := garage.SetQuantity(cmd.Context(), args[0], n)
			if err != nil {
				return err
			}
			return printQuantity(cmd, args[0], q)
		},
	}
}

func printQuantity(cmd *cobra.Command, image string, q int) error {
	if q == 0 {
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s Removed %s\n", emoji.Success, image)
		return err
	}
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s quantity %d\n", emoji.Success, image, q)
	return err
}
