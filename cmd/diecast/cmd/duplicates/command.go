// Package duplicates provides the spare copies command.
package duplicates

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/diecast"
	"github.com/agentstation/diecast/internal/cmd/application"
	"github.com/agentstation/diecast/internal/cmd/cmdutil"
)

// NewCommand creates the duplicates command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := cmdutil.NewListCommand(app, "duplicates", "List cars owned more than once", (*diecast.Garage).Duplicates)
	cmd.GroupID = "core"
	cmd.Aliases = []string{"dupes"}
	cmd.Long = `Duplicates lists the owned cars held more than once, with the number
of spare copies of each. Totals count only the listed cars.`
	return cmd
}
