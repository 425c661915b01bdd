// Package export provides the collection export command.
package export

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/diecast"
	"github.com/agentstation/diecast/internal/cmd/application"
	"github.com/agentstation/diecast/internal/cmd/constants"
	report "github.com/agentstation/diecast/internal/export"
	"github.com/agentstation/diecast/pkg/collection"
	pkgconstants "github.com/agentstation/diecast/pkg/constants"
	"github.com/agentstation/diecast/pkg/errors"
	"github.com/agentstation/diecast/pkg/grouping"
)

// NewCommand creates the export command.
func NewCommand(app application.Application) *cobra.Command {
	var (
		file   string
		wanted bool
	)

	cmd := &cobra.Command{
		Use:     "export",
		GroupID: "management",
		Short:   "Export the collection",
		Long: `Export writes the owned and wanted lists as a JSON or YAML document
that 'diecast import' reads back, or as a markdown report of the owned
cars grouped by case.`,
		Example: `  diecast export > collection.json
  diecast export -o yaml -f collection.yaml
  diecast export -o markdown --wanted`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := exportFormat(app.OutputFormat())
			if err != nil {
				return err
			}
			garage, err := app.Garage()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if file != "" {
				f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, pkgconstants.FilePermissions)
				if err != nil {
					return errors.WrapIO("create", file, err)
				}
				defer f.Close()
				w = f
			}

			if format == constants.FormatMarkdown {
				return writeReport(cmd, garage, w, wanted)
			}

			exp, err := garage.Export(cmd.Context())
			if err != nil {
				return err
			}
			if err := collection.WriteExport(w, exp, format); err != nil {
				return err
			}
			if file != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d owned and %d wanted cars to %s\n",
					len(exp.OwnedCars), len(exp.WantedCars), file)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Write to a file instead of stdout")
	cmd.Flags().BoolVar(&wanted, "wanted", false, "Report the wanted list instead of the owned cars (markdown only)")

	return cmd
}

func writeReport(cmd *cobra.Command, garage *diecast.Garage, w io.Writer, wanted bool) error {
	view, title := garage.Owned, "owned collection"
	if wanted {
		view, title = garage.Wanted, "wanted cars"
	}
	res, err := view(cmd.Context(), diecast.ListRequest{GroupBy: grouping.ByCase})
	if err != nil {
		return err
	}
	return report.WriteMarkdown(w, title, res)
}

// exportFormat maps the output format onto an export format. Table
// formats fall back to JSON.
func exportFormat(format string) (string, error) {
	switch strings.ToLower(format) {
	case "", constants.FormatTable, constants.FormatWide, constants.FormatJSON:
		return constants.FormatJSON, nil
	case constants.FormatYAML, "yml":
		return constants.FormatYAML, nil
	case constants.FormatMarkdown, "md":
		return constants.FormatMarkdown, nil
	default:
		return "", errors.NewValidationError("format", format, "export supports json, yaml and markdown")
	}
}
