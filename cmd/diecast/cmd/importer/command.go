// Package importer provides the collection import command.
package importer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/diecast/internal/cmd/application"
	"github.com/agentstation/diecast/internal/cmd/emoji"
	"github.com/agentstation/diecast/pkg/collection"
	"github.com/agentstation/diecast/pkg/constants"
	"github.com/agentstation/diecast/pkg/errors"
)

// NewCommand creates the import command.
func NewCommand(app application.Application) *cobra.Command {
	var (
		merge  bool
		format string
	)

	cmd := &cobra.Command{
		Use:     "import <file|->",
		GroupID: "management",
		Short:   "Import a collection export",
		Long: `Import reads a document written by 'diecast export'. By default the
stored owned and wanted lists are replaced; with --merge stored entries
are kept and incoming entries win on matching cars.

The format follows the file extension (.yaml, .yml) unless --input-format
is given. Use - to read from stdin.`,
		Example: `  diecast import collection.json
  diecast import --merge collection.yaml
  cat collection.json | diecast import -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := read(cmd, args[0])
			if err != nil {
				return err
			}
			if format == "" {
				format = formatFromPath(args[0])
			}
			exp, err := collection.ParseExport(data, format)
			if err != nil {
				return err
			}

			garage, err := app.Garage()
			if err != nil {
				return err
			}
			mode := collection.ImportReplace
			if merge {
				mode = collection.ImportMerge
			}
			res, err := garage.Import(cmd.Context(), exp, mode)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s Imported %d owned and %d wanted cars (%s)\n",
				emoji.Success, res.Owned, res.Wanted, mode)
			if err == nil && res.Skipped > 0 {
				_, err = fmt.Fprintf(cmd.ErrOrStderr(), "%s Skipped %d malformed entries\n", emoji.Warning, res.Skipped)
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&merge, "merge", false, "Merge into the stored collection instead of replacing it")
	cmd.Flags().StringVar(&format, "input-format", "", "Input format: json or yaml")

	return cmd
}

func read(cmd *cobra.Command, path string) ([]byte, error) {
	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.WrapIO("open", path, err)
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(io.LimitReader(r, constants.MaxImportBytes+1))
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	if len(data) > constants.MaxImportBytes {
		return nil, errors.NewValidationError("file", path, "import is too large")
	}
	return data, nil
}

func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "json"
	}
}
