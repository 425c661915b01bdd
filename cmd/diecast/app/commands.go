package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/diecast/cmd/diecast/cmd/browse"
	"github.com/agentstation/diecast/cmd/diecast/cmd/duplicates"
	"github.com/agentstation/diecast/cmd/diecast/cmd/export"
	"github.com/agentstation/diecast/cmd/diecast/cmd/facets"
	"github.com/agentstation/diecast/cmd/diecast/cmd/importer"
	"github.com/agentstation/diecast/cmd/diecast/cmd/owned"
	"github.com/agentstation/diecast/cmd/diecast/cmd/search"
	"github.com/agentstation/diecast/cmd/diecast/cmd/serve"
	"github.com/agentstation/diecast/cmd/diecast/cmd/version"
	"github.com/agentstation/diecast/cmd/diecast/cmd/wanted"
)

// NewSearchCommand creates the search command with app dependencies.
func (a *App) NewSearchCommand() *cobra.Command {
	return search.NewCommand(a)
}

// NewFacetsCommand creates the facets command with app dependencies.
func (a *App) NewFacetsCommand() *cobra.Command {
	return facets.NewCommand(a)
}

// NewOwnedCommand creates the owned command with app dependencies.
func (a *App) NewOwnedCommand() *cobra.Command {
	return owned.NewCommand(a)
}

// NewWantedCommand creates the wanted command with app dependencies.
func (a *App) NewWantedCommand() *cobra.Command {
	return wanted.NewCommand(a)
}

// NewDuplicatesCommand creates the duplicates command with app dependencies.
func (a *App) NewDuplicatesCommand() *cobra.Command {
	return duplicates.NewCommand(a)
}

// NewSeriesCommand creates the series browser command.
func (a *App) NewSeriesCommand() *cobra.Command {
	return browse.NewSeriesCommand(a)
}

// NewCaseCommand creates the case browser command.
func (a *App) NewCaseCommand() *cobra.Command {
	return browse.NewCaseCommand(a)
}

// NewShowCommand creates the single car command.
func (a *App) NewShowCommand() *cobra.Command {
	return browse.NewShowCommand(a)
}

// NewExportCommand creates the export command with app dependencies.
func (a *App) NewExportCommand() *cobra.Command {
	return export.NewCommand(a)
}

// NewImportCommand creates the import command with app dependencies.
func (a *App) NewImportCommand() *cobra.Command {
	return importer.NewCommand(a)
}

// NewServeCommand creates the serve command with app dependencies.
func (a *App) NewServeCommand() *cobra.Command {
	return serve.NewCommand(a)
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return version.NewCommand(a)
}
