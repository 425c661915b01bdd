package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

// Execute runs the diecast CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "diecast",
		Short:   "Die-cast car collection tracker",
		Version: a.version,
		Long: `Diecast tracks a personal die-cast car collection against a catalog
of yearly cases.

Search the catalog, narrow it with cascading facets, and keep track of
which cars you own, how many spares you hold and which cars you still
want. The collection can be exported, imported and served over HTTP.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})

	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands:",
	})

	// Global flags. Values are applied in setupCommand only when set, so
	// unset flags keep what the environment and config file said.
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default is $HOME/.diecast.yaml)")
	flags.BoolP("verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	flags.BoolP("quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	flags.Bool("no-color", false, "disable colored output")
	flags.StringP("format", "o", "", "output format: table, wide, json, yaml")
	flags.String("log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")
	flags.String("catalog", "", "catalog file or http(s) URL (default is the embedded sample catalog)")
	flags.String("data-dir", "", "collection directory (default is $HOME/.diecast)")
	flags.Bool("old", false, "include cases before the cutoff year in searches")

	rootCmd.SetVersionTemplate("diecast {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()

	if flags.Changed("config") {
		config, err := loadConfig(mustGetString(cmd, "config"))
		if err != nil {
			return err
		}
		a.config = config
	}

	if flags.Changed("verbose") {
		a.config.Verbose = mustGetBool(cmd, "verbose")
	}
	if flags.Changed("quiet") {
		a.config.Quiet = mustGetBool(cmd, "quiet")
	}
	if flags.Changed("no-color") {
		a.config.NoColor = mustGetBool(cmd, "no-color")
	}
	if flags.Changed("format") {
		a.config.Output = mustGetString(cmd, "format")
	}
	if flags.Changed("log-level") {
		a.config.LogLevel = mustGetString(cmd, "log-level")
	}
	if flags.Changed("catalog") {
		a.config.Catalog = mustGetString(cmd, "catalog")
	}
	if flags.Changed("data-dir") {
		a.config.DataDir = mustGetString(cmd, "data-dir")
	}
	if flags.Changed("old") {
		a.config.IncludeOldCases = mustGetBool(cmd, "old")
	}

	// Reinitialize logger with updated config
	logger := NewLogger(a.config)
	a.logger = &logger

	return nil
}

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(a.NewSearchCommand())
	rootCmd.AddCommand(a.NewFacetsCommand())
	rootCmd.AddCommand(a.NewOwnedCommand())
	rootCmd.AddCommand(a.NewWantedCommand())
	rootCmd.AddCommand(a.NewDuplicatesCommand())
	rootCmd.AddCommand(a.NewSeriesCommand())
	rootCmd.AddCommand(a.NewCaseCommand())
	rootCmd.AddCommand(a.NewShowCommand())

	// Management commands
	rootCmd.AddCommand(a.NewExportCommand())
	rootCmd.AddCommand(a.NewImportCommand())
	rootCmd.AddCommand(a.NewServeCommand())

	// Utility commands
	rootCmd.AddCommand(a.NewVersionCommand())
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
