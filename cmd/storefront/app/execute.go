package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/dreammattress/storefront/internal/config"
)

// Execute runs the storefront CLI with the given arguments.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "storefront",
		Short:   "DreamMattress storefront and admin panel",
		Version: a.build.Version,
		Long: `Storefront serves the DreamMattress product pages and the password-gated
admin panel. Product records live behind a remote HTTP product API; the
devapi command runs a local one backed by SQLite for development.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(
		&cobra.Group{ID: "core", Title: "Core Commands:"},
		&cobra.Group{ID: "dev", Title: "Development Commands:"},
	)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.flags.ConfigFile, "config", "", "config file (default is ./.storefront.yaml or $HOME/.storefront.yaml)")
	flags.BoolVarP(&a.flags.Verbose, "verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	flags.BoolVarP(&a.flags.Quiet, "quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	flags.BoolVar(&a.flags.NoColor, "no-color", false, "disable colored output")
	flags.StringVarP(&a.flags.Format, "format", "o", "", "output format: table, json, yaml, wide")
	flags.StringVar(&a.flags.LogLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")

	rootCmd.SetVersionTemplate("storefront {{.Version}}\n")

	a.registerCommands(rootCmd)
	return rootCmd
}

// setupCommand binds the command's config flags, reloads configuration and
// rebuilds the logger before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	if err := config.BindFlags(a.viper, cmd.Flags()); err != nil {
		return err
	}
	return a.reload(a.flags.ConfigFile)
}

// ExitOnError prints err and exits with status 1.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}
