// Package version provides the version command.
package version

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/dreammattress/storefront/cmd/application"
)

// NewCommand creates the version command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "storefront version %s\n", app.Version())
			_, _ = fmt.Fprintf(out, "commit: %s\n", app.Commit())
			_, _ = fmt.Fprintf(out, "built: %s\n", app.Date())
			_, _ = fmt.Fprintf(out, "built by: %s\n", app.BuiltBy())
			_, _ = fmt.Fprintf(out, "go version: %s\n", runtime.Version())
			_, _ = fmt.Fprintf(out, "platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
