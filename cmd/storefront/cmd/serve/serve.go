// Package serve provides the command that runs the storefront web server.
package serve

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dreammattress/storefront/cmd/application"
	"github.com/dreammattress/storefront/internal/cmd/cmdutil"
	"github.com/dreammattress/storefront/internal/config"
	"github.com/dreammattress/storefront/internal/server"
	"github.com/dreammattress/storefront/pkg/constants"
)

// NewCommand creates the serve command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"server"},
		GroupID: "core",
		Short:   "Start the storefront and admin panel",
		Long: `Start the DreamMattress storefront web server.

The server loads the product list from the product API at startup and
serves the public pages, the password-gated admin panel under /admin,
and live catalog updates over SSE (/events/stream) and WebSocket
(/events/ws). If the product API is unreachable the storefront still
starts with an empty catalog; /ready reports it until an admin login
loads the products.`,
		Example: `  # Start on the default port against a local product API
  storefront serve

  # Point at another product API and change the admin password
  storefront serve --api-url http://products.internal:5000 --admin-password s3cret

  # Listen on all interfaces
  storefront serve --host 0.0.0.0 --port 3000`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return Run(cmd.Context(), app, cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.String("host", constants.DefaultHost, "Bind address")
	flags.Int("port", constants.DefaultPort, "Server port")
	flags.String("api-url", constants.DefaultAPIBaseURL, "Product API base URL")
	flags.Duration("api-timeout", constants.DefaultAPITimeout, "Product API request timeout (0 for none)")
	flags.String("admin-password", "", "Admin panel password")
	flags.String("whatsapp", constants.DefaultWhatsAppNumber, "WhatsApp number for product requests")
	flags.Duration("read-timeout", constants.DefaultReadTimeout, "HTTP read timeout")
	flags.Duration("write-timeout", constants.DefaultWriteTimeout, "HTTP write timeout")
	flags.Duration("idle-timeout", constants.DefaultIdleTimeout, "HTTP idle timeout")

	config.MapFlag(flags, "host", "server.host")
	config.MapFlag(flags, "port", "server.port")
	config.MapFlag(flags, "api-url", "api.base_url")
	config.MapFlag(flags, "api-timeout", "api.timeout")
	config.MapFlag(flags, "admin-password", "admin.password")
	config.MapFlag(flags, "whatsapp", "site.whatsapp_number")
	config.MapFlag(flags, "read-timeout", "server.read_timeout")
	config.MapFlag(flags, "write-timeout", "server.write_timeout")
	config.MapFlag(flags, "idle-timeout", "server.idle_timeout")

	return cmd
}

// Run starts the storefront and blocks until ctx is canceled.
func Run(ctx context.Context, app application.Application, out io.Writer) error {
	cfg := server.ConfigFrom(app.Config())
	logger := app.Logger()

	logger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("api", app.Config().API.BaseURL).
		Msg("Starting storefront")

	srv, err := server.New(app, cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	srv.Start()

	// A failed initial load is logged by the server and is not fatal.
	_ = srv.LoadCatalog(ctx)

	return cmdutil.Serve(ctx, srv.HTTPServer(), "Storefront", constants.ShutdownTimeout,
		logger, out, srv.Shutdown)
}
