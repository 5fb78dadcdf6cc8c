// Package devapi provides the command that runs a local product API for
// development, backed by SQLite.
package devapi

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dreammattress/storefront/cmd/application"
	"github.com/dreammattress/storefront/internal/cmd/cmdutil"
	"github.com/dreammattress/storefront/internal/cmd/emoji"
	"github.com/dreammattress/storefront/internal/config"
	"github.com/dreammattress/storefront/internal/devapi"
	"github.com/dreammattress/storefront/pkg/constants"
	"github.com/dreammattress/storefront/pkg/errors"
)

// NewCommand creates the devapi command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "devapi",
		GroupID: "dev",
		Short:   "Run a local product API",
		Long: `Run a product API compatible with the storefront client on a local
SQLite database. It serves GET/POST /api/products and GET/PUT/DELETE
/api/products/{id}, and seeds two sample mattresses into an empty
database unless --seed=false.`,
		Example: `  # Serve on :5000 with the default database
  storefront devapi

  # Throwaway in-memory database
  storefront devapi --db :memory:

  # Require a bearer token from clients
  STOREFRONT_API_TOKEN=dev-token storefront devapi`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return Run(cmd.Context(), app, cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.String("host", constants.DefaultHost, "Bind address")
	flags.Int("port", constants.DefaultDevAPIPort, "Server port")
	flags.String("db", config.DefaultDBPath(), "SQLite database path, or :memory:")
	flags.Bool("seed", true, "Seed sample products into an empty database")

	config.MapFlag(flags, "host", "devapi.host")
	config.MapFlag(flags, "port", "devapi.port")
	config.MapFlag(flags, "db", "devapi.db_path")
	config.MapFlag(flags, "seed", "devapi.seed")

	return cmd
}

// Run serves the product API until ctx is canceled.
func Run(ctx context.Context, app application.Application, out io.Writer) error {
	cfg := app.Config()
	logger := app.Logger()

	path := cfg.DevAPI.DBPath
	if path == "" {
		path = devapi.MemoryDSN
	}
	db, err := devapi.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := devapi.Migrate(ctx, db); err != nil {
		return err
	}

	repo := devapi.NewRepo(db)
	if cfg.DevAPI.Seed {
		n, err := repo.Seed(ctx, devapi.SampleProducts())
		if err != nil {
			return errors.WrapResource("seed", "products", "", err)
		}
		if n > 0 {
			logger.Info().Int("count", n).Msg("Seeded sample products")
			_, _ = fmt.Fprintf(out, "%s Seeded %d sample products\n", emoji.Seed, n)
		}
	}

	var opts []devapi.Option
	if cfg.API.Token != "" {
		opts = append(opts, devapi.WithToken(cfg.API.Token))
	}
	srv := devapi.NewServer(repo, logger, opts...)

	logger.Info().
		Str("db", path).
		Bool("auth", cfg.API.Token != "").
		Msg("Starting product API")

	httpServer := &http.Server{
		Addr:         net.JoinHostPort(cfg.DevAPI.Host, strconv.Itoa(cfg.DevAPI.Port)),
		Handler:      srv.Handler(),
		ReadTimeout:  constants.DefaultReadTimeout,
		WriteTimeout: constants.DefaultWriteTimeout,
		IdleTimeout:  constants.DefaultIdleTimeout,
	}
	return cmdutil.Serve(ctx, httpServer, "Product API", constants.ShutdownTimeout, logger, out, nil)
}
