// Package cmdutil holds helpers shared by storefront commands.
package cmdutil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/dreammattress/storefront/internal/cmd/emoji"
)

// CleanupFunc releases background services after the HTTP server stops.
type CleanupFunc func(ctx context.Context) error

// Serve runs httpServer until ctx is canceled, then shuts it down within
// timeout and calls cleanup. Status lines go to out.
func Serve(ctx context.Context, httpServer *http.Server, name string, timeout time.Duration,
	logger *zerolog.Logger, out io.Writer, cleanup CleanupFunc) error {
	ln, err := net.Listen("tcp", httpServer.Addr)
	if err != nil {
		return fmt.Errorf("%s server failed to listen: %w", name, err)
	}
	return ServeListener(ctx, httpServer, ln, name, timeout, logger, out, cleanup)
}

// ServeListener is Serve on an existing listener.
func ServeListener(ctx context.Context, httpServer *http.Server, ln net.Listener, name string,
	timeout time.Duration, logger *zerolog.Logger, out io.Writer, cleanup CleanupFunc) error {
	serverErr := make(chan error, 1)

	go func() {
		logger.Info().
			Str("addr", ln.Addr().String()).
			Str("service", name).
			Msg("HTTP server listening")

		_, _ = fmt.Fprintf(out, "%s %s server listening on http://%s\n", emoji.Start, name, ln.Addr())
		_, _ = fmt.Fprintln(out, "   Press Ctrl+C to stop")

		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("%s server failed: %w", name, err)
		}
		close(serverErr)
	}()

	select {
	case err, failed := <-serverErr:
		if failed {
			return err
		}
		return nil
	case <-ctx.Done():
		logger.Info().Str("service", name).Msg("Shutdown signal received")
		_, _ = fmt.Fprintf(out, "\n%s Shutting down %s server...\n", emoji.Stop, name)

		// The parent context is already canceled.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s server shutdown failed: %w", name, err)
		}
		if cleanup != nil {
			if err := cleanup(shutdownCtx); err != nil {
				logger.Warn().Err(err).Str("service", name).Msg("Background services shutdown had issues")
			}
		}

		logger.Info().Str("service", name).Msg("Server stopped gracefully")
		_, _ = fmt.Fprintf(out, "%s %s server stopped\n", emoji.Success, name)
		return nil
	}
}
