package app

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/dreammattress/storefront/internal/config"
	"github.com/dreammattress/storefront/pkg/logging"
)

// NewLogger creates a logger from the log.* settings and the global flags.
// Log level precedence (highest to lowest):
//  1. --log-level flag
//  2. -v/--verbose flag (debug)
//  3. -q/--quiet flag (warn)
//  4. log.level from config or STOREFRONT_LOG_LEVEL
//  5. Default (info)
func NewLogger(cfg *config.Config, flags *Flags) zerolog.Logger {
	level := determineLogLevel(cfg, flags)

	return logging.NewLoggerFromConfig(&logging.Config{
		Level:     level,
		Format:    cfg.Log.Format,
		Output:    cfg.Log.Output,
		NoColor:   flags.NoColor,
		AddCaller: level == "debug" || level == "trace",
	})
}

func determineLogLevel(cfg *config.Config, flags *Flags) string {
	if flags.LogLevel != "" {
		validated := validateLogLevel(flags.LogLevel)
		if validated != flags.LogLevel {
			fmt.Fprintf(os.Stderr, "Warning: invalid log level %q, using %q\n", flags.LogLevel, validated)
		}
		return validated
	}

	if flags.Verbose && flags.Quiet {
		fmt.Fprintf(os.Stderr, "Warning: both --verbose and --quiet specified, using --quiet\n")
		return "warn"
	}
	if flags.Verbose {
		return "debug"
	}
	if flags.Quiet {
		return "warn"
	}

	if cfg != nil && cfg.Log.Level != "" {
		return validateLogLevel(cfg.Log.Level)
	}
	return "info"
}

// validateLogLevel returns level if it is known and "info" otherwise.
func validateLogLevel(level string) string {
	switch level {
	case "trace", "debug", "info", "warn", "error":
		return level
	}
	return "info"
}
