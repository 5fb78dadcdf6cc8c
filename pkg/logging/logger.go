// Package logging builds the zerolog loggers used by the storefront and
// carries them through request contexts.
//
// Console output is used when stderr is a terminal, JSON lines otherwise:
//
//	logger := logging.NewLoggerFromConfig(&logging.Config{Level: "debug"})
//	ctx := logging.WithProduct(logging.WithLogger(ctx, &logger), "42")
//	logging.FromContext(ctx).Info().Msg("Product saved")
package logging

import (
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/dreammattress/storefront/pkg/constants"
)

// Config selects level, encoding and destination for a logger.
type Config struct {
	Level string // trace, debug, info, warn, error, off

	// Format is json, console or auto. Auto picks console for terminals.
	Format string

	// Output is stderr, stdout, discard or a file path opened for append.
	Output string

	// TimeFormat applies to console output: kitchen, rfc3339 or a Go layout.
	TimeFormat string

	NoColor   bool
	AddCaller bool
}

// DefaultConfig reads LOG_LEVEL, LOG_FORMAT, DEBUG and NO_COLOR.
func DefaultConfig() *Config {
	cfg := &Config{
		Level:      os.Getenv("LOG_LEVEL"),
		Format:     os.Getenv("LOG_FORMAT"),
		Output:     "stderr",
		TimeFormat: "kitchen",
		NoColor:    os.Getenv("NO_COLOR") != "",
	}
	if cfg.Level == "" {
		cfg.Level = "info"
		if os.Getenv("DEBUG") != "" {
			cfg.Level = "debug"
		}
	}
	if cfg.Format == "" {
		cfg.Format = "auto"
	}
	return cfg
}

var current atomic.Pointer[zerolog.Logger]

func init() {
	l := NewLoggerFromConfig(DefaultConfig())
	current.Store(&l)
}

// Default returns the process-wide logger.
func Default() *zerolog.Logger {
	return current.Load()
}

// SetDefault replaces the process-wide logger, including zerolog's own
// global used by the log package.
func SetDefault(l zerolog.Logger) {
	current.Store(&l)
	log.Logger = l
}

// Shortcuts on the process-wide logger.
func Debug() *zerolog.Event { return Default().Debug() }
func Info() *zerolog.Event  { return Default().Info() }
func Warn() *zerolog.Event  { return Default().Warn() }
func Error() *zerolog.Event { return Default().Error() }

// NewLoggerFromConfig builds a logger. A nil cfg means DefaultConfig.
// The zerolog global level is lowered to match so child loggers are not
// filtered above the requested level.
func NewLoggerFromConfig(cfg *Config) zerolog.Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	level := parseLevel(cfg.Level)
	zerolog.SetGlobalLevel(level)

	ctx := zerolog.New(sink(cfg)).Level(level).With().Timestamp()
	if cfg.AddCaller || level <= zerolog.DebugLevel {
		ctx = ctx.Caller()
	}
	return ctx.Logger()
}

func sink(cfg *Config) io.Writer {
	out := destination(cfg.Output)

	console := false
	switch strings.ToLower(cfg.Format) {
	case "console", "pretty":
		console = true
	case "", "auto":
		if f, ok := out.(*os.File); ok {
			console = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
	}
	if !console {
		return out
	}
	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: timeLayout(cfg.TimeFormat),
		NoColor:    cfg.NoColor,
	}
}

func destination(name string) io.Writer {
	switch strings.ToLower(name) {
	case "", "stderr":
		return os.Stderr
	case "stdout":
		return os.Stdout
	case "discard", "none":
		return io.Discard
	}
	f, err := os.OpenFile(name, os.O_CREATE|os.O_APPEND|os.O_WRONLY, constants.FilePermissions)
	if err != nil {
		return os.Stderr
	}
	return f
}

func parseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "":
		return zerolog.InfoLevel
	case "warning":
		return zerolog.WarnLevel
	case "none", "off":
		return zerolog.Disabled
	}
	l, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.InfoLevel
	}
	return l
}

func timeLayout(s string) string {
	switch strings.ToLower(s) {
	case "", "kitchen":
		return time.Kitchen
	case "rfc3339":
		return time.RFC3339
	case "unix", "epoch":
		return ""
	}
	if strings.Contains(s, "2006") || strings.Contains(s, "15:04") {
		return s
	}
	return time.Kitchen
}
