// Package logging provides structured logging for dotenv-prompt using zerolog.
//
// Logs go to stderr so they never mix with prompts or with the command's
// result on stdout. A terminal gets zerolog's console writer; anything else
// gets one JSON object per line.
//
// Example usage:
//
//	log := logging.New(logging.Config{Level: "debug"})
//	ctx := logging.WithLogger(context.Background(), &log)
//	logging.FromContext(ctx).Debug().Str("path", ".env").Msg("file loaded")
//
// Variable values are never logged, only names, since .env files usually
// hold secrets.
package logging

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// Config holds logger configuration options.
type Config struct {
	// Level is the minimum level to output (trace, debug, info, warn, error, off).
	Level string

	// Format is "console", "json", or "auto" (console when Output is a terminal).
	Format string

	// Output is where log lines are written. Defaults to os.Stderr.
	Output io.Writer

	// NoColor disables color in console format.
	NoColor bool
}

// contextKey is a private type for context keys to avoid collisions.
type contextKey int

const loggerKey contextKey = iota

// nop is returned when no logger was attached to a context.
var nop = zerolog.Nop()

// New creates a logger from cfg.
func New(cfg Config) zerolog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	format := strings.ToLower(cfg.Format)
	if format == "" || format == "auto" {
		format = "json"
		if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			format = "console"
		}
	}

	writer := out
	if format == "console" || format == "pretty" {
		writer = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.Kitchen,
			NoColor:    cfg.NoColor || os.Getenv("NO_COLOR") != "",
		}
	}

	level := ParseLevel(cfg.Level)
	logger := zerolog.New(writer).Level(level).With().Timestamp().Logger()
	if level <= zerolog.DebugLevel {
		logger = logger.With().Caller().Logger()
	}
	return logger
}

// ParseLevel converts a level name to a zerolog level. Unknown names fall
// back to warn, which keeps a normal interactive run quiet.
func ParseLevel(level string) zerolog.Level {
	name := strings.ToLower(strings.TrimSpace(level))
	switch name {
	case "", "warning":
		return zerolog.WarnLevel
	case "off", "none", "disabled":
		return zerolog.Disabled
	}
	l, err := zerolog.ParseLevel(name)
	if err != nil || l == zerolog.NoLevel {
		return zerolog.WarnLevel
	}
	return l
}

// WithLogger attaches logger to ctx.
func WithLogger(ctx context.Context, logger *zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger attached to ctx, or a no-op logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey).(*zerolog.Logger); ok && logger != nil {
			return logger
		}
	}
	return &nop
}
