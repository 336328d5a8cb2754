// Package logging centralizes zerolog setup for procview. Browser commands
// log to a file so structured output never corrupts the terminal UI; plain
// commands default to a console writer on stderr.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config controls logger construction.
type Config struct {
	// Level is a zerolog level name; unparseable values fall back to info.
	Level string
	// Format is "console" or "json".
	Format string
	// File, when set, receives all output instead of stderr.
	File string
}

// New builds the application logger. The returned closer owns the log file
// handle, if any, and is safe to call when logging goes to stderr.
func New(cfg Config) (zerolog.Logger, io.Closer, error) {
	lvl, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		lvl = zerolog.InfoLevel
	}

	var out io.Writer = os.Stderr
	var closer io.Closer = nopCloser{}

	if cfg.File != "" {
		f, openErr := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if openErr != nil {
			return zerolog.Nop(), nopCloser{}, fmt.Errorf("opening log file: %w", openErr)
		}
		out = f
		closer = f
	}

	if cfg.Format != "json" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: cfg.File != ""}
	}

	logger := zerolog.New(out).Level(lvl).With().Timestamp().Logger()
	return logger, closer, nil
}

// ComponentLogger tags a logger with the component emitting it.
func ComponentLogger(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}

// WithContext attaches the logger to ctx for retrieval with FromContext.
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

// FromContext returns the logger attached to ctx, or a disabled logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
