// Package logging builds the zerolog logger shared by the CLI and the
// orchestrators.
package logging

import (
	"io"
	"strings"

	"github.com/rs/xid"
	"github.com/rs/zerolog"

	"github.com/KirkDiggler/rpg-items/internal/errors"
)

// Config controls logger construction
type Config struct {
	// Level is a zerolog level name; empty means info
	Level string
	// Pretty switches to the human readable console writer
	Pretty bool
	// Output receives log lines
	Output io.Writer
}

// New creates a timestamped logger writing to cfg.Output
func New(cfg Config) (zerolog.Logger, error) {
	if cfg.Output == nil {
		return zerolog.Nop(), errors.InvalidArgument("log output is required")
	}

	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), err
	}

	out := cfg.Output
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: cfg.Output, NoColor: true}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}

// ParseLevel maps a level name to a zerolog level
func ParseLevel(name string) (zerolog.Level, error) {
	if strings.TrimSpace(name) == "" {
		return zerolog.InfoLevel, nil
	}

	level, err := zerolog.ParseLevel(strings.ToLower(name))
	if err != nil {
		return zerolog.NoLevel, errors.WrapWithCodef(err, errors.CodeInvalidArgument, "invalid log level %q", name)
	}
	return level, nil
}

// WithRunID tags every line of logger with a fresh run id so the lines of one
// invocation can be grouped
func WithRunID(logger zerolog.Logger) (zerolog.Logger, xid.ID) {
	id := xid.New()
	return logger.With().Str("run_id", id.String()).Logger(), id
}
