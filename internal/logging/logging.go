// Package logging builds the zerolog logger used by the degbatch command.
package logging

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Supported output formats.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// New returns a logger writing to w at the given level ("debug", "info",
// "warn", "error", ...). Format "console" renders human-readable lines;
// "json" (or empty) writes one JSON object per event.
//
// Unlike a process-wide setup, New does not touch zerolog's global level, so
// several loggers with different levels can coexist in one process.
func New(level, format string, w io.Writer) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level '%s': %w", level, err)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	out := w
	switch strings.ToLower(format) {
	case FormatConsole:
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	case FormatJSON, "":
	default:
		return zerolog.Nop(), fmt.Errorf("invalid log format '%s': must be '%s' or '%s'", format, FormatJSON, FormatConsole)
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}
