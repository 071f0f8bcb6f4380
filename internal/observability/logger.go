// Package observability builds the process logger.
package observability

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"travelrec/internal/config"
)

// NewLogger creates a zerolog logger for the given configuration. Output
// always goes to stderr: stdout is reserved for result JSON.
func NewLogger(cfg config.LoggingConfig, service string) zerolog.Logger {
	return NewLoggerTo(os.Stderr, cfg, service)
}

// NewLoggerTo is NewLogger with an explicit writer
func NewLoggerTo(out io.Writer, cfg config.LoggingConfig, service string) zerolog.Logger {
	var zl zerolog.Logger
	if cfg.Format == "console" {
		zl = zerolog.New(zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		})
	} else {
		zl = zerolog.New(out)
	}

	return zl.Level(parseLevel(cfg.Level)).
		With().
		Timestamp().
		Str("service", service).
		Logger()
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}
