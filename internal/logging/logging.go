// Package logging provides zerolog-based structured logging for Spindle.
//
// Init configures the global logger once at startup; packages then use the
// Debug/Info/Warn/Error event starters. Console output is meant for
// development, JSON for everything else.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logging configuration.
type Config struct {
	Level  string // debug, info, warn, error (default info)
	Format string // json or console (default json)
}

var logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

// Init configures the global logger. Unknown levels fall back to info.
func Init(cfg Config) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var out io.Writer = os.Stderr
	if strings.EqualFold(cfg.Format, "console") {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	}

	logger = zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// Logger returns the configured logger for callers that need sub-loggers.
func Logger() zerolog.Logger {
	return logger
}

// Debug starts a debug-level event.
func Debug() *zerolog.Event {
	return logger.Debug()
}

// Info starts an info-level event.
func Info() *zerolog.Event {
	return logger.Info()
}

// Warn starts a warn-level event.
func Warn() *zerolog.Event {
	return logger.Warn()
}

// Error starts an error-level event.
func Error() *zerolog.Event {
	return logger.Error()
}
