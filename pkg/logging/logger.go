// Package logging provides structured logging for tabfuse using zerolog.
// Output is JSON by default and switches to a human-readable console
// format when stderr is a terminal. One default logger is shared by the
// CLI and the library; a context can carry its own (see context.go).
//
// Example:
//
//	logging.Info().
//	    Str("source", "payroll").
//	    Int("rows_read", 310).
//	    Msg("Source consumed")
//
//	ctx := logging.WithRunID(context.Background(), runID)
//	logging.FromContext(ctx).Debug().Msg("Opening sources")
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// defaultLogger backs the package-level event functions.
var defaultLogger zerolog.Logger

func init() {
	// Honor LOG_* variables before any flag parsing has a chance to.
	defaultLogger = NewLoggerFromConfig(envConfig())
	log.Logger = defaultLogger
}

// Default returns the default global logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault replaces the default logger, keeping zerolog's package
// global in step with it.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}

// New creates a JSON logger writing to w at the current global level.
func New(w io.Writer) zerolog.Logger {
	return zerolog.New(w).
		Level(zerolog.GlobalLevel()).
		With().
		Timestamp().
		Logger()
}

// NewJSON creates a structured JSON logger. A nil writer means stderr.
func NewJSON(w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	return New(w)
}

// With starts a child context on the default logger.
func With() zerolog.Context {
	return defaultLogger.With()
}

// Debug starts a debug level event on the default logger.
func Debug() *zerolog.Event {
	return defaultLogger.Debug()
}

// Info starts an info level event on the default logger.
func Info() *zerolog.Event {
	return defaultLogger.Info()
}

// Warn starts a warn level event on the default logger.
func Warn() *zerolog.Event {
	return defaultLogger.Warn()
}

// Error starts an error level event on the default logger.
func Error() *zerolog.Event {
	return defaultLogger.Error()
}

// Fatal starts a fatal level event on the default logger. The event
// exits the process after logging.
func Fatal() *zerolog.Event {
	return defaultLogger.Fatal()
}

// WithLevel starts an event at a level chosen at runtime.
func WithLevel(level zerolog.Level) *zerolog.Event {
	return defaultLogger.WithLevel(level)
}

// Err starts an error event carrying err, or an info event when err is
// nil.
func Err(err error) *zerolog.Event {
	return defaultLogger.Err(err)
}
