// Package logging provides structured logging for fbohub on top of zerolog.
// Output is JSON by default and switches to a human-readable console format
// when stderr is a terminal. Operation-scoped loggers travel through a
// context.Context, so a sync carries its location code on every entry it
// writes:
//
//	ctx = logging.WithLocation(ctx, "KSFO")
//	logging.Ctx(ctx).Debug().Int("merged", 2).Msg("Sync completed")
//
// The package-level helpers log through a process-wide default logger, which
// Configure rebuilds from a Config.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// defaultLogger backs the package-level helpers. It starts with terminal
// auto-detection and is replaced by Configure or SetDefault.
var defaultLogger zerolog.Logger

func init() {
	level := levelFromEnv()
	zerolog.SetGlobalLevel(level)

	var w io.Writer = os.Stderr
	if stderrIsTerminal() && os.Getenv("LOG_FORMAT") != "json" {
		w = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
			NoColor:    os.Getenv("NO_COLOR") != "",
		}
	}

	logger := zerolog.New(w).Level(level).With().Timestamp().Logger()
	if level <= zerolog.DebugLevel {
		logger = logger.With().Caller().Logger()
	}
	defaultLogger = logger
}

// Default returns the process-wide logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault replaces the process-wide logger. zerolog's own global logger
// is kept in step so code logging through it lands in the same place.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}

// New returns a JSON logger writing to w at the global level.
func New(w io.Writer) zerolog.Logger {
	return zerolog.New(w).
		Level(zerolog.GlobalLevel()).
		With().
		Timestamp().
		Logger()
}

// Debug starts a debug-level event on the default logger.
func Debug() *zerolog.Event {
	return defaultLogger.Debug()
}

// Info starts an info-level event on the default logger.
func Info() *zerolog.Event {
	return defaultLogger.Info()
}

// Warn starts a warn-level event on the default logger.
func Warn() *zerolog.Event {
	return defaultLogger.Warn()
}

// Error starts an error-level event on the default logger.
func Error() *zerolog.Event {
	return defaultLogger.Error()
}

// Fatal starts a fatal-level event on the default logger. The process exits
// once the event's Msg is written.
func Fatal() *zerolog.Event {
	return defaultLogger.Fatal()
}

// Err starts an error-level event carrying err, or an info-level event when
// err is nil.
func Err(err error) *zerolog.Event {
	return defaultLogger.Err(err)
}

func stderrIsTerminal() bool {
	info, err := os.Stderr.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

// levelFromEnv resolves the startup level before any configuration runs.
// LOG_LEVEL wins, DEBUG=1 is a shorthand, and info is the fallback.
func levelFromEnv() zerolog.Level {
	if s := os.Getenv("LOG_LEVEL"); s != "" {
		if level, err := zerolog.ParseLevel(s); err == nil {
			return level
		}
	}
	if os.Getenv("DEBUG") != "" {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}
