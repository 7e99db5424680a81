package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/propilot/fbohub/pkg/constants"
)

// Config controls how the default logger is built.
type Config struct {
	// Level names the minimum level to emit: trace, debug, info, warn,
	// error, fatal, or disabled.
	Level string

	// Format picks the encoding: json, console, or auto, which selects
	// console only when writing to a terminal.
	Format string

	// Output is stderr, stdout, discard, or a file path opened for append.
	Output string

	// TimeFormat names the console timestamp layout: kitchen, rfc3339,
	// rfc3339nano, stamp, or a Go reference layout.
	TimeFormat string

	// NoColor disables ANSI colors in console output.
	NoColor bool

	// AddCaller includes file:line on each entry. Debug level implies it.
	AddCaller bool
}

// DefaultConfig returns the configuration the CLI starts from.
func DefaultConfig() *Config {
	return &Config{
		Level:      "info",
		Format:     "auto",
		Output:     "stderr",
		TimeFormat: "kitchen",
		NoColor:    os.Getenv("NO_COLOR") != "",
	}
}

// Configure rebuilds the default logger from cfg. A nil cfg means defaults.
func Configure(cfg *Config) {
	SetDefault(cfg.Build())
}

// Build constructs a logger from the configuration without installing it as
// the default. The global level is updated as a side effect so child loggers
// created through New inherit it.
func (c *Config) Build() zerolog.Logger {
	cfg := c
	if cfg == nil {
		cfg = DefaultConfig()
	}

	level := parseLevel(cfg.Level)
	zerolog.SetGlobalLevel(level)

	logger := zerolog.New(cfg.writer()).
		Level(level).
		With().
		Timestamp().
		Logger()
	if cfg.AddCaller || level <= zerolog.DebugLevel {
		logger = logger.With().Caller().Logger()
	}
	return logger
}

// destination resolves Output to a writer. An unopenable file path falls
// back to stderr rather than failing logger construction.
func (c *Config) destination() io.Writer {
	switch strings.ToLower(c.Output) {
	case "", "stderr":
		return os.Stderr
	case "stdout":
		return os.Stdout
	case "discard", "none":
		return io.Discard
	default:
		f, err := os.OpenFile(c.Output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, constants.FilePermissions)
		if err != nil {
			return os.Stderr
		}
		return f
	}
}

// writer wraps the destination in a console writer when the format calls
// for one.
func (c *Config) writer() io.Writer {
	out := c.destination()

	format := strings.ToLower(c.Format)
	if format == "" || format == "auto" {
		format = "json"
		if f, ok := out.(*os.File); ok && f == os.Stderr && stderrIsTerminal() {
			format = "console"
		}
	}

	switch format {
	case "console", "pretty":
		return zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: timeLayout(c.TimeFormat),
			NoColor:    c.NoColor,
		}
	default:
		return out
	}
}

// parseLevel maps a level name to a zerolog level, tolerating the common
// aliases. Unknown names fall back to info.
func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "", "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "disabled", "none", "off":
		return zerolog.Disabled
	default:
		if level, err := zerolog.ParseLevel(strings.ToLower(s)); err == nil {
			return level
		}
		return zerolog.InfoLevel
	}
}

// timeLayout maps a layout name to a Go time layout. Strings that already
// look like a reference layout pass through unchanged.
func timeLayout(name string) string {
	switch strings.ToLower(name) {
	case "", "kitchen":
		return time.Kitchen
	case "rfc3339":
		return time.RFC3339
	case "rfc3339nano":
		return time.RFC3339Nano
	case "stamp":
		return time.Stamp
	default:
		if strings.Contains(name, "2006") || strings.Contains(name, "15:04") {
			return name
		}
		return time.Kitchen
	}
}
