package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/bookshelf/pkg/constants"
)

// Config selects how a logger is built.
//
// Format is "json", "console" or "auto"; auto picks console output when the
// destination is a terminal. Output is "stderr", "stdout", "discard" or a
// file path that log lines are appended to.
type Config struct {
	Level     string
	Format    string
	Output    string
	NoColor   bool
	AddCaller bool
}

// Build returns a timestamped logger for cfg and makes its level the global
// zerolog level.
func Build(cfg Config) zerolog.Logger {
	level := ParseLevel(cfg.Level)
	zerolog.SetGlobalLevel(level)

	lc := zerolog.New(render(destination(cfg.Output), cfg)).Level(level).With().Timestamp()
	if cfg.AddCaller || level <= zerolog.DebugLevel {
		lc = lc.Caller()
	}
	return lc.Logger()
}

// ParseLevel maps a level name to a zerolog level. Unknown or empty names
// yield warn so the menu output is not interleaved with chatter.
func ParseLevel(name string) zerolog.Level {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "":
		return zerolog.WarnLevel
	case "warning":
		return zerolog.WarnLevel
	case "off", "none":
		return zerolog.Disabled
	}
	level, err := zerolog.ParseLevel(name)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.WarnLevel
	}
	return level
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

func render(w io.Writer, cfg Config) io.Writer {
	switch strings.ToLower(cfg.Format) {
	case "json":
		return w
	case "console", "pretty":
	default:
		f, ok := w.(*os.File)
		if !ok || !isTerminal(f) {
			return w
		}
	}
	return zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: cfg.NoColor}
}
