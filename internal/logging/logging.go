package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/wsgen-labs/wsgen/internal/branding"
)

// Options controls logger construction.
type Options struct {
	// Level is a zerolog level name; empty or unknown falls back to info.
	Level string
	// Out defaults to os.Stderr.
	Out io.Writer
	// NoColor forces plain output even on a terminal.
	NoColor bool
}

// Init builds the console logger, installs it as the global zerolog logger
// and returns it. WSGEN_LOG_LEVEL overrides opts.Level; NO_COLOR and
// WSGEN_LOG_NOCOLOR disable color.
func Init(opts Options) zerolog.Logger {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	level := opts.Level
	if env := os.Getenv(branding.EnvVar("log_level")); env != "" {
		level = env
	}

	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.Kitchen,
		NoColor:    opts.NoColor || colorDisabled(out),
	}
	logger := zerolog.New(output).
		Level(ParseLevel(level)).
		With().Timestamp().Str("app", branding.CLIName()).
		Logger()
	log.Logger = logger
	return logger
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(name string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

func colorDisabled(out io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" || os.Getenv(branding.EnvVar("log_nocolor")) != "" {
		return true
	}
	f, ok := out.(*os.File)
	if !ok {
		return true
	}
	return !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
}

// Nop returns a logger that discards everything, for tests and library callers.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
