package cli

import (
	"os"

	"github.com/rs/zerolog"
)

// newLogger builds a zerolog logger writing diagnostics to stderr. Normal
// match output never goes through it; it exists purely for -v/--verbose
// tracing of pattern compilation and file traversal.
func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true}).
		Level(level).
		With().
		Timestamp().
		Logger()
}
