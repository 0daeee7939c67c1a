package logger

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// New returns a logger at the given level, falling back to info. Console
// output is human readable, anything else gets JSON lines.
func New(level string, out io.Writer, console bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	if console {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}
