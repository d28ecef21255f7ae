package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New creates a zerolog logger writing JSON to stdout, or a human friendly
// console output when pretty is set. Unknown levels fall back to info.
func New(level string, pretty bool) *zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	var out io.Writer = os.Stdout
	if pretty {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	logger := zerolog.New(out).Level(lvl).With().Timestamp().Logger()

	return &logger
}

// Nop returns a logger that discards everything. Useful in tests.
func Nop() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}
