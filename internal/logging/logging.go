// Package logging builds the process logger.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/phuslu/log"
)

// New returns a logger writing to stderr at the given level.
// Format "json" emits one JSON object per line; anything else uses the
// human-readable console writer.
func New(level, format string) *log.Logger {
	if strings.EqualFold(format, "json") {
		return NewWithWriter(level, os.Stderr)
	}
	return &log.Logger{
		Level: parseLevel(level),
		Writer: &log.ConsoleWriter{
			Writer:         os.Stderr,
			ColorOutput:    log.IsTerminal(os.Stderr.Fd()),
			QuoteString:    true,
			EndWithMessage: true,
		},
	}
}

// NewWithWriter returns a JSON logger writing to w.
func NewWithWriter(level string, w io.Writer) *log.Logger {
	return &log.Logger{
		Level:  parseLevel(level),
		Writer: &log.IOWriter{Writer: w},
	}
}

// Discard returns a logger that drops everything. Used by tests and the CLI.
func Discard() *log.Logger {
	return NewWithWriter("error", io.Discard)
}

func parseLevel(level string) log.Level {
	if level == "" {
		return log.InfoLevel
	}
	return log.ParseLevel(strings.ToLower(level))
}
