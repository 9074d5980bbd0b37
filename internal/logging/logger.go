// Package logging configures charmbracelet/log loggers and carries them
// through a context.Context.
package logging

import (
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

const prefix = "changelint"

//nolint:gochecknoglobals // fallback for code paths without a context logger
var fallback atomic.Pointer[log.Logger]

// New returns a stderr logger at level ("debug", "info", "warn" or "error").
func New(level string) *log.Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter returns a prefixed logger on w at level.
func NewWithWriter(w io.Writer, level string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix: prefix,
		Level:  ParseLevel(level),
	})
}

// NewInteractive returns an unprefixed info logger for messages addressed
// to the person running a command, such as init's "created" line.
func NewInteractive(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{Level: log.InfoLevel})
}

// ParseLevel maps a level name to a log.Level. Unknown names mean info.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	}
	return log.InfoLevel
}

// Default returns the process-wide fallback logger, creating an info
// logger on stderr the first time.
func Default() *log.Logger {
	if logger := fallback.Load(); logger != nil {
		return logger
	}
	fallback.CompareAndSwap(nil, New("info"))
	return fallback.Load()
}

// SetDefault replaces the fallback logger.
func SetDefault(logger *log.Logger) {
	fallback.Store(logger)
}

// SetLevel changes the fallback logger's level.
func SetLevel(level string) {
	Default().SetLevel(ParseLevel(level))
}
