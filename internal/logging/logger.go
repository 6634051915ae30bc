// Package logging configures the charmbracelet/log loggers nomdump writes
// diagnostics with, and carries them through a context.Context.
package logging

import (
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

// levels maps accepted --debug/config level names. Unknown names mean info.
//
//nolint:gochecknoglobals // read-only lookup table
var levels = map[string]log.Level{
	"debug":   log.DebugLevel,
	"info":    log.InfoLevel,
	"warn":    log.WarnLevel,
	"warning": log.WarnLevel,
	"error":   log.ErrorLevel,
}

//nolint:gochecknoglobals // process-wide default logger
var current atomic.Pointer[log.Logger]

// ParseLevel resolves a level name case-insensitively, falling back to info.
func ParseLevel(name string) log.Level {
	if level, ok := levels[strings.ToLower(strings.TrimSpace(name))]; ok {
		return level
	}
	return log.InfoLevel
}

// New returns a stderr logger at the named level, without timestamps.
func New(level string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{Level: ParseLevel(level)})
}

// NewInteractive returns an info-level stdout logger for command output
// meant for the user rather than for diagnostics.
func NewInteractive() *log.Logger {
	return log.NewWithOptions(os.Stdout, log.Options{Level: log.InfoLevel})
}

// Discard returns a logger that drops every record.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

// Default returns the process-wide logger, creating an info-level one on
// first use.
func Default() *log.Logger {
	if logger := current.Load(); logger != nil {
		return logger
	}
	current.CompareAndSwap(nil, New("info"))
	return current.Load()
}

// SetDefault replaces the process-wide logger.
func SetDefault(logger *log.Logger) {
	current.Store(logger)
}

// SetLevel changes the level of the process-wide logger.
func SetLevel(level string) {
	Default().SetLevel(ParseLevel(level))
}
