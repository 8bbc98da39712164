// Package logging builds the slog logger shared by the CLI and the install engine.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options selects where log records go.
type Options struct {
	// File is the rotating log file; empty disables file logging.
	File       string
	MaxSizeMB  int
	MaxBackups int
	// Stderr receives debug-level records as well when Verbose is set.
	Stderr  io.Writer
	Verbose bool
}

// Logger wraps a slog.Logger together with the resources it writes to.
type Logger struct {
	*slog.Logger
	closers []io.Closer
}

// New returns a logger writing info-level records to the log file and, when Verbose
// is set, debug-level records to Stderr as well.
func New(opts Options) *Logger {
	var handlers []slog.Handler
	var closers []io.Closer

	if opts.File != "" {
		_ = os.MkdirAll(filepath.Dir(opts.File), 0o700)
		rotator := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
		}
		closers = append(closers, rotator)
		handlers = append(handlers, slog.NewTextHandler(rotator, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	if opts.Verbose && opts.Stderr != nil {
		handlers = append(handlers, slog.NewTextHandler(opts.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	var handler slog.Handler
	switch len(handlers) {
	case 0:
		handler = slog.DiscardHandler
	case 1:
		handler = handlers[0]
	default:
		handler = fanout(handlers)
	}
	return &Logger{Logger: slog.New(handler), closers: closers}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return &Logger{Logger: slog.New(slog.DiscardHandler)}
}

// Close flushes and closes the log file.
func (l *Logger) Close() error {
	var first error
	for _, c := range l.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	l.closers = nil
	return first
}
