// Package logging configures slog for a process whose terminal belongs to
// the TUI. Records go to a rotating file or nowhere.
package logging

import (
	"io"
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls logger construction.
type Options struct {
	File  string // empty discards all records
	Debug bool
}

// New builds a JSON logger per opts. The returned closer flushes and closes
// the log file and is safe to call when logging is discarded.
func New(opts Options) (*slog.Logger, io.Closer) {
	if opts.File == "" {
		return slog.New(slog.DiscardHandler), nopCloser{}
	}

	w := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     14, // days
	}

	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})), w
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
