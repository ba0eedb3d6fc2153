// Package debug provides debug logging functionality using log/slog
package debug

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

// Format selects the log line encoding.
type Format string

const (
	// Text writes key=value lines.
	Text Format = "text"
	// JSON writes one JSON object per line.
	JSON Format = "json"
)

var (
	// logger is the global debug logger instance
	logger = discard()
	// enabled indicates if debug logging is enabled
	enabled bool
	// mu protects the logger and enabled flag
	mu sync.RWMutex
)

// Init initializes the debug logger on os.Stderr.
// If enable is false, debug logs are discarded.
func Init(enable bool) {
	Configure(enable, os.Stderr, Text)
}

// Configure initializes the debug logger with an explicit writer and format.
func Configure(enable bool, w io.Writer, format Format) {
	mu.Lock()
	defer mu.Unlock()

	enabled = enable
	if !enable {
		logger = discard()
		return
	}

	opts := &slog.HandlerOptions{Level: slog.LevelDebug}
	var handler slog.Handler
	if format == JSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	logger = slog.New(handler)
}

func discard() *slog.Logger {
	// Level above any real level: nothing is ever written.
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// Enabled returns whether debug logging is enabled
func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	Logger().Debug(msg, args...)
}

// Info logs an info message
func Info(msg string, args ...any) {
	Logger().Info(msg, args...)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	Logger().Warn(msg, args...)
}

// Error logs an error message
func Error(msg string, args ...any) {
	Logger().Error(msg, args...)
}

// With returns a logger with the given attributes
func With(args ...any) *slog.Logger {
	return Logger().With(args...)
}

// Logger returns the underlying slog.Logger instance
func Logger() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}
