package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	mu     sync.Mutex
	level  = new(slog.LevelVar)
	logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	closer io.Closer
)

// Configure points the logger at path. The TUI owns stdout, so nothing is
// written anywhere until this is called
func Configure(path string, lvl string) error {
	mu.Lock()
	defer mu.Unlock()

	if err := level.UnmarshalText([]byte(strings.ToUpper(strings.TrimSpace(lvl)))); err != nil {
		level.Set(slog.LevelInfo)
	}

	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("log path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("unable to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("unable to open log file: %w", err)
	}
	if closer != nil {
		_ = closer.Close()
	}
	closer = f
	logger = slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}))
	return nil
}

// SetOutput replaces the destination; tests use it to capture entries
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// SetLevel changes the minimum level at runtime
func SetLevel(l slog.Level) {
	level.Set(l)
}

// Close releases the log file
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if closer != nil {
		_ = closer.Close()
		closer = nil
	}
	logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func current() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

// Trace records a debug-level event with structured attributes
func Trace(event string, args ...any) {
	current().Debug(event, args...)
}

// Info records a notable lifecycle event
func Info(msg string, args ...any) {
	current().Info(msg, args...)
}

// Warn records a recoverable problem
func Warn(msg string, args ...any) {
	current().Warn(msg, args...)
}

// Error records err
func Error(err error, args ...any) {
	if err == nil {
		return
	}
	current().Error(err.Error(), args...)
}
