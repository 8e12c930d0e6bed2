// Package logging provides the structured logger used across the server.
// Output always goes to stderr: in stdio transport mode stdout carries the
// MCP protocol stream and must stay clean.
package logging

import (
	"log/slog"
	"os"
)

// Logger wraps slog with the small surface the rest of the code needs.
type Logger struct {
	s *slog.Logger
}

// New creates a Logger writing to stderr. Debug mode lowers the level so
// gateway request traces become visible.
func New(debug bool) *Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return &Logger{s: slog.New(handler)}
}

// With returns a Logger with the given attributes attached to every entry.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{s: l.s.With(args...)}
}

// Debug logs a debug message with key/value attributes.
func (l *Logger) Debug(msg string, args ...any) {
	l.s.Debug(msg, args...)
}

// Info logs an informational message with key/value attributes.
func (l *Logger) Info(msg string, args ...any) {
	l.s.Info(msg, args...)
}

// Warn logs a warning with key/value attributes.
func (l *Logger) Warn(msg string, args ...any) {
	l.s.Warn(msg, args...)
}

// Error logs an error with key/value attributes.
func (l *Logger) Error(msg string, args ...any) {
	l.s.Error(msg, args...)
}
