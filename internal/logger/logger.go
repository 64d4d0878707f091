package logger

import (
	"fmt"
	"log/slog"
	"os"
)

// Logger is a thin chainable wrapper around slog. Context (package,
// function, file) is attached once and carried on every record, and the
// Err/Error helpers log and return an error in one call so callers can
// write `return log.Err("...", err)`.
type Logger struct {
	base *slog.Logger
}

func New(pkg string) Logger {
	return Logger{
		base: slog.New(slog.NewJSONHandler(os.Stdout, nil)).With("package", pkg),
	}
}

func (l Logger) Function(name string) Logger {
	return Logger{base: l.base.With("function", name)}
}

func (l Logger) File(name string) Logger {
	return Logger{base: l.base.With("file", name)}
}

func (l Logger) With(args ...any) Logger {
	return Logger{base: l.base.With(args...)}
}

func (l Logger) Info(msg string, args ...any) {
	l.base.Info(msg, args...)
}

func (l Logger) Debug(msg string, args ...any) {
	l.base.Debug(msg, args...)
}

func (l Logger) Warn(msg string, args ...any) {
	l.base.Warn(msg, args...)
}

// Error logs msg at error level and returns it as an error.
func (l Logger) Error(msg string, args ...any) error {
	l.base.Error(msg, args...)
	return fmt.Errorf("%s", msg)
}

// Err logs msg with the underlying error and returns the wrapped error.
func (l Logger) Err(msg string, err error, args ...any) error {
	l.base.Error(msg, append(args, "error", err)...)
	return fmt.Errorf("%s: %w", msg, err)
}

// Er logs msg with the underlying error without returning anything. Used
// where the caller already has an error to return or swallows the failure.
func (l Logger) Er(msg string, err error, args ...any) {
	l.base.Error(msg, append(args, "error", err)...)
}

// ErrMsg logs msg at error level and returns it as an error.
func (l Logger) ErrMsg(msg string, args ...any) error {
	l.base.Error(msg, args...)
	return fmt.Errorf("%s", msg)
}

// ErMsg logs msg at error level without returning anything.
func (l Logger) ErMsg(msg string, args ...any) {
	l.base.Error(msg, args...)
}
