package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

var log *slog.Logger

// Init sets up the process-wide JSON logger. Call once from main.
func Init() {
	log = slog.New(slog.NewJSONHandler(os.Stdout, nil))
}

// New wraps a handler into a logger. Tests use it to capture output.
func New(h slog.Handler) *slog.Logger {
	return slog.New(h)
}

// NewJSONHandler mirrors slog.NewJSONHandler for test setup.
func NewJSONHandler(w io.Writer, opts *slog.HandlerOptions) slog.Handler {
	return slog.NewJSONHandler(w, opts)
}

func get() *slog.Logger {
	if log == nil {
		Init()
	}
	return log
}

func Debug(msg string, args ...any) { get().Debug(msg, args...) }
func Info(msg string, args ...any)  { get().Info(msg, args...) }
func Warn(msg string, args ...any)  { get().Warn(msg, args...) }
func Error(msg string, args ...any) { get().Error(msg, args...) }

// Fatalf logs at error level and exits. Only used during startup.
func Fatalf(format string, v ...any) {
	get().Error(fmt.Sprintf(format, v...))
	os.Exit(1)
}
