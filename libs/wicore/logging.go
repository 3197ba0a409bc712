package wicore

import (
	"log/slog"
	"os"
	"sync/atomic"
)

// logger writes to stderr; the library may be loaded into a host process
// that owns stdout. Configure swaps it while operations may be logging.
var logger atomic.Pointer[slog.Logger]

func init() {
	logger.Store(newLogger(DefaultConfig()))
}

func newLogger(cfg Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.level()}
	if cfg.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}

// Logger returns the active logger.
func Logger() *slog.Logger {
	return logger.Load()
}

// Info logs an informational message.
func Info(msg string, args ...any) {
	Logger().Info(msg, args...)
}

// Warn logs a warning.
func Warn(msg string, args ...any) {
	Logger().Warn(msg, args...)
}

// Error logs an error message.
func Error(msg string, args ...any) {
	Logger().Error(msg, args...)
}

// Debug logs a debug message.
func Debug(msg string, args ...any) {
	Logger().Debug(msg, args...)
}
