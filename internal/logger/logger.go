package logger

import (
	"log/slog"
	"os"
)

// Logger wraps slog with process-termination helpers.
type Logger struct {
	*slog.Logger
}

// New builds a text logger writing to stdout at the given slog level
// (0 is Info, -4 is Debug).
func New(level int) *Logger {
	opts := &slog.HandlerOptions{Level: slog.Level(level)}
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(os.Stdout, opts)),
	}
}

// Fatal logs at error level and terminates the process.
func (l *Logger) Fatal(msg string, args ...any) {
	l.Logger.Error(msg, args...)
	os.Exit(1)
}
