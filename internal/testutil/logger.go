package testutil

import (
	"io"
	"log/slog"

	"github.com/dkarpov/account-service/internal/logger"
)

// MakeNoopLogger returns a logger that discards all output.
func MakeNoopLogger() *logger.Logger {
	return &logger.Logger{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}
