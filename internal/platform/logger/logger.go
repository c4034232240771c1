package logger

import (
	"log/slog"
	"os"
)

// New returns the root structured logger. Everything downstream receives it
// by injection; nothing logs through the global default.
func New() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}
