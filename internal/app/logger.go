package app

import (
	"log/slog"
	"os"
	"strings"

	"ecopickup/internal/logx"
)

// NewLogger returns the JSON slog logger. LOG_LEVEL=debug enables debug output.
func NewLogger() logx.Logger {
	level := slog.LevelInfo
	if strings.EqualFold(strings.TrimSpace(os.Getenv("LOG_LEVEL")), "debug") {
		level = slog.LevelDebug
	}
	base := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	return logx.NewSlogAdapter(base)
}
