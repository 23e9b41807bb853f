package logger

import (
	"io"
	"log/slog"
	"os"
)

var Log *slog.Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))

// Init installs the process-wide JSON logger. Debug records are kept outside production.
func Init(service, env string) {
	level := slog.LevelDebug
	if env == "production" {
		level = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	Log = slog.New(handler).With("service", service, "env", env)
	slog.SetDefault(Log)
}
