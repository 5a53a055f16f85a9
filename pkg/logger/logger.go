package logger

import (
	"io"
	"log/slog"
	"os"
)

var Log = slog.Default()

func Init(production bool) {
	level := slog.LevelDebug
	if production {
		level = slog.LevelInfo
	}
	Log = New(os.Stdout, level)
	slog.SetDefault(Log)
}

// New builds the JSON logger used across the service, writing to w.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}
