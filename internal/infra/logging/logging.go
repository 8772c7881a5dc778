package logging

import (
	"io"
	"log/slog"
	"os"
)

const serviceName = "computeinfo-api"

// New builds the process logger and installs it as the slog default.
func New(logFormat, logLevel string) *slog.Logger {
	return NewWithWriter(os.Stdout, logFormat, logLevel)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, logFormat, logLevel string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     ParseLevel(logLevel),
		AddSource: logLevel == "debug",
	}

	var handler slog.Handler

	switch logFormat {
	case "text":
		handler = slog.NewTextHandler(w, opts)
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewJSONHandler(w, opts)
	}

	logger := slog.New(handler).With("service", serviceName)

	slog.SetDefault(logger)

	return logger
}

// ParseLevel maps a config level name to a slog level; unknown names mean info.
func ParseLevel(logLevel string) slog.Level {
	switch logLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
