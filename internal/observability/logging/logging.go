package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

type Config struct {
	ServiceName string
	Environment string
	Level       string
	// Output defaults to stdout.
	Output io.Writer
}

func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func NewLogger(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	level := new(slog.LevelVar)
	level.Set(ParseLevel(cfg.Level))

	handler := slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level: level,
	})

	return slog.New(handler).With(
		slog.String("service", cfg.ServiceName),
		slog.String("env", cfg.Environment),
	)
}

// Writer adapts a logger to io.Writer for libraries that only take a
// *log.Logger, such as gorm's logger.
type Writer struct {
	Logger *slog.Logger
	Level  slog.Level
}

func (w Writer) Write(p []byte) (int, error) {
	w.Logger.Log(context.Background(), w.Level, strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

// Printf satisfies gorm's logger.Writer.
func (w Writer) Printf(format string, args ...any) {
	w.Logger.Log(context.Background(), w.Level, fmt.Sprintf(format, args...))
}
