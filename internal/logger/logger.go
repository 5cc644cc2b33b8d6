// Package logger provides structured logging to a file. Stdout belongs to the
// terminal UI, so logs never go there.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

var log = slog.New(slog.NewJSONHandler(io.Discard, nil))

// Init opens the log file and installs a JSON handler at the given level.
// An empty path disables logging.
func Init(path, level string) error {
	if path == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	log = slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: parseLevel(level)}))
	return nil
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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

func Debug(msg string, args ...any) { log.Debug(msg, args...) }
func Info(msg string, args ...any)  { log.Info(msg, args...) }
func Warn(msg string, args ...any)  { log.Warn(msg, args...) }
func Error(msg string, args ...any) { log.Error(msg, args...) }
