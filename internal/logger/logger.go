package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

type Logger struct {
	level string
	sl    *slog.Logger
}

func New(level string) *Logger {
	return NewWithWriter(os.Stdout, level, "text")
}

// NewWithWriter builds a logger writing text or JSON records to w.
func NewWithWriter(w io.Writer, level, format string) *Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return &Logger{
		level: level,
		sl:    slog.New(handler),
	}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

// With returns a child logger that adds the given key/value pairs to every record.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		level: l.level,
		sl:    l.sl.With(args...),
	}
}

// Slog exposes the underlying structured logger.
func (l *Logger) Slog() *slog.Logger {
	return l.sl
}

func (l *Logger) Enabled(level slog.Level) bool {
	return l.sl.Enabled(context.Background(), level)
}

func (l *Logger) Info(msg string, args ...interface{}) {
	l.sl.Info(format(msg, args...))
}

func (l *Logger) Debug(msg string, args ...interface{}) {
	l.sl.Debug(format(msg, args...))
}

func (l *Logger) Warn(msg string, args ...interface{}) {
	l.sl.Warn(format(msg, args...))
}

func (l *Logger) Error(msg string, args ...interface{}) {
	l.sl.Error(format(msg, args...))
}

func (l *Logger) Fatal(msg string, args ...interface{}) {
	l.sl.Error(format(msg, args...), "fatal", true)
	os.Exit(1)
}

func format(msg string, args ...interface{}) string {
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}
