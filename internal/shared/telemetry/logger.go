package telemetry

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
	"time"
)

var (
	level   = new(slog.LevelVar)
	current atomic.Pointer[slog.Logger]
)

func init() {
	current.Store(newLogger())
}

// Setup configures the process logger for the given environment. Dev-like
// environments log at debug level.
func Setup(env string) {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		level.Set(slog.LevelDebug)
	default:
		level.Set(slog.LevelInfo)
	}
	logger := newLogger()
	current.Store(logger)
	slog.SetDefault(logger)
}

// Logger returns the shared structured logger.
func Logger() *slog.Logger {
	return current.Load()
}

// Debug writes a debug-level log line with the given fields.
func Debug(msg string, fields map[string]any) {
	write(slog.LevelDebug, msg, fields)
}

// Info writes an info-level log line with the given fields.
func Info(msg string, fields map[string]any) {
	write(slog.LevelInfo, msg, fields)
}

// Warn writes a warn-level log line with the given fields.
func Warn(msg string, fields map[string]any) {
	write(slog.LevelWarn, msg, fields)
}

// Error writes an error-level log line with the given fields.
func Error(msg string, fields map[string]any) {
	write(slog.LevelError, msg, fields)
}

func write(lvl slog.Level, msg string, fields map[string]any) {
	attrs := make([]slog.Attr, 0, len(fields))
	for k, v := range fields {
		if err, ok := v.(error); ok && err != nil {
			v = err.Error()
		}
		attrs = append(attrs, slog.Any(k, v))
	}
	current.Load().LogAttrs(context.Background(), lvl, msg, attrs...)
}

func newLogger() *slog.Logger {
	h := slog.NewJSONHandler(stdout{}, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) > 0 {
				return a
			}
			switch a.Key {
			case slog.TimeKey:
				return slog.String("ts", a.Value.Time().UTC().Format(time.RFC3339))
			case slog.LevelKey:
				return slog.String("level", strings.ToLower(a.Value.String()))
			}
			return a
		},
	})
	return slog.New(h)
}

// stdout resolves os.Stdout on every write so redirected output is honored.
type stdout struct{}

func (stdout) Write(p []byte) (int, error) {
	return os.Stdout.Write(p)
}
