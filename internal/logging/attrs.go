package logging

import (
	"io"
	"log/slog"
	"time"
)

// Common structured field keys shared across the daemon.
const (
	FieldComponent = "component"
	FieldEventType = "event_type"
	FieldErrorHint = "error_hint"
	FieldTopic     = "topic"
	FieldState     = "state"
	FieldQuestion  = "question_id"
	FieldDevice    = "device"
	FieldScore     = "score"
	FieldResultID  = "result_id"
	FieldUserID    = "user_id"
)

type Attr = slog.Attr

func Any(key string, value any) Attr { return slog.Any(key, value) }

func Bool(key string, value bool) Attr { return slog.Bool(key, value) }

func Duration(key string, value time.Duration) Attr { return slog.Duration(key, value) }

func Float64(key string, value float64) Attr { return slog.Float64(key, value) }

func Int(key string, value int) Attr { return slog.Int(key, value) }

func Int64(key string, value int64) Attr { return slog.Int64(key, value) }

func String(key string, value string) Attr { return slog.String(key, value) }

func Error(err error) Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Any("error", err)
}

// NewNop returns a logger that discards everything.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// NewComponentLogger tags a logger with a component field, tolerating nil.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		return NewNop()
	}
	return logger.With(String(FieldComponent, component))
}
