package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestConsoleHandlerFormatsComponentAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, lvl))

	NewComponentLogger(logger, "capture").Info("recording started",
		String(FieldDevice, "/dev/video0"),
		Int("width", 1280),
	)

	out := buf.String()
	if !strings.Contains(out, "[capture]") {
		t.Fatalf("expected component tag in output, got %q", out)
	}
	if !strings.Contains(out, "recording started") {
		t.Fatalf("expected message in output, got %q", out)
	}
	if !strings.Contains(out, "device=/dev/video0") || !strings.Contains(out, "width=1280") {
		t.Fatalf("expected attrs in output, got %q", out)
	}
}

func TestConsoleHandlerQuotesSpacedValues(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, lvl))

	logger.Warn("analysis failed", String("cause", "connection refused"))

	if !strings.Contains(buf.String(), `cause="connection refused"`) {
		t.Fatalf("expected quoted value, got %q", buf.String())
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestParseLevelDefaultsToInfo(t *testing.T) {
	if got := parseLevel("nonsense"); got != slog.LevelInfo {
		t.Fatalf("expected info level, got %v", got)
	}
	if got := parseLevel("debug"); got != slog.LevelDebug {
		t.Fatalf("expected debug level, got %v", got)
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	NewNop().Error("should not panic")
	NewComponentLogger(nil, "x").Info("nil base logger tolerated")
}
