package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestHandler_Handle(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	now := time.Now()
	logger.Info("compiled entry", "entry", "foot", "capabilities", 212)

	output := buf.String()
	for _, want := range []string{"INFO", "compiled entry", "entry=foot", "capabilities=212", now.Format(time.Kitchen)} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q: %q", want, output)
		}
	}
	if !strings.HasSuffix(output, "\n") {
		t.Errorf("output should end with a newline: %q", output)
	}
}

func TestHandler_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, nil)).With("source", "foot.info").WithGroup("resolve")

	logger.Info("expanded", "use", "foot+base")

	output := buf.String()
	if !strings.Contains(output, "source=foot.info") {
		t.Errorf("expected common attribute in output, got: %q", output)
	}
	if !strings.Contains(output, "resolve.use=foot+base") {
		t.Errorf("expected grouped attribute in output, got: %q", output)
	}
}

func TestHandler_Enabled(t *testing.T) {
	h := NewHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})

	ctx := t.Context()
	if h.Enabled(ctx, slog.LevelInfo) {
		t.Error("expected Info level to be disabled when min level is Warn")
	}
	if !h.Enabled(ctx, slog.LevelWarn) {
		t.Error("expected Warn level to be enabled")
	}
}

func TestHandler_TraceLevelName(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, &slog.HandlerOptions{Level: LevelTrace}))

	logger.Log(t.Context(), LevelTrace, "expanding use")

	if !strings.Contains(buf.String(), "TRACE") {
		t.Errorf("expected TRACE level name, got: %q", buf.String())
	}
}

func TestHandler_NoTime(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, nil)

	r := slog.NewRecord(time.Time{}, slog.LevelInfo, "no time", 0)
	if err := h.Handle(t.Context(), r); err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	if !strings.HasPrefix(buf.String(), "INFO") {
		t.Errorf("expected output to start with the level, got: %q", buf.String())
	}
}
