package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestMultiHandler(t *testing.T) {
	var text, jsonBuf bytes.Buffer
	h := NewMultiHandler(
		NewHandler(&text, &slog.HandlerOptions{Level: slog.LevelWarn}),
		slog.NewJSONHandler(&jsonBuf, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)
	logger := slog.New(h).With("run", 1)

	logger.Debug("only json")
	logger.Warn("both")

	if strings.Contains(text.String(), "only json") {
		t.Errorf("text handler should filter debug: %q", text.String())
	}
	if !strings.Contains(text.String(), "both") || !strings.Contains(text.String(), "run=1") {
		t.Errorf("text handler missing warn record: %q", text.String())
	}
	if strings.Count(jsonBuf.String(), "\n") != 2 {
		t.Errorf("json handler should receive both records: %q", jsonBuf.String())
	}
	if !h.Enabled(t.Context(), slog.LevelDebug) {
		t.Error("multi handler should be enabled when any handler is")
	}
}

type failingHandler struct{ err error }

func (h failingHandler) Enabled(context.Context, slog.Level) bool  { return true }
func (h failingHandler) Handle(context.Context, slog.Record) error { return h.err }
func (h failingHandler) WithAttrs([]slog.Attr) slog.Handler        { return h }
func (h failingHandler) WithGroup(string) slog.Handler             { return h }

func TestMultiHandler_CombinesErrors(t *testing.T) {
	errA := errors.New("disk full")
	errB := errors.New("pipe closed")
	var buf bytes.Buffer

	h := NewMultiHandler(failingHandler{errA}, NewHandler(&buf, nil), failingHandler{errB})
	err := slog.New(h).Handler().Handle(t.Context(), slog.NewRecord(time.Now(), slog.LevelError, "boom", 0))

	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Errorf("Handle() error = %v, want both handler errors", err)
	}
	if !strings.Contains(buf.String(), "boom") {
		t.Errorf("healthy handler must still receive the record: %q", buf.String())
	}
}

func TestMultiHandler_EmptyGroup(t *testing.T) {
	h := NewMultiHandler(NewHandler(&bytes.Buffer{}, nil))
	if h.WithGroup("") != slog.Handler(h) {
		t.Error("WithGroup(\"\") should return the handler unchanged")
	}
}
