package log

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func newBufferLogger(level slog.Level) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return New(Config{Level: level, Component: ComponentTasks, Output: &buf}), &buf
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"", slog.LevelInfo, false},
		{"INFO", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLoggerComponent(t *testing.T) {
	logger, buf := newBufferLogger(slog.LevelInfo)
	logger.Info("hello")

	if !strings.Contains(buf.String(), "component=tasks") {
		t.Errorf("expected component attribute, got %q", buf.String())
	}

	buf.Reset()
	child := logger.WithComponent(ComponentShell)
	child.Info("hi")
	out := buf.String()
	if !strings.Contains(out, "component=shell") || strings.Contains(out, "component=tasks") {
		t.Errorf("expected only the shell component, got %q", out)
	}
}

func TestContextRoundTrip(t *testing.T) {
	logger, _ := newBufferLogger(slog.LevelInfo)
	ctx := NewContext(context.Background(), logger)
	if FromContext(ctx) != logger {
		t.Error("FromContext should return the stored logger")
	}
	if got := FromContext(context.Background()); got == nil || got.Logger != slog.Default() {
		t.Errorf("FromContext without logger should wrap the default, got %+v", got)
	}
}

func TestStructuredLogger(t *testing.T) {
	logger, buf := newBufferLogger(slog.LevelDebug)
	sl := NewStructuredLogger(logger)
	ctx := context.Background()

	sl.LogRecordChanged(ctx, "task", 3, OpCreate, nil)
	out := buf.String()
	for _, want := range []string{"Record created", "record_kind=task", "record_id=3", "operation=create"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in %q", want, out)
		}
	}

	buf.Reset()
	sl.LogError(ctx, "publish failed", errors.New("boom"), ErrorTypeNetwork, OpPublish, NewFields().With(FieldRecordID, "x"))
	out = buf.String()
	for _, want := range []string{"level=ERROR", "error=boom", "error_type=network_error", "record_id=x"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in %q", want, out)
		}
	}

	buf.Reset()
	sl.LogMiss(ctx, "lookup missed", errors.New("record not found"), ErrorTypeNotFound, OpUpdate, nil)
	out = buf.String()
	for _, want := range []string{"level=DEBUG", "error_type=not_found_error", "operation=update"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in %q", want, out)
		}
	}

	buf.Reset()
	sl.LogQuery(ctx, "task", OpSearch, 2, nil)
	if !strings.Contains(buf.String(), "results=2") {
		t.Errorf("missing results in %q", buf.String())
	}
}

func TestFieldsBuilder(t *testing.T) {
	f := NewFields().With(FieldRecordKind, "task").WithError(nil).WithOperation("op")
	if _, ok := f[FieldError]; ok {
		t.Error("nil error should not add an error field")
	}
	if len(f.ToSlice()) != 4 {
		t.Errorf("ToSlice() = %v", f.ToSlice())
	}
}
