package cli

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	applog "tracker/internal/log"
)

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		level string
		debug bool
		warn  bool
	}{
		{"debug", true, true},
		{"info", false, true},
		{"error", false, false},
		{"bogus", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := SetupLogger(tt.level)
			ctx := context.Background()
			if got := logger.Enabled(ctx, slog.LevelDebug); got != tt.debug {
				t.Errorf("debug enabled = %v, want %v", got, tt.debug)
			}
			if got := logger.Enabled(ctx, slog.LevelWarn); got != tt.warn {
				t.Errorf("warn enabled = %v, want %v", got, tt.warn)
			}
		})
	}
}

func TestLoadAndValidateConfig(t *testing.T) {
	t.Setenv("TASK_ID_STRATEGY", "recount")
	cfg, err := LoadAndValidateConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TaskIDStrategy != "recount" {
		t.Errorf("TaskIDStrategy = %q, want recount", cfg.TaskIDStrategy)
	}

	t.Setenv("EXPENSE_ID_POOL_SIZE", "0")
	if _, err := LoadAndValidateConfig(); err == nil {
		t.Error("expected validation error for pool size 0")
	}
}

func TestWatchSignalsReturnsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- WatchSignals(applog.NewContext(ctx, applog.Discard())) }()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected nil error, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("WatchSignals did not return after cancel")
	}
}

func TestShutdown(t *testing.T) {
	logger := applog.Discard()

	if err := Shutdown(logger, time.Second, nil); err != nil {
		t.Errorf("nil cleanup: %v", err)
	}

	called := false
	if err := Shutdown(logger, time.Second, func() error { called = true; return nil }); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if !called {
		t.Error("cleanup was not called")
	}

	boom := errors.New("boom")
	if err := Shutdown(logger, time.Second, func() error { return boom }); !errors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}

	var buf bytes.Buffer
	logger = applog.New(applog.Config{Level: slog.LevelInfo, Output: &buf})
	block := make(chan struct{})
	defer close(block)
	err := Shutdown(logger, 10*time.Millisecond, func() error { <-block; return nil })
	if err == nil {
		t.Error("expected timeout error")
	}
	for _, want := range []string{"level=WARN", "operation=shutdown"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("missing %q in %q", want, buf.String())
		}
	}
}

func TestLoadConfigLogsValidationFailure(t *testing.T) {
	var buf bytes.Buffer
	logger := applog.New(applog.Config{Level: slog.LevelInfo, Output: &buf})

	t.Setenv("EXPENSE_ID_POOL_SIZE", "0")
	if _, err := loadConfig(context.Background(), logger); err == nil {
		t.Fatal("expected validation error")
	}

	out := buf.String()
	for _, want := range []string{"component=config", "operation=startup", "error_type=configuration_error"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in %q", want, out)
		}
	}
}

func TestRunInteractive(t *testing.T) {
	err := RunInteractive(context.Background(), func(ctx context.Context) error {
		return nil
	})
	if err != nil {
		t.Errorf("session ending cleanly: %v", err)
	}

	boom := errors.New("boom")
	err = RunInteractive(context.Background(), func(ctx context.Context) error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = RunInteractive(ctx, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
