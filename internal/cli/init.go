// Package cli provides common CLI initialization utilities.
// This package consolidates repeated initialization patterns across
// cmd/tasks and cmd/expenses.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"tracker/internal/config"
	applog "tracker/internal/log"
)

// ErrInterrupted is returned by WatchSignals when a shutdown signal arrives.
var ErrInterrupted = errors.New("interrupted")

// SetupLogger initializes structured logging on stderr at the given level.
// Returns the configured logger and sets it as the default logger.
// An unknown level falls back to info.
func SetupLogger(level string) *applog.Logger {
	cfg := applog.DefaultConfig()
	if lvl, err := applog.ParseLevel(level); err == nil {
		cfg.Level = lvl
	}
	logger := applog.New(cfg)
	applog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as the file is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
func LoadAndValidateConfig() (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustLoadConfig is LoadAndValidateConfig for main functions: it exits the
// process on validation failure.
func MustLoadConfig(logger *applog.Logger) *config.Config {
	cfg, err := loadConfig(context.Background(), logger)
	if err != nil {
		os.Exit(1)
	}
	return cfg
}

func loadConfig(ctx context.Context, logger *applog.Logger) (*config.Config, error) {
	cfg, err := LoadAndValidateConfig()
	if err != nil {
		applog.NewStructuredLogger(logger.WithComponent(applog.ComponentConfig)).
			LogError(ctx, "Configuration validation failed", err, applog.ErrorTypeConfiguration, applog.OpStartup, nil)
		return nil, err
	}
	return cfg, nil
}

// WatchSignals blocks until SIGINT or SIGTERM arrives or ctx is done.
// A signal yields ErrInterrupted so an errgroup cancels its siblings. It
// logs through the logger carried by ctx.
func WatchSignals(ctx context.Context) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case sig := <-sigChan:
		applog.FromContext(ctx).InfoContext(ctx, "Shutdown signal received",
			applog.FieldOperation, applog.OpShutdown,
			"signal", sig.String())
		return ErrInterrupted
	case <-ctx.Done():
		return nil
	}
}

// RunInteractive runs session alongside a signal watcher. The session
// ending stops the watcher; a signal cancels the session's context. An
// interrupt is not reported as an error.
func RunInteractive(ctx context.Context, session func(ctx context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return session(gctx)
	})
	g.Go(func() error {
		return WatchSignals(gctx)
	})

	err := g.Wait()
	if errors.Is(err, ErrInterrupted) {
		return nil
	}
	return err
}

// Shutdown runs cleanup, giving up after timeout.
func Shutdown(logger *applog.Logger, timeout time.Duration, cleanup func() error) error {
	if cleanup == nil {
		return nil
	}

	done := make(chan error, 1)
	go func() {
		done <- cleanup()
	}()

	ctx := context.Background()
	sl := applog.NewStructuredLogger(logger)
	select {
	case err := <-done:
		if err != nil {
			sl.LogError(ctx, "Cleanup failed", err, applog.ErrorTypeInternal, applog.OpShutdown, nil)
			return err
		}
		logger.Debug("Shutdown complete", applog.FieldOperation, applog.OpShutdown)
		return nil
	case <-time.After(timeout):
		err := fmt.Errorf("cleanup did not finish within %s", timeout)
		sl.LogWarn(ctx, "Shutdown timeout reached", err, applog.ErrorTypeInternal, applog.OpShutdown, nil)
		return err
	}
}
