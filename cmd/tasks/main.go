package main

import (
	"context"
	"os"
	"time"

	"tracker/internal/backend"
	"tracker/internal/cli"
	applog "tracker/internal/log"
	"tracker/internal/shell"
)

func main() {
	// Load .env file for local development
	cli.LoadEnvFile()

	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"))
	cfg := cli.MustLoadConfig(logger)

	logger = cli.SetupLogger(cfg.LogLevel).WithComponent(applog.ComponentTasks)
	logger.Debug("Starting task tracker", "task_id_strategy", cfg.TaskIDStrategy)

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", "error", err)
		os.Exit(1)
	}

	ctx := applog.NewContext(context.Background(), logger)
	result, err := backend.NewFactory(logger).Create(ctx, backendCfg)
	if err != nil {
		logger.Error("Failed to initialize services", "error", err)
		os.Exit(1)
	}

	sh := shell.NewTaskShell(result.Tasks, os.Stdin, os.Stdout, logger)
	runErr := cli.RunInteractive(ctx, sh.Run)

	_ = cli.Shutdown(logger, 5*time.Second, result.Cleanup)

	if runErr != nil {
		logger.Error("Task tracker stopped", "error", runErr)
		os.Exit(1)
	}
}
