package main

import (
	"context"
	"errors"
	"os"
	"time"

	"PulseBriefing/internal/app"
	"PulseBriefing/internal/config"
	"PulseBriefing/internal/logging"
	"PulseBriefing/internal/usecase"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	if cfg.DeepSeek.APIKey == "" {
		logger.Error("DEEPSEEK_API_KEY environment variable is required")
		os.Exit(1)
	}

	// Overall run deadline: an unresponsive upstream must terminate the
	// process, not hang the scheduled job.
	timeout := 5 * time.Minute
	if cfg.Pipeline.RunTimeoutSeconds > 0 {
		timeout = time.Duration(cfg.Pipeline.RunTimeoutSeconds) * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	application := app.New(cfg, logger)
	defer application.Close()

	logger.Info("generation started", "timeout", timeout.String())

	if err := application.Run(ctx); err != nil {
		switch {
		case errors.Is(err, usecase.ErrNoItems):
			logger.Error("no items fetched, check source configuration", "error", err)
		case errors.Is(err, context.DeadlineExceeded):
			logger.Error("run exceeded maximum execution time, check upstream API status", "error", err)
		default:
			logger.Error("generation failed", "error", err)
		}
		os.Exit(1)
	}

	logger.Info("generation complete")
}
