package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/skillcoder/computeinfo-api/internal/app"
	"github.com/skillcoder/computeinfo-api/internal/config"
	"github.com/skillcoder/computeinfo-api/internal/infra/appstate"
	"github.com/skillcoder/computeinfo-api/internal/infra/logging"
	"github.com/skillcoder/computeinfo-api/internal/infra/pinger"
	"github.com/skillcoder/computeinfo-api/internal/infra/shutdown"
)

// flushDelay lets buffered log output reach the collector before exit.
const flushDelay = time.Second

func main() {
	startedAt := time.Now()
	// Subscribe before anything else so an early SIGTERM is not lost.
	signals := shutdown.Notify()

	os.Exit(run(context.Background(), signals, startedAt))
}

func run(ctx context.Context, signals <-chan os.Signal, startedAt time.Time) int {
	if err := serve(ctx, signals, startedAt); err != nil {
		slog.ErrorContext(ctx, "computeinfo-api failed", "reason", err)
		time.Sleep(flushDelay)

		return 1
	}

	slog.InfoContext(ctx, "bye")

	return 0
}

func serve(ctx context.Context, signals <-chan os.Signal, startedAt time.Time) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := logging.New(cfg.LogFormat, cfg.LogLevel)
	logger.InfoContext(ctx, "starting computeinfo-api",
		"httpPort", cfg.HTTPPort,
		"metricsPort", cfg.MetricsPort,
		"maintainerLabel", cfg.MaintainerLabel,
		"maintainerFilterEnabled", cfg.MaintainerFilterEnabled,
		"maxConcurrentNamespaces", cfg.MaxConcurrentNamespaces,
	)

	appState := appstate.New(
		logger,
		startedAt,
		cfg.TerminationFile,
		signals,
		pinger.New(logger, cfg.PingerInterval),
	)

	application, err := app.New(logger, cfg, appState)
	if err != nil {
		return fmt.Errorf("wire application: %w", err)
	}

	return application.Run(ctx)
}
