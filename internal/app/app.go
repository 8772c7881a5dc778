package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/skillcoder/computeinfo-api/internal/adapters/inbound/httpapi"
	"github.com/skillcoder/computeinfo-api/internal/adapters/outbound/k8s"
	"github.com/skillcoder/computeinfo-api/internal/config"
	"github.com/skillcoder/computeinfo-api/internal/httpserver"
	"github.com/skillcoder/computeinfo-api/internal/infra/cronparser"
	"github.com/skillcoder/computeinfo-api/internal/infra/pinger"
	"github.com/skillcoder/computeinfo-api/internal/logic/inventory"
	"github.com/skillcoder/computeinfo-api/internal/logic/snapshot"
)

type App struct {
	logger     *slog.Logger
	appState   appstater
	pingers    []pinger.Pinger
	components []component
}

// New creates a new application instance with all dependencies wired.
func New(
	logger *slog.Logger,
	cfg *config.Config,
	appState appstater,
) (*App, error) {
	// The cluster client is built on first use so that a missing cluster fails
	// requests instead of the process.
	k8sRepo := k8s.New(logger, cfg.KubeMaster, cfg.KubeConfig)

	inventoryService := inventory.New(logger, k8sRepo, inventory.Settings{
		MaintainerLabelKey:      cfg.MaintainerLabel,
		MaintainerFilterEnabled: cfg.MaintainerFilterEnabled,
		MaxConcurrentNamespaces: cfg.MaxConcurrentNamespaces,
		NamespaceQueryTimeout:   cfg.NamespaceQueryTimeout,
	})

	api := httpapi.New(logger, inventoryService, httpapi.Settings{
		RateLimit:      cfg.RateLimit,
		RateLimitBurst: cfg.RateLimitBurst,
	})

	components := []component{
		httpserver.NewMetricsServer(logger, cfg.MetricsPort),
		httpserver.New(logger, appState, api.Routes(), httpserver.Settings{
			Port:         cfg.HTTPPort,
			WriteTimeout: cfg.HTTPWriteTimeout,
		}),
	}

	if cfg.SnapshotSchedule != "" {
		schedule, err := cronparser.New().Parse(cfg.SnapshotSchedule, cfg.SnapshotTZ)
		if err != nil {
			return nil, fmt.Errorf("snapshot schedule: %w", err)
		}

		snapshotService, err := snapshot.New(logger, inventoryService, schedule, cfg.SnapshotNamespaces)
		if err != nil {
			return nil, fmt.Errorf("snapshot service: %w", err)
		}

		logger.Info("scheduled snapshot enabled",
			"schedule", schedule.String(),
			"namespaces", cfg.SnapshotNamespaces,
		)

		components = append(components, snapshotService)
	}

	return &App{
		logger:     logger,
		appState:   appState,
		pingers:    []pinger.Pinger{k8sRepo},
		components: components,
	}, nil
}

// Run starts all components, blocks until a termination signal arrives or ctx
// is done, and then shuts everything down.
func (a *App) Run(originCtx context.Context) error {
	err := a.appState.SetStarting(originCtx)
	if err != nil {
		return fmt.Errorf("set starting: %w", err)
	}

	ctx, cancel := context.WithCancel(originCtx)
	defer cancel()

	err = a.start(ctx)
	if err != nil {
		cancel()

		return a.shutdown(originCtx, err)
	}

	select {
	case sig := <-a.appState.Quit():
		a.logger.InfoContext(ctx, "received signal, shutting down", "signal", sig.String())
	case <-ctx.Done():
		a.logger.InfoContext(ctx, "context done, shutting down")
	}

	cancel()

	return a.shutdown(originCtx, nil)
}

func (a *App) start(ctx context.Context) error {
	for _, p := range a.pingers {
		if err := a.appState.RegisterPinger(p); err != nil {
			return err
		}
	}

	readies := make([]<-chan struct{}, 0, len(a.components)+1)

	for _, c := range a.components {
		if err := a.appState.RegisterPinger(c); err != nil {
			return err
		}

		if err := c.Start(ctx); err != nil {
			return fmt.Errorf("start %s: %w", c.Name(), err)
		}

		a.appState.RegisterShutdowner(c)
		readies = append(readies, c.Ready())
	}

	pingerReady, err := a.appState.StartPinger(ctx)
	if err != nil {
		return err
	}

	readies = append(readies, pingerReady)

	select {
	case <-allChannelsClose(ctx, a.logger, readies...):
	case <-ctx.Done():
	}

	if ctx.Err() != nil {
		return fmt.Errorf("wait for components: %w", ctx.Err())
	}

	if err := a.appState.SetRunning(ctx); err != nil {
		return fmt.Errorf("set running: %w", err)
	}

	a.logger.InfoContext(ctx, "application started", "components", len(a.components))

	return nil
}

func (a *App) shutdown(ctx context.Context, cause error) error {
	shutdownErr := a.appState.Shutdown(context.WithoutCancel(ctx))

	switch {
	case cause != nil && shutdownErr != nil:
		return fmt.Errorf("%w (shutdown: %w)", cause, shutdownErr)
	case cause != nil:
		return cause
	case shutdownErr != nil:
		return fmt.Errorf("shutdown application: %w", shutdownErr)
	}

	a.logger.InfoContext(ctx, "application stopped")

	return nil
}

// allChannelsClose returns a channel that is closed once every input channel is
// closed or ctx is done.
func allChannelsClose(ctx context.Context, logger *slog.Logger, chans ...<-chan struct{}) <-chan struct{} {
	out := make(chan struct{})

	var wg sync.WaitGroup

	for _, ch := range chans {
		wg.Go(func() {
			select {
			case <-ch:
			case <-ctx.Done():
			}
		})
	}

	go func() {
		wg.Wait()

		if ctx.Err() != nil {
			logger.WarnContext(ctx, "stopped waiting for components", "reason", ctx.Err())
		}

		close(out)
	}()

	return out
}
