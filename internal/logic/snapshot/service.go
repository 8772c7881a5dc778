package snapshot

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/skillcoder/computeinfo-api/internal/infra/metrics"
)

const pingTimeout = 2 * time.Second

type Service struct {
	logger     *slog.Logger
	collector  collector
	schedule   schedule
	namespaces []string
	now        func() time.Time
	ready      chan struct{}
	doneCh     chan struct{}
	inShutdown atomic.Bool
	mu         sync.RWMutex
	lastErr    error
	lastRunAt  time.Time
}

// New creates a snapshot service that collects namespaces on every schedule occurrence.
func New(
	logger *slog.Logger,
	collector collector,
	schedule schedule,
	namespaces []string,
) (*Service, error) {
	if len(namespaces) == 0 {
		return nil, ErrNoNamespaces
	}

	return &Service{
		logger:     logger,
		collector:  collector,
		schedule:   schedule,
		namespaces: slices.Clone(namespaces),
		now:        time.Now,
		ready:      make(chan struct{}),
		doneCh:     make(chan struct{}),
	}, nil
}

// Name returns the name of the snapshot component
func (s *Service) Name() string {
	return "inventory-snapshot"
}

// PingerCritical reports that a failing snapshot does not make the service unhealthy.
func (s *Service) PingerCritical() bool {
	return false
}

// PingerReadyCritical reports that a failing snapshot does not make the service unready.
func (s *Service) PingerReadyCritical() bool {
	return false
}

// PingerTimeout returns the ping timeout.
func (s *Service) PingerTimeout() time.Duration {
	return pingTimeout
}

func (s *Service) Start(ctx context.Context) error {
	if s.inShutdown.Load() {
		s.logger.InfoContext(ctx, "snapshot service is shutting down, skipping start")

		return nil
	}

	go s.RunCommand(ctx)

	return nil
}

func (s *Service) Ready() <-chan struct{} {
	return s.ready
}

// Ping fails while the loop has not started or when the last snapshot failed.
func (s *Service) Ping(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.ready:
	default:
		return ErrNotReady
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.lastErr != nil {
		return fmt.Errorf("%w at %s: %w", ErrLastRunFailed, s.lastRunAt.Format(time.RFC3339), s.lastErr)
	}

	return nil
}

func (s *Service) Shutdown(ctx context.Context) error {
	if !s.inShutdown.CompareAndSwap(false, true) {
		s.logger.ErrorContext(ctx, "snapshot service is already shutting down, skipping shutdown")

		return nil
	}

	defer func() {
		s.logger.InfoContext(ctx, "snapshot service shut downed")
	}()

	s.logger.InfoContext(ctx, "shutting down snapshot service")

	select {
	case <-ctx.Done():
		return fmt.Errorf("shutdown context done before snapshot loop exited: %w", ctx.Err())
	case <-s.doneCh:
		s.logger.InfoContext(ctx, "snapshot loop exited")
	}

	return nil
}

// RunCommand waits for each schedule occurrence and takes a snapshot until ctx is done.
func (s *Service) RunCommand(ctx context.Context) {
	defer close(s.doneCh)

	logger := s.logger.With("snapshot", "RunCommand")

	close(s.ready)

	for {
		next, err := s.schedule.NextAfter(s.now())
		if err != nil {
			logger.ErrorContext(ctx, "no next snapshot run, stopping snapshot loop", "reason", err)

			s.mu.Lock()
			s.lastErr = fmt.Errorf("schedule next run: %w", err)
			s.lastRunAt = s.now()
			s.mu.Unlock()

			return
		}

		logger.DebugContext(ctx, "next snapshot scheduled", "at", next)

		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			logger.InfoContext(ctx, "terminating snapshot loop")

			return
		case <-timer.C:
		}

		err = s.SnapshotCommand(ctx)
		if err != nil {
			logger.ErrorContext(ctx, "snapshot error", "reason", err)
		}
	}
}

// SnapshotCommand collects the configured namespaces once and publishes the
// aggregated requests as gauges.
func (s *Service) SnapshotCommand(ctx context.Context) error {
	logger := s.logger.With("snapshot", "SnapshotCommand")

	err := s.snapshot(ctx, logger)

	s.mu.Lock()
	s.lastErr = err
	s.lastRunAt = s.now()
	s.mu.Unlock()

	return err
}

func (s *Service) snapshot(ctx context.Context, logger *slog.Logger) error {
	pods, err := s.collector.CollectQuery(ctx, s.namespaces)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCollect, err)
	}

	totals, err := Aggregate(pods)
	if err != nil {
		return err
	}

	metrics.ResetRequestedResources()

	for key, req := range totals {
		metrics.SetRequestedResources(key.Namespace, key.Maintainer, req.CPUCores, req.MemoryBytes)
	}

	metrics.RecordSnapshotSuccess(s.now())

	logger.InfoContext(ctx, "snapshot published",
		"namespaces", len(s.namespaces),
		"pods", len(pods),
		"series", len(totals),
	)

	return nil
}
