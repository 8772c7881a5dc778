package pinger

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"sync"
	"sync/atomic"
	"time"

	"github.com/skillcoder/computeinfo-api/internal/infra/shutdown"
)

// defaultPingTimeout is the default timeout for ping operations
const defaultPingTimeout = 1 * time.Second

// Optional interface types for type assertions
type readyCriticalPinger interface {
	PingerReadyCritical() bool
}

type healthCriticalPinger interface {
	PingerCritical() bool
}

type timeoutPinger interface {
	PingerTimeout() time.Duration
}

// pingerInfo holds a registered pinger and its criticality
type pingerInfo struct {
	pinger         Pinger
	readyCritical  bool
	healthCritical bool
	timeout        time.Duration
}

// Service periodically pings registered components and keeps per-component statistics.
type Service struct {
	logger     *slog.Logger
	interval   time.Duration
	pingers    map[string]*pingerInfo
	stats      map[string]*Stats
	mu         sync.RWMutex
	ready      chan struct{}
	inShutdown atomic.Bool
	doneCh     chan struct{}
	wg         sync.WaitGroup
}

// New creates a new pinger service with the specified interval
func New(
	logger *slog.Logger,
	interval time.Duration,
) *Service {
	return &Service{
		logger:   logger,
		interval: interval,
		pingers:  make(map[string]*pingerInfo),
		stats:    make(map[string]*Stats),
		ready:    make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

var _ shutdown.Shutdowner = (*Service)(nil)

// Name returns the name of the pinger service component
func (s *Service) Name() string {
	return "pinger-service"
}

// Register adds a pinger. Pingers are ready- and health-critical unless they
// implement PingerReadyCritical/PingerCritical returning false.
func (s *Service) Register(pinger Pinger) error {
	if pinger == nil {
		return fmt.Errorf("register pinger: %w", ErrNilPinger)
	}

	name := pinger.Name()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.pingers[name]; exists {
		return fmt.Errorf("register pinger %s: %w", name, ErrPingerAlreadyRegistered)
	}

	info := &pingerInfo{
		pinger:         pinger,
		readyCritical:  true,
		healthCritical: true,
		timeout:        defaultPingTimeout,
	}

	if rc, ok := pinger.(readyCriticalPinger); ok {
		info.readyCritical = rc.PingerReadyCritical()
	}

	if hc, ok := pinger.(healthCriticalPinger); ok {
		info.healthCritical = hc.PingerCritical()
	}

	if tp, ok := pinger.(timeoutPinger); ok && tp.PingerTimeout() > 0 {
		info.timeout = tp.PingerTimeout()
	}

	s.pingers[name] = info
	s.stats[name] = NewPingerStats(name)

	s.logger.Info("pinger registered",
		"name", name,
		"readyCritical", info.readyCritical,
		"healthCritical", info.healthCritical,
		"timeout", info.timeout,
	)

	return nil
}

// Start starts the pinger service in a goroutine
func (s *Service) Start(ctx context.Context) error {
	if s.inShutdown.Load() {
		s.logger.InfoContext(ctx, "pinger service is shutting down, skipping start")

		return nil
	}

	go s.run(ctx)

	return nil
}

// Ready returns a channel that is closed once the first round of pings has finished
func (s *Service) Ready() <-chan struct{} {
	return s.ready
}

// Shutdown gracefully shuts down the pinger service
func (s *Service) Shutdown(ctx context.Context) error {
	if !s.inShutdown.CompareAndSwap(false, true) {
		s.logger.ErrorContext(ctx, "pinger service is already shutting down, skipping shutdown")

		return nil
	}

	defer func() {
		s.logger.InfoContext(ctx, "pinger service shut downed")
	}()

	s.logger.InfoContext(ctx, "shutting down pinger service")

	select {
	case <-ctx.Done():
		return fmt.Errorf("shutdown context done before pinger loop exited: %w", ctx.Err())
	case <-s.doneCh:
		s.logger.InfoContext(ctx, "pinger loop exited")
	}

	// Wait for any in-flight ping operations to complete
	select {
	case <-ctx.Done():
		return fmt.Errorf("shutdown context done before in-flight pings finished: %w", ctx.Err())
	case <-waitDone(&s.wg):
	}

	return nil
}

// GetStats returns statistics for a specific pinger
func (s *Service) GetStats(name string) (*Statistics, error) {
	s.mu.RLock()
	info, infoExists := s.pingers[name]
	stats, statsExists := s.stats[name]
	s.mu.RUnlock()

	if !infoExists || !statsExists {
		return nil, fmt.Errorf("get stats %s: %w", name, ErrPingerNotFound)
	}

	return getStatistics(stats, info), nil
}

// GetAllStats returns a snapshot of all pinger statistics
func (s *Service) GetAllStats() map[string]*Statistics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]*Statistics, len(s.stats))
	for name, stats := range s.stats {
		info, exists := s.pingers[name]
		if !exists {
			continue
		}

		result[name] = getStatistics(stats, info)
	}

	return result
}

// run is the main goroutine that runs pingers at intervals
func (s *Service) run(ctx context.Context) {
	defer close(s.doneCh)

	logger := s.logger.With("component", "pinger-run")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.runPingers(ctx, logger)

	close(s.ready)

	for {
		if s.inShutdown.Load() {
			logger.InfoContext(ctx, "terminating pinger loop")

			return
		}

		select {
		case <-ticker.C:
			s.runPingers(ctx, logger)
		case <-ctx.Done():
			logger.InfoContext(ctx, "terminating pinger loop")

			return
		}
	}
}

// runPingers executes all registered pingers in parallel and waits for them
func (s *Service) runPingers(ctx context.Context, logger *slog.Logger) {
	s.mu.RLock()
	pingers := maps.Clone(s.pingers)
	s.mu.RUnlock()

	var wg sync.WaitGroup

	for name, info := range pingers {
		if ctx.Err() != nil {
			return
		}

		wg.Add(1)
		s.wg.Add(1)

		go func() {
			defer wg.Done()
			defer s.wg.Done()

			pingCtx, cancel := context.WithTimeout(ctx, info.timeout)
			defer cancel()

			start := time.Now()
			err := info.pinger.Ping(pingCtx)
			latency := time.Since(start)

			s.updateStats(name, latency, err)

			if err != nil {
				logger.DebugContext(ctx, "pinger error", "name", name, "latency", latency, "reason", err)

				return
			}

			logger.DebugContext(ctx, "pinger success", "name", name, "latency", latency)
		}()
	}

	// a pinger that ignores its context must not hold the loop past cancellation
	select {
	case <-ctx.Done():
	case <-waitDone(&wg):
	}
}

func waitDone(wg *sync.WaitGroup) <-chan struct{} {
	done := make(chan struct{})

	go func() {
		wg.Wait()
		close(done)
	}()

	return done
}

// updateStats updates statistics for a pinger in a thread-safe manner
func (s *Service) updateStats(name string, latency time.Duration, err error) {
	s.mu.RLock()
	stats, exists := s.stats[name]
	s.mu.RUnlock()

	if !exists {
		return
	}

	stats.record(time.Now(), latency, err)
}
