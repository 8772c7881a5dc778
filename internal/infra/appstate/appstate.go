package appstate

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"sync"
	"syscall"
	"time"

	"github.com/samber/lo"

	"github.com/skillcoder/computeinfo-api/internal/infra/pinger"
	"github.com/skillcoder/computeinfo-api/internal/infra/shutdown"
)

// State represents the application state
type State string

const (
	// StateInit is the initial state when the application is created
	StateInit State = "init"

	// StateStarting is the state when the application is starting up
	StateStarting State = "starting"

	// StateRunning is the state when the application is serving requests
	StateRunning State = "running"

	// StateTerminating is the state when the application is shutting down
	StateTerminating State = "terminating"

	// StateTerminated is the final state when the application has terminated
	StateTerminated State = "terminated"
)

const defaultShutdownersCount = 8

// AppState tracks the lifecycle state of the service and aggregates component pings.
type AppState struct {
	mu                  sync.RWMutex
	logger              *slog.Logger
	startedAt           time.Time
	readyAt             *time.Time
	terminatingAt       *time.Time
	state               State
	quit                <-chan os.Signal
	terminationFilePath string
	pinger              pingerServer
	shutdowners         []shutdown.Shutdowner
}

// New creates a new AppState
func New(
	logger *slog.Logger,
	appStart time.Time,
	terminationFilePath string,
	quit <-chan os.Signal,
	pinger pingerServer,
) *AppState {
	return &AppState{
		logger:              logger,
		startedAt:           appStart,
		state:               StateInit,
		quit:                quit,
		terminationFilePath: terminationFilePath,
		pinger:              pinger,
		shutdowners:         make([]shutdown.Shutdowner, 0, defaultShutdownersCount),
	}
}

// RegisterPinger adds a component to the periodic ping loop
func (s *AppState) RegisterPinger(p pinger.Pinger) error {
	if err := s.pinger.Register(p); err != nil {
		return fmt.Errorf("register pinger: %w", err)
	}

	return nil
}

// RegisterShutdowner adds a component to the shutdown sequence. Components are shut
// down in reverse registration order.
func (s *AppState) RegisterShutdowner(shutdowner shutdown.Shutdowner) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.shutdowners = append(s.shutdowners, shutdowner)
}

// StartPinger starts the ping loop and registers it for shutdown. The returned
// channel is closed once every registered pinger has been pinged once.
func (s *AppState) StartPinger(ctx context.Context) (<-chan struct{}, error) {
	if err := s.pinger.Start(ctx); err != nil {
		return nil, fmt.Errorf("start pinger: %w", err)
	}

	s.RegisterShutdowner(s.pinger)

	return s.pinger.Ready(), nil
}

// GetAllStats returns the statistics of every registered pinger
func (s *AppState) GetAllStats() map[string]*pinger.Statistics {
	return s.pinger.GetAllStats()
}

// SetStarting transitions the state from Init to Starting
func (s *AppState) SetStarting(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInit {
		return fmt.Errorf("set starting from %s: %w", s.state, ErrInvalidStateTransition)
	}

	return s.setState(StateStarting)
}

// SetRunning transitions the state from Starting to Running. If the termination
// file already exists the process signals itself to terminate.
func (s *AppState) SetRunning(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateStarting {
		return fmt.Errorf("set running from %s: %w", s.state, ErrInvalidStateTransition)
	}

	now := time.Now()
	s.readyAt = &now

	if err := s.setState(StateRunning); err != nil {
		return err
	}

	if shutdown.CheckTerminationFile(ctx, s.logger, s.terminationFilePath) {
		pid := os.Getpid()
		s.logger.InfoContext(ctx, "termination file found after start, sending SIGTERM", "pid", pid)

		if err := syscall.Kill(pid, syscall.SIGTERM); err != nil {
			s.logger.ErrorContext(ctx, "failed to send SIGTERM", "reason", err, "pid", pid)
		}
	}

	return nil
}

// SetTerminating transitions the state to Terminating
func (s *AppState) SetTerminating(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateTerminated {
		return fmt.Errorf("set terminating: %w", ErrAlreadyTerminated)
	}

	if s.terminatingAt == nil {
		now := time.Now()
		s.terminatingAt = &now
	}

	return s.setState(StateTerminating)
}

func (s *AppState) setState(newState State) error {
	if s.state == StateTerminated {
		return fmt.Errorf("set state %s: %w", newState, ErrAlreadyTerminated)
	}

	s.state = newState

	return nil
}

// GetState returns the current application state
func (s *AppState) GetState() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state
}

// GetStartTime returns the time when the application started
func (s *AppState) GetStartTime() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.startedAt
}

// GetUptime returns the duration since the application started
func (s *AppState) GetUptime() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return time.Since(s.startedAt)
}

// IsHealthy reports whether the application is running and no health-critical
// pinger is failing.
func (s *AppState) IsHealthy() bool {
	if s.GetState() != StateRunning {
		return false
	}

	return len(UnhealthyPingers(s.GetAllStats())) == 0
}

// IsReady reports whether the application accepts traffic and no ready-critical
// pinger is failing.
func (s *AppState) IsReady() bool {
	s.mu.RLock()
	ready := s.state == StateRunning && s.readyAt != nil
	s.mu.RUnlock()

	if !ready {
		return false
	}

	return len(UnreadyPingers(s.GetAllStats())) == 0
}

// Quit returns the channel that receives the signal when shutdown is requested
func (s *AppState) Quit() <-chan os.Signal {
	return s.quit
}

// Shutdown shuts down all registered components and marks the application terminated.
// Calling it again after termination is a no-op.
func (s *AppState) Shutdown(ctx context.Context) error {
	if s.GetState() == StateTerminated {
		return nil
	}

	if err := s.SetTerminating(ctx); err != nil {
		return fmt.Errorf("set terminating application state: %w", err)
	}

	s.mu.RLock()
	shutdowners := slices.Clone(s.shutdowners)
	s.mu.RUnlock()

	shutdownErr := shutdown.GracefulShutdown(ctx, s.logger, shutdowners)

	s.mu.Lock()
	s.state = StateTerminated
	s.mu.Unlock()

	if shutdownErr != nil {
		return fmt.Errorf("shutdown: %w", shutdownErr)
	}

	return nil
}

// UnhealthyPingers returns the sorted names of pingers that are not healthy
func UnhealthyPingers(stats map[string]*pinger.Statistics) []string {
	return failingPingers(stats, func(st *pinger.Statistics) bool {
		return st.IsHealthy
	})
}

// UnreadyPingers returns the sorted names of pingers that are not ready
func UnreadyPingers(stats map[string]*pinger.Statistics) []string {
	return failingPingers(stats, func(st *pinger.Statistics) bool {
		return st.IsReady
	})
}

func failingPingers(stats map[string]*pinger.Statistics, ok func(*pinger.Statistics) bool) []string {
	failing := lo.Keys(lo.OmitBy(stats, func(_ string, st *pinger.Statistics) bool {
		return st == nil || ok(st)
	}))
	slices.Sort(failing)

	return failing
}
