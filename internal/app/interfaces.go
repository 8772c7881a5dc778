package app

import (
	"context"
	"os"
	"time"

	"github.com/skillcoder/computeinfo-api/internal/infra/appstate"
	"github.com/skillcoder/computeinfo-api/internal/infra/pinger"
	"github.com/skillcoder/computeinfo-api/internal/infra/shutdown"
)

// appstater defines the interface for application state management
type appstater interface {
	RegisterPinger(pinger pinger.Pinger) error
	RegisterShutdowner(shutdowner shutdown.Shutdowner)
	StartPinger(ctx context.Context) (<-chan struct{}, error)
	Quit() <-chan os.Signal
	SetStarting(ctx context.Context) error
	SetRunning(ctx context.Context) error
	Shutdown(ctx context.Context) error

	// probe handlers read these through the HTTP server
	GetState() appstate.State
	IsHealthy() bool
	IsReady() bool
	GetUptime() time.Duration
	GetStartTime() time.Time
	GetAllStats() map[string]*pinger.Statistics
}

// component is a long-running part of the application with its own lifecycle.
type component interface {
	pinger.Pinger
	Start(ctx context.Context) error
	Ready() <-chan struct{}
	shutdown.Shutdowner
}
