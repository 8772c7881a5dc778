package appstate

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/skillcoder/computeinfo-api/internal/infra/pinger"
)

type probeResponse struct {
	Status  string   `json:"status"`
	Failing []string `json:"failing,omitempty"`
}

type statusResponse struct {
	State     string                        `json:"state"`
	Uptime    string                        `json:"uptime"`
	StartTime time.Time                     `json:"startTime"`
	UptimeSec float64                       `json:"uptimeSeconds"`
	Pingers   map[string]*pinger.Statistics `json:"pingers"`
}

// HandleHealthz returns an http.HandlerFunc for the /-/healthz endpoint
func HandleHealthz(
	logger *slog.Logger,
	appState healthChecker,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		logger := logger.With("traceID", middleware.GetReqID(ctx))

		if !appState.IsHealthy() {
			failing := UnhealthyPingers(appState.GetAllStats())
			logger.DebugContext(ctx, "health check failed", "failing", failing)
			writeJSON(logger, w, r, http.StatusServiceUnavailable, probeResponse{Status: "unhealthy", Failing: failing})

			return
		}

		writeJSON(logger, w, r, http.StatusOK, probeResponse{Status: "ok"})
	}
}

// HandleReadyz returns an http.HandlerFunc for the /-/readyz endpoint
func HandleReadyz(
	logger *slog.Logger,
	appState readyChecker,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		logger := logger.With("traceID", middleware.GetReqID(ctx))

		if !appState.IsReady() {
			failing := UnreadyPingers(appState.GetAllStats())
			logger.DebugContext(ctx, "readiness check failed", "failing", failing)
			writeJSON(logger, w, r, http.StatusServiceUnavailable, probeResponse{Status: "not ready", Failing: failing})

			return
		}

		writeJSON(logger, w, r, http.StatusOK, probeResponse{Status: "ok"})
	}
}

// HandleStatus returns an http.HandlerFunc for the /-/status endpoint
func HandleStatus(
	logger *slog.Logger,
	appState statusGetter,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := logger.With("traceID", middleware.GetReqID(r.Context()))

		uptime := appState.GetUptime()
		pingers := appState.GetAllStats()

		if pingers == nil {
			pingers = map[string]*pinger.Statistics{}
		}

		writeJSON(logger, w, r, http.StatusOK, statusResponse{
			State:     string(appState.GetState()),
			Uptime:    uptime.String(),
			StartTime: appState.GetStartTime(),
			UptimeSec: uptime.Seconds(),
			Pingers:   pingers,
		})
	}
}

func writeJSON(logger *slog.Logger, w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.ErrorContext(r.Context(), "failed to encode probe response", "reason", err)
	}
}
