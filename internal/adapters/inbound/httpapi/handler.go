package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/skillcoder/computeinfo-api/internal/logic/inventory"
)

// maxRequestBodyBytes limits the size of a collect request body.
const maxRequestBodyBytes = 1 << 20

var (
	errNamespacesMissing = errors.New("namespaces is required")
	errNamespaceEmpty    = errors.New("namespace must not be empty")
	errTrailingData      = errors.New("unexpected data after request body")
)

// Settings configures the API handler.
type Settings struct {
	// RateLimit is the sustained number of API requests per second; 0 disables rate limiting.
	RateLimit float64
	// RateLimitBurst is the number of requests allowed above RateLimit at once.
	RateLimitBurst int
}

// Handler serves the compute inventory API.
type Handler struct {
	logger    *slog.Logger
	inventory inventoryQuerier
	limiter   *rate.Limiter
}

// New creates a new API handler
func New(logger *slog.Logger, inventory inventoryQuerier, settings Settings) *Handler {
	h := &Handler{
		logger:    logger,
		inventory: inventory,
	}

	if settings.RateLimit > 0 {
		burst := max(settings.RateLimitBurst, 1)
		h.limiter = rate.NewLimiter(rate.Limit(settings.RateLimit), burst)
	}

	return h
}

// Routes returns the API router. It is meant to be mounted under /api.
func (h *Handler) Routes() http.Handler {
	router := chi.NewRouter()

	router.Use(h.rateLimit)

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		h.writeError(w, r, http.StatusNotFound, ErrCodeNotFound, "route not found", false, nil)
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		h.writeError(w, r, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "method not allowed", false, nil)
	})

	router.Post("/compute-info/pods", h.handleCollectPods)

	return router
}

func (h *Handler) handleCollectPods(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.logger.With("traceID", middleware.GetReqID(ctx))

	req, err := decodeCollectRequest(w, r)
	if err != nil {
		logger.DebugContext(ctx, "invalid collect request", "reason", err)
		h.writeError(w, r, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error(), false, nil)

		return
	}

	pods, err := h.inventory.InventoryQuery(ctx, req)
	if err != nil {
		if errors.Is(err, inventory.ErrClusterUnavailable) {
			logger.ErrorContext(ctx, "cluster unavailable", "reason", err)
			h.writeError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable,
				"kubernetes cluster is unavailable", true, nil)

			return
		}

		logger.ErrorContext(ctx, "inventory query failed", "reason", err)
		h.writeError(w, r, http.StatusInternalServerError, ErrCodeInternalError,
			"failed to collect compute inventory", false, nil)

		return
	}

	if pods == nil {
		pods = []inventory.PodComputeInfo{}
	}

	logger.DebugContext(ctx, "collect request served",
		"namespaces", len(req.Namespaces),
		"count", len(pods),
	)

	h.respond(w, r, http.StatusOK, pods)
}

func decodeCollectRequest(w http.ResponseWriter, r *http.Request) (inventory.CollectRequest, error) {
	var req inventory.CollectRequest

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))

	if err := dec.Decode(&req); err != nil {
		return inventory.CollectRequest{}, fmt.Errorf("decode request body: %w", err)
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return inventory.CollectRequest{}, errTrailingData
	}

	if req.Namespaces == nil {
		return inventory.CollectRequest{}, errNamespacesMissing
	}

	if slices.Contains(req.Namespaces, "") {
		return inventory.CollectRequest{}, errNamespaceEmpty
	}

	return req, nil
}
