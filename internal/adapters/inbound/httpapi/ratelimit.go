package httpapi

import (
	"net/http"
	"strconv"

	"golang.org/x/time/rate"
)

// rateLimit rejects requests once the shared token bucket is empty.
// A nil limiter lets every request through.
func (h *Handler) rateLimit(next http.Handler) http.Handler {
	if h.limiter == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.limiter.Allow() {
			w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(h.limiter.Limit())))
			h.writeError(w, r, http.StatusTooManyRequests, ErrCodeRateLimitExceeded,
				"rate limit exceeded", true, map[string]any{
					"limit": float64(h.limiter.Limit()),
					"burst": h.limiter.Burst(),
				})

			return
		}

		next.ServeHTTP(w, r)
	})
}

func retryAfterSeconds(limit rate.Limit) int {
	if limit <= 0 || limit >= 1 {
		return 1
	}

	return int(1/float64(limit) + 0.999)
}
