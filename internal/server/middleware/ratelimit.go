package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/httprate"

	"github.com/iudanet/starmap/internal/server/handlers"
)

// RateLimit ограничивает число запросов с одного IP за окно window.
// Ключ берется из RemoteAddr, поэтому перед ним должен стоять RealIP.
func RateLimit(logger *slog.Logger, requests int, window time.Duration) func(http.Handler) http.Handler {
	return httprate.Limit(requests, window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			logger.WarnContext(r.Context(), "rate limit exceeded",
				slog.String("ip", handlers.ClientIP(r)),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)
			handlers.SendError(logger, w, "rate_limited",
				"rate limit exceeded, please try again later", http.StatusTooManyRequests)
		}),
	)
}
