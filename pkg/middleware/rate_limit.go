package middleware

import (
	"net"
	"net/http"
	"time"

	"job-portal/internal/data/repository"
	"job-portal/pkg/utils"

	"go.uber.org/zap"
)

// RateLimit caps requests per client IP per path inside a fixed window.
// Counter storage errors fail open: the limiter protects against abuse,
// it must never take the API down with it.
func RateLimit(repo repository.RateLimitRepository, limit int, window time.Duration, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}

			count, err := repo.Hit(r.Context(), ip+":"+r.URL.Path, window)
			if err != nil {
				logger.Warn("Rate limit storage error, allowing request", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			if count > limit {
				logger.Warn("Rate limit exceeded",
					zap.String("ip", ip),
					zap.String("path", r.URL.Path),
					zap.Int("count", count))
				utils.ResponseTooManyRequests(w, "Too many requests, try again later")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
