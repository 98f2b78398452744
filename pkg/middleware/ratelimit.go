package middleware

import (
	"net/http"
	"strings"
	"time"

	"booking-platform/pkg/ratelimit"
	"booking-platform/pkg/utils"

	"go.uber.org/zap"
)

// RateLimit caps requests per client IP on a route. Fails open when Redis
// is unreachable so an infra outage never blocks customers.
func RateLimit(limiter *ratelimit.Limiter, route string, limit int, window time.Duration, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)

			allowed, err := limiter.Allow(r.Context(), route, ip, limit, window)
			if err != nil {
				logger.Warn("Rate limiter unavailable, failing open",
					zap.Error(err),
					zap.String("route", route),
					zap.String("ip", ip),
				)
				next.ServeHTTP(w, r)
				return
			}

			if !allowed {
				logger.Warn("Rate limit exceeded",
					zap.String("route", route),
					zap.String("ip", ip),
				)
				utils.ResponseTooManyRequests(w, "Rate limit exceeded")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	forwarded := r.Header.Get("X-Forwarded-For")
	if forwarded != "" {
		if first, _, found := strings.Cut(forwarded, ","); found || first != "" {
			return strings.TrimSpace(first)
		}
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}
