package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/diagnosis/staycheck/internal/http/response"
	"github.com/diagnosis/staycheck/pkg/logger"
)

// Limiter counts hits for a key inside its own window.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimit rejects requests once any key from keyFunc is over its limit.
// Limiter errors fail open.
func RateLimit(limiter Limiter, keyFunc func(r *http.Request) []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, key := range keyFunc(r) {
				allowed, err := limiter.Allow(r.Context(), key)
				if err != nil {
					logger.ErrorContext(r.Context(), "Rate limit check failed", "error", err)
					continue
				}
				if !allowed {
					response.RateLimit(w, "Too many requests. Try again later.")
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// CheckInRateLimitKeyFunc limits the magic-link landing per client IP.
func CheckInRateLimitKeyFunc(r *http.Request) []string {
	if ip := ClientIP(r); ip != "" {
		return []string{"checkin:ip:" + ip}
	}
	return nil
}

// ClientIP extracts the real client IP from the request
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
