package middleware

import (
	"net"
	"net/http"

	"go.uber.org/zap"

	pkgerrors "memoboard/pkg/errors"
	"memoboard/pkg/ratelimit"
)

// RateLimit rejects requests once the client address runs out of tokens.
// It expects RealIP to have run so RemoteAddr is the client address.
func RateLimit(limiter ratelimit.Limiter, errorHandler *pkgerrors.ErrorHandler, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientKey(r.RemoteAddr)

			allowed, err := limiter.Allow(r.Context(), key)
			if err != nil {
				// Fail open
				logger.Warn("Rate limiter error", zap.String("client", key), zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				w.Header().Set("Retry-After", "60")
				errorHandler.HandleStatus(w, r, http.StatusTooManyRequests, "Too many requests, slow down")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(remoteAddr string) string {
	if host, _, err := net.SplitHostPort(remoteAddr); err == nil {
		return "ip:" + host
	}
	return "ip:" + remoteAddr
}
