package middleware

import (
	"net/http"

	"golang.org/x/time/rate"
)

// RateLimit is a middleware factory that rejects requests exceeding the
// configured budget with 429. Applied to the write endpoints; the backing
// stores (notably the Sheets API) have their own quota to protect.
func RateLimit(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				http.Error(w, "Too many requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
