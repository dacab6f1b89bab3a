package middleware

import (
	"net/http"

	"github.com/gorilla/mux"
)

// BodyLimit caps request bodies at maxBytes via http.MaxBytesReader. Apply
// globally with a small default and raise per-route where uploads need more.
func BodyLimit(maxBytes int64) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// BodyLimitHandler overrides the body cap for a single route, typically the
// multipart upload endpoints.
func BodyLimitHandler(maxBytes int64, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		next(w, r)
	}
}
