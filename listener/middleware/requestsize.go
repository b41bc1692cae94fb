package middleware

import (
	"net/http"
)

// DefaultMaxRequestSize bounds request bodies when no limit is configured.
const DefaultMaxRequestSize int64 = 1 << 20

// MaxRequestSize returns a middleware that caps request bodies with http.MaxBytesReader.
// Reads past the limit fail with *http.MaxBytesError. A non-positive limit selects
// DefaultMaxRequestSize.
func MaxRequestSize(limit int64) func(http.Handler) http.Handler {
	if limit <= 0 {
		limit = DefaultMaxRequestSize
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusRequestEntityTooLarge)
				_, _ = w.Write([]byte(`{"error":{"code":"REQUEST_TOO_LARGE","message":"request body too large"}}` + "\n"))

				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
