package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// ErrInvalidOrigin is returned by ValidateOrigin.
var ErrInvalidOrigin = errors.New("invalid CORS origin")

const (
	corsMaxAge         = 3600
	corsAllowedMethods = "GET, POST, PUT, PATCH, DELETE"
	corsAllowedHeaders = "Content-Type, " + RequestIDHeader
	corsExposedHeaders = RequestIDHeader + ", X-Document-Version, Content-Disposition"
)

// ValidateOrigin accepts "*" or a bare origin such as "http://localhost:3000".
func ValidateOrigin(origin string) error {
	if origin == "*" {
		return nil
	}

	u, err := url.Parse(origin)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrInvalidOrigin, origin, err)
	}

	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: %q needs a scheme and host", ErrInvalidOrigin, origin)
	}

	if (u.Path != "" && u.Path != "/") || u.RawQuery != "" || u.Fragment != "" {
		return fmt.Errorf("%w: %q must not carry a path", ErrInvalidOrigin, origin)
	}

	return nil
}

func normalizeOrigin(origin string) string {
	return strings.TrimSuffix(strings.ToLower(origin), "/")
}

// CORS returns a middleware that lets a browser UI served from another origin call the API.
// Origins are matched exactly (scheme, host and port); "*" allows any origin. Invalid
// entries are ignored, and with no usable entries the middleware passes requests through.
func CORS(origins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(origins))
	wildcard := false

	for _, origin := range origins {
		if ValidateOrigin(origin) != nil {
			continue
		}

		if origin == "*" {
			wildcard = true

			continue
		}

		allowed[normalizeOrigin(origin)] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		if !wildcard && len(allowed) == 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("Vary", "Origin")

			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)

				return
			}

			if _, ok := allowed[normalizeOrigin(origin)]; !ok && !wildcard {
				next.ServeHTTP(w, r)

				return
			}

			if wildcard {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			} else {
				w.Header().Set("Access-Control-Allow-Origin", origin)
			}

			w.Header().Set("Access-Control-Expose-Headers", corsExposedHeaders)

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.Header().Add("Vary", "Access-Control-Request-Method")
				w.Header().Set("Access-Control-Allow-Methods", corsAllowedMethods)
				w.Header().Set("Access-Control-Allow-Headers", corsAllowedHeaders)
				w.Header().Set("Access-Control-Max-Age", strconv.Itoa(corsMaxAge))
				w.WriteHeader(http.StatusNoContent)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
