package middleware

import (
	"net/http"
	"strings"
)

// OriginAllowed reports whether an Origin header value matches the allow-list
// by exact prefix.
func OriginAllowed(origin string, allowed []string) bool {
	if origin == "" {
		return false
	}
	for _, prefix := range allowed {
		if strings.HasPrefix(origin, prefix) {
			return true
		}
	}
	return false
}

// WithCORS adds CORS headers to responses. Allowed origins are echoed back;
// everything else gets the wildcard, which still blocks credentialed requests.
func WithCORS(allowed []string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if OriginAllowed(origin, allowed) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}

		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400") // 24 hours

		// Handle preflight requests
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}
