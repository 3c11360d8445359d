package mcptools

import (
	"net/http"
	"strings"
)

// NewAuthMiddleware returns HTTP middleware enforcing bearer-token
// authentication. An empty token disables authentication entirely.
//
// When enabled, requests must carry exactly
//
//	Authorization: Bearer <token>
//
// with a case-sensitive prefix and a single space. Anything else, a
// missing header included, is answered with 401 Unauthorized.
func NewAuthMiddleware(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			const prefix = "Bearer "
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, prefix) {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			provided := authHeader[len(prefix):]
			if provided == "" || provided != token {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
