package middleware

import (
	"net/http"
	"strings"

	"adsmanager/internal/application/auth"
	"adsmanager/internal/delivery/http/handler"
)

// Auth middleware validates the authorization token
func Auth(authService auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				handler.SendError(w, "Authorization required", http.StatusUnauthorized)
				return
			}

			u, err := authService.ValidateToken(r.Context(), token)
			if err != nil {
				handler.SendError(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(handler.WithUser(r.Context(), u)))
		})
	}
}

func extractToken(r *http.Request) string {
	// Check Authorization header
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	// Check query parameter (for browser redirects into the OAuth flows)
	if token := r.URL.Query().Get("token"); token != "" {
		return token
	}

	return ""
}
