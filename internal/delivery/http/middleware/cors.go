package middleware

import (
	"net/http"
	"slices"

	"github.com/go-chi/cors"
)

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// CORS returns the CORS middleware for the configured origins. An empty
// list allows every origin. Credentials are allowed only when no wildcard
// origin is configured.
func CORS(config CORSConfig) func(http.Handler) http.Handler {
	origins := config.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: !slices.Contains(origins, "*"),
		MaxAge:           300,
	})
}
