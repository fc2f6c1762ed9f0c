package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"adsmanager/internal/application/auth"
	"adsmanager/internal/delivery/http/handler"
	"adsmanager/internal/delivery/http/middleware"
)

// Handlers holds all HTTP handlers
type Handlers struct {
	Auth            *handler.AuthHandler
	OAuth           *handler.OAuthHandler
	ManagedAccounts *handler.ManagedAccountHandler
	Campaigns       *handler.CampaignHandler
}

// Setup configures all routes for the application
func Setup(handlers Handlers, authService auth.Service, corsConfig middleware.CORSConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(corsConfig))

	authRequired := middleware.Auth(authService)

	r.Get("/health", handler.Health)

	// ==================
	// Auth routes
	// ==================
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", handlers.Auth.Register)
		r.Post("/login", handlers.Auth.Login)
		r.With(authRequired).Get("/me", handlers.Auth.Me)

		// Google sign-in (public)
		r.Get("/google", handlers.OAuth.GoogleLogin)
		r.Get("/google/callback", handlers.OAuth.GoogleCallback)
		r.Get("/google/status", handlers.OAuth.GoogleStatus)
	})

	// ==================
	// Managed accounts
	// ==================
	r.Route("/api/managed-accounts", func(r chi.Router) {
		// Authenticated by the signed OAuth state
		r.Get("/callback", handlers.ManagedAccounts.Callback)

		r.Group(func(r chi.Router) {
			r.Use(authRequired)
			r.Get("/", handlers.ManagedAccounts.List)
			r.Get("/add", handlers.ManagedAccounts.Add)
			r.Get("/{id}/reauthorize", handlers.ManagedAccounts.Reauthorize)
			r.Get("/{id}/ads-accounts", handlers.ManagedAccounts.AdsAccounts)
			r.Put("/{id}/ads-account", handlers.ManagedAccounts.SelectAdsAccount)
			r.Delete("/{id}", handlers.ManagedAccounts.Delete)
		})
	})

	// ==================
	// Campaigns (protected)
	// ==================
	r.Route("/api/campaigns/{managedAccountId}", func(r chi.Router) {
		r.Use(authRequired)
		r.Get("/", handlers.Campaigns.List)
		r.Post("/", handlers.Campaigns.Create)
		r.Delete("/{campaignId}", handlers.Campaigns.Delete)
	})

	return r
}
