package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	authService "adsmanager/internal/application/auth"
	campaignService "adsmanager/internal/application/campaign"
	"adsmanager/internal/application/linkage"
	"adsmanager/internal/delivery/http/handler"
	"adsmanager/internal/delivery/http/middleware"
	"adsmanager/internal/delivery/http/router"
	domainauth "adsmanager/internal/domain/auth"
	"adsmanager/internal/infrastructure/config"
	"adsmanager/internal/infrastructure/database"
	"adsmanager/internal/infrastructure/events"
	"adsmanager/internal/infrastructure/google"
	"adsmanager/internal/infrastructure/googleads"
	"adsmanager/internal/infrastructure/repository"
	"adsmanager/internal/infrastructure/telemetry"
	"adsmanager/internal/infrastructure/token"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	shutdownTracing, err := telemetry.Setup(ctx, cfg.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		log.Fatal("Failed to set up tracing:", err)
	}
	defer shutdownTracing(context.Background())

	// Initialize database
	db, err := database.New(database.Options{
		Driver:   cfg.DBDriver,
		Path:     cfg.DatabasePath,
		URL:      cfg.DatabaseURL,
		LogLevel: cfg.DBLogLevel,
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	accountRepo := repository.NewManagedAccountRepository(db)
	campaignRepo := repository.NewCampaignRepository(db)

	// Event publishing is optional
	var publisher events.Publisher = events.Nop{}
	if cfg.RabbitURL != "" {
		p, err := events.NewAMQPPublisher(cfg.RabbitURL, cfg.EventsExchange)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ:", err)
		}
		defer p.Close()
		publisher = p
	}

	// Google collaborators stay nil when OAuth is not configured
	var (
		provider domainauth.OAuthProvider
		verifier domainauth.IdentityVerifier
	)
	if cfg.GoogleEnabled() {
		provider = google.NewProvider(cfg.GoogleClientID, cfg.GoogleClientSecret)
		v, err := google.NewVerifier(ctx, cfg.GoogleClientID, cfg.GoogleCertsURL)
		if err != nil {
			log.Fatal("Failed to load Google signing keys:", err)
		}
		verifier = v
	}
	states := token.NewStateSigner(cfg.JWTSecret)
	adsClient := googleads.NewClient(googleads.Options{
		BaseURL:         cfg.GoogleAdsBaseURL,
		Version:         cfg.GoogleAdsAPIVersion,
		DeveloperToken:  cfg.GoogleAdsDeveloperToken,
		LoginCustomerID: cfg.GoogleAdsLoginCustomerID,
	})

	// Initialize services
	authSvc := authService.NewService(userRepo, token.NewIssuer(cfg.JWTSecret, cfg.JWTExpiresIn), authService.GoogleLogin{
		Provider:    provider,
		Verifier:    verifier,
		States:      states,
		CallbackURL: cfg.LoginCallbackURL(),
	})
	linkSvc := linkage.NewService(linkage.Deps{
		Accounts:    accountRepo,
		Provider:    provider,
		Verifier:    verifier,
		States:      states,
		Ads:         adsClient,
		Events:      publisher,
		CallbackURL: cfg.LinkCallbackURL(),
	})
	campaignSvc := campaignService.NewService(campaignService.Deps{
		Accounts:  accountRepo,
		Campaigns: campaignRepo,
		Provider:  provider,
		Ads:       adsClient,
		Events:    publisher,
	})

	// Setup routes
	handlers := router.Handlers{
		Auth:            handler.NewAuthHandler(authSvc),
		OAuth:           handler.NewOAuthHandler(authSvc, cfg.FrontendURL),
		ManagedAccounts: handler.NewManagedAccountHandler(linkSvc, cfg.FrontendURL),
		Campaigns:       handler.NewCampaignHandler(campaignSvc),
	}
	mux := router.Setup(handlers, authSvc, middleware.CORSConfig{AllowedOrigins: cfg.CORSOrigins})

	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	fmt.Println("=================================")
	fmt.Println("       AdsManager Server")
	fmt.Println("=================================")
	fmt.Printf("Server:    http://localhost%s\n", addr)
	fmt.Printf("Database:  %s\n", db.GetType())
	fmt.Printf("Frontend:  %s\n", cfg.FrontendURL)
	if cfg.GoogleEnabled() {
		fmt.Println("Google:    Enabled")
	} else {
		fmt.Println("Google:    Disabled")
	}
	if cfg.RabbitURL != "" {
		fmt.Printf("Events:    %s\n", cfg.EventsExchange)
	}
	fmt.Println("=================================")

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error:", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}
}
