package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("BASE_URL", "")
	t.Setenv("CORS_ORIGINS", "")
	t.Setenv("FRONTEND_URL", "")
	t.Setenv("JWT_EXPIRES_IN", "")
	t.Setenv("GOOGLE_CLIENT_ID", "")
	t.Setenv("GOOGLE_CLIENT_SECRET", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != "8005" {
		t.Fatalf("Port = %q, want 8005", cfg.Port)
	}
	if cfg.DBDriver != "sqlite" {
		t.Fatalf("DBDriver = %q, want sqlite", cfg.DBDriver)
	}
	if cfg.JWTExpiresIn != 24*time.Hour {
		t.Fatalf("JWTExpiresIn = %v, want 24h", cfg.JWTExpiresIn)
	}
	if !reflect.DeepEqual(cfg.CORSOrigins, []string{"http://localhost:5173"}) {
		t.Fatalf("CORSOrigins = %v, want the frontend origin", cfg.CORSOrigins)
	}
	if cfg.GoogleAdsAPIVersion != "v17" {
		t.Fatalf("GoogleAdsAPIVersion = %q, want v17", cfg.GoogleAdsAPIVersion)
	}
	if cfg.GoogleEnabled() {
		t.Fatal("expected Google to be disabled without credentials")
	}
	if got := cfg.LoginCallbackURL(); got != "http://localhost:8005/auth/google/callback" {
		t.Fatalf("LoginCallbackURL() = %q", got)
	}
	if got := cfg.LinkCallbackURL(); got != "http://localhost:8005/api/managed-accounts/callback" {
		t.Fatalf("LinkCallbackURL() = %q", got)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	t.Setenv("BASE_URL", "https://api.example.com/")
	t.Setenv("CORS_ORIGINS", " https://a.example.com/, ,https://b.example.com ")
	t.Setenv("JWT_EXPIRES_IN", "90m")
	t.Setenv("GOOGLE_CLIENT_ID", "cid")
	t.Setenv("GOOGLE_CLIENT_SECRET", "secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.BaseURL != "https://api.example.com" {
		t.Fatalf("BaseURL = %q, want trailing slash trimmed", cfg.BaseURL)
	}
	want := []string{"https://a.example.com", "https://b.example.com"}
	if !reflect.DeepEqual(cfg.CORSOrigins, want) {
		t.Fatalf("CORSOrigins = %v, want %v", cfg.CORSOrigins, want)
	}
	if cfg.JWTExpiresIn != 90*time.Minute {
		t.Fatalf("JWTExpiresIn = %v, want 90m", cfg.JWTExpiresIn)
	}
	if !cfg.GoogleEnabled() {
		t.Fatal("expected Google to be enabled")
	}
}

func TestLoadRejectsBadDriver(t *testing.T) {
	tests := []struct {
		name   string
		driver string
		dsn    string
	}{
		{"unknown driver", "mysql", ""},
		{"postgres without dsn", "postgres", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("DB_DRIVER", tc.driver)
			t.Setenv("DATABASE_URL", tc.dsn)
			if _, err := Load(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
