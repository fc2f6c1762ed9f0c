package google

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"golang.org/x/oauth2"

	"adsmanager/internal/domain/account"
	"adsmanager/internal/domain/auth"
)

func newTokenServer(t *testing.T, handler http.HandlerFunc) (*Provider, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	p := NewProviderWithEndpoint("client-id", "client-secret", oauth2.Endpoint{
		AuthURL:   srv.URL + "/auth",
		TokenURL:  srv.URL + "/token",
		AuthStyle: oauth2.AuthStyleInParams,
	})
	return p, srv
}

func TestAuthCodeURL(t *testing.T) {
	p := NewProvider("client-id", "secret")
	raw := p.AuthCodeURL("http://localhost:8005/api/managed-accounts/callback", "state-123")

	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	q := u.Query()

	checks := map[string]string{
		"client_id":     "client-id",
		"redirect_uri":  "http://localhost:8005/api/managed-accounts/callback",
		"state":         "state-123",
		"access_type":   "offline",
		"prompt":        "consent",
		"response_type": "code",
	}
	for key, want := range checks {
		if got := q.Get(key); got != want {
			t.Errorf("%s = %q, want %q", key, got, want)
		}
	}
	for _, scope := range Scopes {
		if !strings.Contains(q.Get("scope"), scope) {
			t.Errorf("scope %q missing from %q", scope, q.Get("scope"))
		}
	}
}

func TestExchange(t *testing.T) {
	p, _ := newTokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		if r.Form.Get("code") != "good-code" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		if r.Form.Get("redirect_uri") != "http://cb" {
			t.Errorf("redirect_uri = %q", r.Form.Get("redirect_uri"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"at","refresh_token":"rt","id_token":"idt","token_type":"Bearer","expires_in":3600}`))
	})

	tokens, err := p.Exchange(context.Background(), "good-code", "http://cb")
	if err != nil {
		t.Fatalf("Exchange() error = %v", err)
	}
	if tokens.AccessToken != "at" || tokens.RefreshToken != "rt" || tokens.IDToken != "idt" {
		t.Fatalf("tokens = %+v", tokens)
	}
	if tokens.Expiry.IsZero() {
		t.Error("expected expiry to be set")
	}

	for _, code := range []string{"bad-code", ""} {
		if _, err := p.Exchange(context.Background(), code, "http://cb"); !errors.Is(err, auth.ErrInvalidTokens) {
			t.Errorf("Exchange(%q) error = %v, want ErrInvalidTokens", code, err)
		}
	}
}

func TestTokenSourceRefreshes(t *testing.T) {
	p, _ := newTokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		if r.Form.Get("grant_type") != "refresh_token" || r.Form.Get("refresh_token") != "stored-rt" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"fresh","token_type":"Bearer","expires_in":3600}`))
	})

	tok, err := p.TokenSource(context.Background(), account.Tokens{AccessToken: "stale", RefreshToken: "stored-rt"}).Token()
	if err != nil {
		t.Fatalf("Token() error = %v", err)
	}
	if tok.AccessToken != "fresh" {
		t.Fatalf("AccessToken = %q, want fresh", tok.AccessToken)
	}

	tok, err = p.TokenSource(context.Background(), account.Tokens{AccessToken: "only-access"}).Token()
	if err != nil {
		t.Fatalf("Token() error = %v", err)
	}
	if tok.AccessToken != "only-access" {
		t.Fatalf("AccessToken = %q, want only-access", tok.AccessToken)
	}
}
