package google

import (
	"context"
	"log"

	"go.opentelemetry.io/otel"
	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"

	"adsmanager/internal/domain/account"
	"adsmanager/internal/domain/auth"
)

var tracer = otel.Tracer("adsmanager/google")

// Scopes requested on every consent screen: identity plus Google Ads.
var Scopes = []string{
	"https://www.googleapis.com/auth/userinfo.profile",
	"https://www.googleapis.com/auth/userinfo.email",
	"https://www.googleapis.com/auth/adwords",
}

// Provider wraps the OAuth client configuration. The redirect URI is passed
// per call because sign-in and account linking use different callbacks.
type Provider struct {
	config oauth2.Config
}

// NewProvider creates a provider for Google's OAuth endpoints.
func NewProvider(clientID, clientSecret string) *Provider {
	return NewProviderWithEndpoint(clientID, clientSecret, googleoauth.Endpoint)
}

// NewProviderWithEndpoint creates a provider against a custom endpoint.
func NewProviderWithEndpoint(clientID, clientSecret string, endpoint oauth2.Endpoint) *Provider {
	return &Provider{config: oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Scopes:       Scopes,
		Endpoint:     endpoint,
	}}
}

// ClientID is the audience expected in id tokens.
func (p *Provider) ClientID() string {
	return p.config.ClientID
}

func (p *Provider) withRedirect(callbackURL string) *oauth2.Config {
	cfg := p.config
	cfg.RedirectURL = callbackURL
	return &cfg
}

// AuthCodeURL builds the consent screen URL. Offline access with a forced
// consent prompt makes Google return a refresh token every time.
func (p *Provider) AuthCodeURL(callbackURL, state string) string {
	return p.withRedirect(callbackURL).AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// Exchange trades an authorization code for tokens.
func (p *Provider) Exchange(ctx context.Context, code, callbackURL string) (*auth.GoogleTokens, error) {
	ctx, span := tracer.Start(ctx, "google.exchange")
	defer span.End()

	if code == "" {
		return nil, auth.ErrInvalidTokens
	}

	tok, err := p.withRedirect(callbackURL).Exchange(ctx, code)
	if err != nil {
		span.RecordError(err)
		log.Printf("[google] token exchange failed: %v", err)
		return nil, auth.ErrInvalidTokens
	}
	if tok.AccessToken == "" {
		return nil, auth.ErrInvalidTokens
	}

	idToken, _ := tok.Extra("id_token").(string)
	return &auth.GoogleTokens{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		IDToken:      idToken,
		Expiry:       tok.Expiry,
	}, nil
}

// TokenSource returns a source for stored delegated tokens. With a refresh
// token the access token is always renewed on first use, since its expiry
// is not persisted.
func (p *Provider) TokenSource(ctx context.Context, tokens account.Tokens) oauth2.TokenSource {
	tok := &oauth2.Token{AccessToken: tokens.AccessToken, TokenType: "Bearer"}
	if tokens.RefreshToken != "" {
		tok = &oauth2.Token{RefreshToken: tokens.RefreshToken, TokenType: "Bearer"}
	}
	return p.config.TokenSource(ctx, tok)
}
