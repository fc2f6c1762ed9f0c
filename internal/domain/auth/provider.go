package auth

import (
	"context"

	"golang.org/x/oauth2"

	"adsmanager/internal/domain/account"
)

// OAuthProvider drives the Google authorization code flow.
type OAuthProvider interface {
	AuthCodeURL(callbackURL, state string) string
	Exchange(ctx context.Context, code, callbackURL string) (*GoogleTokens, error)
	TokenSource(ctx context.Context, tokens account.Tokens) oauth2.TokenSource
}

// IdentityVerifier validates id tokens returned by the token exchange.
type IdentityVerifier interface {
	Verify(ctx context.Context, idToken string) (*GoogleIdentity, error)
}

// StateCodec signs and checks the OAuth state parameter.
type StateCodec interface {
	Sign(st State) (state string, nonce string, err error)
	Parse(state, nonce string, purposes ...Purpose) (*State, error)
}
