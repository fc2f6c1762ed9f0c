package google

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"

	"adsmanager/internal/domain/auth"
)

// CertsURL publishes Google's id token signing keys.
const CertsURL = "https://www.googleapis.com/oauth2/v3/certs"

var issuers = map[string]bool{
	"accounts.google.com":         true,
	"https://accounts.google.com": true,
}

type idClaims struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
	jwt.RegisteredClaims
}

// Verifier checks Google id tokens against the published signing keys.
type Verifier struct {
	clientID string
	keys     keyfunc.Keyfunc
}

// NewVerifier creates a verifier for tokens issued to clientID. The key set
// is fetched from certsURL and refreshed in the background until ctx ends;
// an unknown key id triggers a rate limited refetch.
func NewVerifier(ctx context.Context, clientID, certsURL string) (*Verifier, error) {
	if certsURL == "" {
		certsURL = CertsURL
	}
	keys, err := keyfunc.NewDefaultCtx(ctx, []string{certsURL})
	if err != nil {
		return nil, fmt.Errorf("google signing keys: %w", err)
	}
	return &Verifier{clientID: clientID, keys: keys}, nil
}

// Verify validates signature, audience, issuer and expiry and returns the
// identity. Every failure is reported as auth.ErrIdentityUnavailable.
func (v *Verifier) Verify(ctx context.Context, idToken string) (*auth.GoogleIdentity, error) {
	_, span := tracer.Start(ctx, "google.verify_id_token")
	defer span.End()

	identity, err := v.verify(idToken)
	if err != nil {
		span.RecordError(err)
		log.Printf("[google] id token rejected: %v", err)
		return nil, auth.ErrIdentityUnavailable
	}
	return identity, nil
}

func (v *Verifier) verify(idToken string) (*auth.GoogleIdentity, error) {
	if idToken == "" {
		return nil, errors.New("missing id token")
	}

	t, err := jwt.ParseWithClaims(idToken, &idClaims{}, v.keys.Keyfunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithAudience(v.clientID),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}
	c, ok := t.Claims.(*idClaims)
	if !ok || !t.Valid {
		return nil, errors.New("invalid claims")
	}
	if !issuers[c.Issuer] {
		return nil, fmt.Errorf("unexpected issuer %q", c.Issuer)
	}
	if c.Subject == "" || c.Email == "" {
		return nil, errors.New("missing subject or email")
	}

	return &auth.GoogleIdentity{
		Subject:       c.Subject,
		Email:         c.Email,
		EmailVerified: c.EmailVerified,
		Name:          c.Name,
		Picture:       c.Picture,
	}, nil
}
