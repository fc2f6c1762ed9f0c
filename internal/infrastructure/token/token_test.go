package token

import (
	"errors"
	"testing"
	"time"

	"adsmanager/internal/domain/auth"
)

func TestIssuerRoundTrip(t *testing.T) {
	iss := NewIssuer("secret", time.Hour)

	signed, expiresAt, err := iss.Issue(42, "a@b.com", "Alice")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if time.Until(expiresAt) <= 0 {
		t.Fatalf("expiresAt %v is not in the future", expiresAt)
	}

	claims, err := iss.Parse(signed)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if claims.UserID != 42 || claims.Email != "a@b.com" || claims.Name != "Alice" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestIssuerRejects(t *testing.T) {
	iss := NewIssuer("secret", time.Hour)
	signed, _, err := iss.Issue(1, "a@b.com", "A")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	expired := NewIssuer("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, _, err := expired.Issue(1, "a@b.com", "A")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	tests := []struct {
		name  string
		iss   *Issuer
		token string
	}{
		{"wrong secret", NewIssuer("other", time.Hour), signed},
		{"expired", iss, old},
		{"garbage", iss, "not-a-jwt"},
		{"empty", iss, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.iss.Parse(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("Parse() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestStateSigner(t *testing.T) {
	s := NewStateSigner("secret")

	state, nonce, err := s.Sign(auth.State{Purpose: auth.PurposeRefresh, UserID: 7, AccountID: 3})
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}
	if nonce == "" {
		t.Fatal("expected a nonce")
	}

	got, err := s.Parse(state, nonce, auth.PurposeLink, auth.PurposeRefresh)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got.Purpose != auth.PurposeRefresh || got.UserID != 7 || got.AccountID != 3 || got.Nonce != nonce {
		t.Fatalf("state = %+v", got)
	}

	if _, err := s.Parse(state, "other-nonce", auth.PurposeRefresh); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("nonce mismatch error = %v", err)
	}
	if _, err := s.Parse(state, "", auth.PurposeRefresh); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("missing nonce error = %v", err)
	}
	if _, err := s.Parse(state, nonce, auth.PurposeLogin); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("purpose mismatch error = %v", err)
	}
	if _, err := NewStateSigner("other").Parse(state, nonce); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("wrong secret error = %v", err)
	}

	late := NewStateSigner("secret")
	late.now = func() time.Time { return time.Now().Add(StateTTL + time.Minute) }
	if _, err := late.Parse(state, nonce, auth.PurposeRefresh); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expired state error = %v", err)
	}
}

func TestStateIsNotASessionToken(t *testing.T) {
	s := NewStateSigner("secret")
	state, _, err := s.Sign(auth.State{Purpose: auth.PurposeLogin})
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}
	if _, err := NewIssuer("secret", time.Hour).Parse(state); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("state accepted as session token: %v", err)
	}
}
