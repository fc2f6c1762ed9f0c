package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"adsmanager/internal/domain/auth"
)

// StateTTL bounds how long a user may stay on the consent screen.
const StateTTL = 10 * time.Minute

type stateClaims struct {
	Nonce     string       `json:"nonce"`
	Purpose   auth.Purpose `json:"purpose"`
	UserID    uint         `json:"uid,omitempty"`
	AccountID uint         `json:"aid,omitempty"`
	jwt.RegisteredClaims
}

// StateSigner produces the OAuth state parameter. The state is a signed
// token, so the callback learns which user started the flow without a
// server-side session.
type StateSigner struct {
	secret []byte
	now    func() time.Time
}

// NewStateSigner creates a signer whose key is derived from, but distinct
// from, the session secret.
func NewStateSigner(secret string) *StateSigner {
	return &StateSigner{secret: []byte(secret + ":oauth-state"), now: time.Now}
}

// Sign fills in a fresh nonce and returns the encoded state with the nonce.
func (s *StateSigner) Sign(st auth.State) (string, string, error) {
	st.Nonce = uuid.NewString()
	now := s.now()
	claims := &stateClaims{
		Nonce:     st.Nonce,
		Purpose:   st.Purpose,
		UserID:    st.UserID,
		AccountID: st.AccountID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(StateTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", "", fmt.Errorf("sign state: %w", err)
	}
	return signed, st.Nonce, nil
}

// Parse validates the state returned by Google against the expected purpose
// and the nonce kept in the browser cookie.
func (s *StateSigner) Parse(state, nonce string, purposes ...auth.Purpose) (*auth.State, error) {
	t, err := jwt.ParseWithClaims(state, &stateClaims{}, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	c, ok := t.Claims.(*stateClaims)
	if !ok || !t.Valid {
		return nil, ErrInvalidToken
	}
	if nonce == "" || c.Nonce != nonce {
		return nil, fmt.Errorf("%w: nonce mismatch", ErrInvalidToken)
	}

	allowed := len(purposes) == 0
	for _, p := range purposes {
		if c.Purpose == p {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("%w: unexpected purpose %q", ErrInvalidToken, c.Purpose)
	}

	return &auth.State{Nonce: c.Nonce, Purpose: c.Purpose, UserID: c.UserID, AccountID: c.AccountID}, nil
}
