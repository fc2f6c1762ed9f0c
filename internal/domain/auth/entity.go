package auth

import "time"

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// TokenResponse represents a successful register or login response
type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
}

// GoogleIdentity holds the verified claims of a Google id token.
type GoogleIdentity struct {
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
	Picture       string
}

// GoogleTokens are the credentials returned by the Google token endpoint.
type GoogleTokens struct {
	AccessToken  string
	RefreshToken string
	IDToken      string
	Expiry       time.Time
}

// Purpose identifies which OAuth flow a state token belongs to.
type Purpose string

const (
	PurposeLogin   Purpose = "login"
	PurposeLink    Purpose = "link"
	PurposeRefresh Purpose = "refresh"
)

// State is the payload carried through the Google consent screen.
type State struct {
	Nonce     string
	Purpose   Purpose
	UserID    uint
	AccountID uint
}
