package auth

import "errors"

var (
	ErrGoogleDisabled      = errors.New("google oauth is not configured")
	ErrInvalidState        = errors.New("invalid or expired oauth state")
	ErrInvalidTokens       = errors.New("invalid tokens")
	ErrIdentityUnavailable = errors.New("could not get user information")
	ErrEmailNotVerified    = errors.New("google account email is not verified")
)
