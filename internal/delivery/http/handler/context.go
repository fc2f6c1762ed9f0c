package handler

import (
	"context"

	"adsmanager/internal/domain/user"
)

// contextKey is the type for context keys
type contextKey string

// UserContextKey is the key used to store user in context
const UserContextKey contextKey = "user"

// WithUser returns a copy of ctx carrying the authenticated user.
func WithUser(ctx context.Context, u *user.User) context.Context {
	return context.WithValue(ctx, UserContextKey, u)
}

// GetUserFromContext retrieves the user from request context
func GetUserFromContext(ctx context.Context) *user.User {
	u, ok := ctx.Value(UserContextKey).(*user.User)
	if !ok {
		return nil
	}
	return u
}
