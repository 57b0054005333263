// Package http provides HTTP handlers for user registration and token
// issuance, and the bearer authentication middleware.
package http

import (
	"context"

	"github.com/allisson/deliveryqueue/internal/user/domain"
)

// userKey is the context key of the authenticated user.
type userKey struct{}

// WithUser stores the authenticated user in ctx.
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// GetUser returns the authenticated user, if any.
func GetUser(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userKey{}).(*domain.User)
	return user, ok && user != nil
}
