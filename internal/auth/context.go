package auth

import (
	"context"

	"github.com/google/uuid"
)

// SystemUserID identifies requests authenticated with the API key
var SystemUserID = uuid.Nil

// UserContext holds authenticated user information
type UserContext struct {
	UserID      uuid.UUID
	DisplayName string
	Email       string
	// IsSystem is set for API key callers
	IsSystem bool
}

type contextKey string

const userContextKey contextKey = "userContext"

// WithUserContext adds user context to the context
func WithUserContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// FromContext extracts user context from the context
func FromContext(ctx context.Context) (*UserContext, bool) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	return user, ok && user != nil
}

// MustFromContext extracts user context or panics. Only call it behind
// Authenticate.
func MustFromContext(ctx context.Context) *UserContext {
	user, ok := FromContext(ctx)
	if !ok {
		panic("user context not found in context")
	}
	return user
}

// UserIDFromContext returns the authenticated user id, or uuid.Nil
func UserIDFromContext(ctx context.Context) uuid.UUID {
	if user, ok := FromContext(ctx); ok {
		return user.UserID
	}
	return uuid.Nil
}
