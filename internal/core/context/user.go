// Package context provides request-scoped value extraction.
package context

import (
	"context"
)

// Roles known to the service. The core trusts whatever the authentication
// layer attached; it never re-verifies identity.
const (
	RoleAdmin   = "ADMIN"
	RoleManager = "MANAGER"
	RoleStaff   = "STAFF"
)

// UserContext contains authenticated user information.
type UserContext struct {
	UserID string
	Email  string
	Role   string
}

type userContextKey struct{}

// WithUser adds UserContext to context.
func WithUser(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// GetUser returns UserContext from context, or nil.
func GetUser(ctx context.Context) *UserContext {
	if user, ok := ctx.Value(userContextKey{}).(*UserContext); ok {
		return user
	}
	return nil
}

// GetUserID returns the authenticated user ID, or "" when unauthenticated.
func GetUserID(ctx context.Context) string {
	if user := GetUser(ctx); user != nil {
		return user.UserID
	}
	return ""
}

// HasRole reports whether the authenticated user holds one of the roles.
func HasRole(ctx context.Context, roles ...string) bool {
	user := GetUser(ctx)
	if user == nil {
		return false
	}
	for _, r := range roles {
		if user.Role == r {
			return true
		}
	}
	return false
}
