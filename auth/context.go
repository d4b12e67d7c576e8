// Context utilities for carrying the authenticated identity through a request.
// The middleware produces an explicit context value; handlers read it back
// through the typed accessor. Nothing is attached to globals or mutated on the
// request object itself.
package auth

import (
	"context"

	"github.com/user/taskdeck-go/users"
)

// contextKey is a private type for context keys so no other package can
// collide with or forge the stored value.
type contextKey string

const userContextKey contextKey = "auth_user"

// NewContextWithUser returns a child context carrying the resolved user.
func NewContextWithUser(ctx context.Context, user *users.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext extracts the authenticated user from the context.
// The second return value reports whether a user was present.
func UserFromContext(ctx context.Context) (*users.User, bool) {
	user, ok := ctx.Value(userContextKey).(*users.User)
	return user, ok
}
