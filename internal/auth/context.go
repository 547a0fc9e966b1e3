package auth

import (
	"context"

	"github.com/umersaeed/notesapi/internal/token"
)

type contextKey struct{}

// WithUser attaches the token's user snapshot to the request context.
func WithUser(ctx context.Context, u token.UserClaims) context.Context {
	return context.WithValue(ctx, contextKey{}, u)
}

// FromContext returns the authenticated user snapshot, if any.
func FromContext(ctx context.Context) (token.UserClaims, bool) {
	u, ok := ctx.Value(contextKey{}).(token.UserClaims)
	return u, ok
}

func UserID(ctx context.Context) int64 {
	u, ok := FromContext(ctx)
	if !ok {
		return 0
	}
	return u.ID
}
