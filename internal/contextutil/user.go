package contextutil

import (
	"context"

	"klinik-ai/internal/privacy"
)

const userKey contextKey = "user"

// WithUser returns a context carrying the acting user's identity.
func WithUser(ctx context.Context, user privacy.UserContext) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext extracts the acting user from context. The second return
// is false when no identity was attached to the request.
func UserFromContext(ctx context.Context) (privacy.UserContext, bool) {
	user, ok := ctx.Value(userKey).(privacy.UserContext)
	return user, ok
}
