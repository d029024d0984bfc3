package middleware

import (
	"context"

	"github.com/baharkarakas/bloglist-backend/internal/auth"
)

type userKey struct{}

func WithClaims(ctx context.Context, c *auth.Claims) context.Context {
	return context.WithValue(ctx, userKey{}, c)
}

// ClaimsFrom returns the verified token claims, or nil on unauthenticated requests.
func ClaimsFrom(ctx context.Context) *auth.Claims {
	c, _ := ctx.Value(userKey{}).(*auth.Claims)
	return c
}
