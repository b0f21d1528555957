package middleware

import (
	"context"

	"github.com/mantomate/storefront-backend/pkg/auth"
)

type contextKey string

const ctxPrincipal contextKey = "principal"

// PrincipalFromContext returns the authenticated shopper, or the zero
// Principal on public routes.
func PrincipalFromContext(ctx context.Context) auth.Principal {
	if ctx == nil {
		return auth.Principal{}
	}
	if v, ok := ctx.Value(ctxPrincipal).(auth.Principal); ok {
		return v
	}
	return auth.Principal{}
}

// UserIDFromContext returns the identity provider subject of the caller.
func UserIDFromContext(ctx context.Context) string {
	return PrincipalFromContext(ctx).Subject
}

// WithPrincipal injects the authenticated shopper into the context.
func WithPrincipal(ctx context.Context, principal auth.Principal) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxPrincipal, principal)
}
