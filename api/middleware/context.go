package middleware

import (
	"context"

	pkgauth "github.com/quikapp/user-service/pkg/auth"
)

type contextKey string

const ctxPrincipal contextKey = "principal"

// WithPrincipal injects the verified caller identity into the context.
func WithPrincipal(ctx context.Context, principal pkgauth.Principal) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxPrincipal, principal)
}

// PrincipalFromContext returns the caller identity, if the request
// authenticated. Unauthenticated requests return ok=false.
func PrincipalFromContext(ctx context.Context) (pkgauth.Principal, bool) {
	if ctx == nil {
		return pkgauth.Principal{}, false
	}
	if v, ok := ctx.Value(ctxPrincipal).(pkgauth.Principal); ok {
		return v, true
	}
	return pkgauth.Principal{}, false
}
