package httpapi

import "context"

// Principal identifies the calling user. Authentication lives at the edge
// proxy; this service trusts the X-User-ID header it forwards.
type Principal struct {
	UserID string
}

type contextKey string

const principalContextKey contextKey = "auth_principal"

func withPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

func principalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalContextKey).(Principal)
	return p, ok
}
