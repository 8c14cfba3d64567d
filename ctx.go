package canvas

import (
	"context"
)

var principalCtxKey = &contextKey{"canvas_principal"}

type contextKey struct {
	name string
}

// Principal is the authenticated canvas caller. The access token is never
// kept here.
type Principal struct {
	User           any
	Profile        Profile
	OrganizationID string
	UserID         string
	Environment    map[string]any
}

// WithPrincipal stores the principal in ctx.
func WithPrincipal(ctx context.Context, principal *Principal) context.Context {
	return context.WithValue(ctx, principalCtxKey, principal)
}

// PrincipalFromContext returns the principal stored by WithPrincipal.
func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	if ctx == nil {
		return nil, false
	}
	principal, ok := ctx.Value(principalCtxKey).(*Principal)
	return principal, ok && principal != nil
}
