package auth

import "context"

type ctxKey struct{}

// WithContext stores the verified identity in ctx. Called by the auth
// middleware after token validation.
func WithContext(ctx context.Context, ident *Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, ident)
}

// FromContext extracts the verified identity from ctx.
func FromContext(ctx context.Context) (*Identity, bool) {
	ident, ok := ctx.Value(ctxKey{}).(*Identity)
	return ident, ok && ident != nil
}
