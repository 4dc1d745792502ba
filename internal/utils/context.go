package utils

import "context"

type contextKey struct{}

var identityKey contextKey

// Identity is the authenticated caller resolved from the access token.
type Identity struct {
	CustomerID uint
	Email      string
	Role       string
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFrom reports false for anonymous requests and for a zero customer id.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok && id.CustomerID != 0
}

func CustomerIDFrom(ctx context.Context) (uint, bool) {
	id, ok := IdentityFrom(ctx)
	return id.CustomerID, ok
}
