package httpx

import "context"

// Identity is the resolved caller attached to the request context by the
// authentication middleware. Admin is a global flag independent of any
// per-trip grant.
type Identity struct {
	ID    string
	Email string
	Name  string
	Admin bool
}

type ctxKey string

const ctxKeyIdentity ctxKey = "identity"

// ContextWithIdentity attaches the resolved identity to ctx.
func ContextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKeyIdentity, id)
}

// IdentityFromContext returns the identity attached by the authentication
// middleware, if any.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKeyIdentity).(Identity)
	return id, ok
}
