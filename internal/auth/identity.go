package auth

import "context"

// Identity is the resolved caller: the auth provider's user id doubles
// as the creator id everywhere in the store.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type contextKey string

const identityKey contextKey = "identity"

func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey).(Identity)
	return identity, ok
}
