package api

import (
	"context"

	"github.com/skillwave-academy/content-service/auth"
)

type keyType string

const identityKey keyType = "identity"

// ctxWithIdentity adds a verified caller identity to the context
func ctxWithIdentity(ctx context.Context, identity auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// identityFromCtx retrieves the verified caller, if the request passed the
// auth middleware.
func identityFromCtx(ctx context.Context) (auth.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(auth.Identity)
	return identity, ok
}
