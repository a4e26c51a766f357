// Package auth implements credential hashing, session tokens, the per
// request identity and ownership checks.
package auth

import (
	"context"
	"time"
)

// Identity is the authenticated caller as carried by a session token.
type Identity struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	ProfileImageURL string    `json:"profileImageURL"`
	Role            string    `json:"role"`
	ExpiresAt       time.Time `json:"expiresAt"`
}

type ctxKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// IdentityFromContext returns the identity stored by WithIdentity, or nil
// for anonymous requests.
func IdentityFromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(ctxKey{}).(*Identity)
	return id
}
