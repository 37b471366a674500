// Package auth verifies bearer tokens into caller identities. The service
// only consumes the verification contract; issuing tokens is the identity
// provider's business.
package auth

import (
	"context"
	"errors"
	"strings"
)

var ErrInvalidToken = errors.New("invalid access token")

// Identity is the verified caller. Name and Avatar come from the token's
// profile claims and may be empty.
type Identity struct {
	ID     string
	Email  string
	Name   string
	Avatar string
}

// DisplayNameOr returns the best available display name: the profile name,
// else the email local part, else the given fallback.
func (i Identity) DisplayNameOr(fallback string) string {
	if i.Name != "" {
		return i.Name
	}
	if at := strings.IndexByte(i.Email, '@'); at > 0 {
		return i.Email[:at]
	}
	return fallback
}

// Verifier turns a bearer token into a verified identity or fails.
type Verifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}
