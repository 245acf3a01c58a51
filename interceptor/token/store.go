package token

import (
	"context"
	"errors"
)

var (
	// ErrNotFound indicates no token was found for the given id.
	ErrNotFound = errors.New("access token not found")
)

// Store keeps access tokens shared between transports or processes.
// Implementations should be safe for concurrent use.
type Store interface {
	// Put inserts or updates a token; a store TTL applies when the token has no expiry.
	Put(ctx context.Context, t *Token) error

	// Get retrieves a token by id. Returns ErrNotFound if missing or expired.
	Get(ctx context.Context, id string) (*Token, error)

	// Revoke deletes a token immediately.
	Revoke(ctx context.Context, id string) error
}
