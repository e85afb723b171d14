// Package refreshtoken tracks the single currently valid refresh credential
// per user. The store is the authority the refresh endpoint compares against;
// overwriting an entry silently invalidates whatever an older client still
// holds (single active session per user).
package refreshtoken

import (
	"context"

	"shopgate/internal/auth/token"
)

// TTL matches the refresh credential lifetime so orphaned entries expire on
// their own.
const TTL = token.RefreshTokenTTL

// Store is the credential store contract.
//
// Error Contract:
// - Get returns an error wrapping sentinel.ErrNotFound when no entry exists.
// - Put overwrites unconditionally; last writer wins under concurrent logins.
// - Delete is idempotent; the returned bool is diagnostic only, never used
//   for control flow.
// - Backend I/O failures come back wrapping sentinel.ErrUnavailable so
//   callers can answer 503 instead of treating them as revocation.
type Store interface {
	Put(ctx context.Context, userID, refreshToken string) error
	Get(ctx context.Context, userID string) (string, error)
	Delete(ctx context.Context, userID string) (bool, error)
}
