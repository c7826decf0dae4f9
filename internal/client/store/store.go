// Package store implements the persisted session store: a durable key-value
// table holding the auth token and the cached user record, surviving process
// restarts. The store is a mirror of in-memory session state, not a second
// source of truth; no expiry is enforced client-side.
package store

import (
	"context"

	"github.com/vidtube/client/internal/client/models"
)

// Keys used by the session store.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// Store is the durable local storage contract.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error

	// Token returns the stored auth token, or "" when absent.
	Token(ctx context.Context) (string, error)

	// User returns the stored user record, or nil when absent or corrupt
	// (missing id). A corrupt record is discarded, not returned.
	User(ctx context.Context) (*models.User, error)

	// SaveSession writes token and user in a single transaction.
	SaveSession(ctx context.Context, token string, user *models.User) error

	// ClearSession removes the token and user keys.
	ClearSession(ctx context.Context) error

	Close() error
}
