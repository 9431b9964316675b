// Package session persists the CLI's login state (username and the current
// token pair) in the local SQLite database, one row per key.
package session

import (
	"context"
)

// Keys stored by the CLI.
const (
	KeyUsername     = "username"
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
)

type Repository interface {
	// Get returns ("", false, nil) when key is not stored.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
