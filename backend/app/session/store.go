// Package session keeps the server-side half of a login: a random session id
// bound to a user id, with a lifetime. Destroying the id ends the login even
// if the browser still presents a cookie for it.
package session

import (
	"context"
	"errors"
	"time"
)

var ErrNoSession = errors.New("session not found")

type Store interface {
	// Create binds a fresh session id to userID for ttl.
	Create(ctx context.Context, userID uint, ttl time.Duration) (string, error)
	// Lookup returns the user bound to sid, or ErrNoSession.
	Lookup(ctx context.Context, sid string) (uint, error)
	// Destroy forgets sid. Unknown ids are not an error.
	Destroy(ctx context.Context, sid string) error
	Close() error
}
