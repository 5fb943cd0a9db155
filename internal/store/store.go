package store

import (
	"context"

	"github.com/tasknotify/telegram-relay-go/internal/model"
)

// SessionStore persists session records keyed by id. Each record is an
// independent unit: concurrent sessions never contend on shared state and
// deleting one record cannot affect another.
//
// Lookups return (nil, nil) when no record exists.
type SessionStore interface {
	// Create durably persists a session. Callers must not send any
	// message referencing the session before Create returns.
	Create(ctx context.Context, session *model.Session) error

	// Delete removes a session by id. Deleting a nonexistent id is not
	// an error.
	Delete(ctx context.Context, id string) error

	// FindByToken returns the live session for a reply token.
	FindByToken(ctx context.Context, token string) (*model.Session, error)

	// DeleteExpired removes sessions past their deadline and returns how
	// many were removed. Backends with server-side expiry may no-op.
	DeleteExpired(ctx context.Context) (int64, error)
}
