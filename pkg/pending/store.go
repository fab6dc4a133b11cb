package pending

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no pending registration exists for a session
var ErrNotFound = errors.New("pending registration not found")

// Registration holds not-yet-committed registration data. The password lives
// only here, in transient state, until verification succeeds and the account
// is materialized; it is never written to durable storage in clear text.
type Registration struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// Store is a keyed, TTL-bound staging area for pending registrations.
// State is only visible to the session that created it.
type Store interface {
	// Put associates the registration with the session, overwriting any
	// prior pending registration for that session.
	Put(ctx context.Context, sessionID string, reg Registration) error

	// Get returns the pending registration for the session, or ErrNotFound.
	Get(ctx context.Context, sessionID string) (*Registration, error)

	// Clear removes the association.
	Clear(ctx context.Context, sessionID string) error
}
