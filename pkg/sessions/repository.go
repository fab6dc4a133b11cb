package sessions

import (
	"context"
	"errors"
)

// ErrSessionNotFound is returned when no session exists for the given ID
var ErrSessionNotFound = errors.New("session not found")

// Repository defines the interface for session storage
type Repository interface {
	// Create stores a new session
	Create(ctx context.Context, session *Session) error

	// Get retrieves a session by ID
	Get(ctx context.Context, id string) (*Session, error)

	// Update replaces a stored session
	Update(ctx context.Context, session *Session) error

	// Delete removes a session by ID
	Delete(ctx context.Context, id string) error

	// DeleteExpired removes expired sessions (for maintenance)
	DeleteExpired(ctx context.Context) error
}
