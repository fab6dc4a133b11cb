package user

import (
	"time"

	"github.com/google/uuid"
)

// User represents a durable user account. Accounts are created exactly once,
// at the moment email verification succeeds, never speculatively.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PasswordHash string    `json:"-"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}

// Profile is the auxiliary record every account owns exactly once. It is
// created as an explicit step of account materialization, in the same
// transaction, so the one-to-one invariant holds without event delivery.
type Profile struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	PublicID  uuid.UUID `json:"public_id"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateUserParams carries the fields needed to materialize an account
type CreateUserParams struct {
	Username     string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
}

// UpdateUserParams carries profile-edit fields. Every field is optional;
// nil leaves the stored value unchanged.
type UpdateUserParams struct {
	FirstName    *string
	LastName     *string
	Email        *string
	Username     *string
	PasswordHash *string
}
