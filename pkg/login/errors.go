package login

import "errors"

var (
	// ErrInvalidCredentials is returned when the username or password is wrong.
	// Callers must not expose which of the two failed.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrAccountNotActive is returned when the account exists but is disabled
	ErrAccountNotActive = errors.New("account is not active")
)
