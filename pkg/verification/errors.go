package verification

import "errors"

var (
	// ErrCodeNotFound is returned when no unused verification code exists for an email
	ErrCodeNotFound = errors.New("verification code not found")

	// ErrCodeExpired is returned when a verification code has passed its expiry time
	ErrCodeExpired = errors.New("verification code has expired")

	// ErrCodeMismatch is returned when the submitted value does not match the stored code
	ErrCodeMismatch = errors.New("verification code does not match")

	// ErrCodeAlreadyUsed is returned when a verification code has already been used
	ErrCodeAlreadyUsed = errors.New("verification code has already been used")
)
