package user

import "errors"

var (
	// ErrUserNotFound is returned when a user is not found
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameTaken is returned when the username already belongs to an account
	ErrUsernameTaken = errors.New("username already taken")

	// ErrEmailTaken is returned when the email already belongs to an account
	ErrEmailTaken = errors.New("email already registered")
)
