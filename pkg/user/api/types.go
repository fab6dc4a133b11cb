package api

import "time"

// UserResponse is the public view of an account
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ProfileResponse combines the account with its profile record
type ProfileResponse struct {
	User     UserResponse `json:"user"`
	PublicID string       `json:"public_id"`
}

// UpdateUserRequest carries editable account fields; absent fields are
// left unchanged
type UpdateUserRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}
