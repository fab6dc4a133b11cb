package api

// RegisterRequest represents a registration submission
type RegisterRequest struct {
	Username        string `json:"username"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name,omitempty"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

// RegisterResponse is returned after a registration is staged
type RegisterResponse struct {
	Message string `json:"message"`
	Email   string `json:"email"`
}

// VerifyStatusResponse describes the registration awaiting verification
type VerifyStatusResponse struct {
	Email string `json:"email"`
}

// VerifyRequest carries the emailed code
type VerifyRequest struct {
	Code string `json:"code"`
}

// VerifyResponse is returned once the account is created
type VerifyResponse struct {
	Message  string `json:"message"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// ResendResponse is returned after a fresh code is issued
type ResendResponse struct {
	Message string `json:"message"`
	Email   string `json:"email"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}
