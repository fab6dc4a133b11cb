package api

import "time"

// ContactRequest carries the editable fields of a contact
type ContactRequest struct {
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name,omitempty"`
	Phone       string  `json:"phone"`
	Email       string  `json:"email,omitempty"`
	Description string  `json:"description,omitempty"`
	CategoryID  *string `json:"category_id,omitempty"`
}

// ContactResponse is the public view of a contact
type ContactResponse struct {
	ID          string    `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name,omitempty"`
	FullName    string    `json:"full_name"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email,omitempty"`
	Description string    `json:"description,omitempty"`
	CategoryID  *string   `json:"category_id,omitempty"`
	PictureURL  string    `json:"picture_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ContactListResponse is one page of contacts
type ContactListResponse struct {
	Contacts []ContactResponse `json:"contacts"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
}

// CategoryResponse is the public view of a category
type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PictureResponse is returned after a picture upload
type PictureResponse struct {
	Message    string `json:"message"`
	PictureURL string `json:"picture_url"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}
