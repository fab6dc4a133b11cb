package contact

import (
	"time"

	"github.com/google/uuid"
)

// Category groups contacts ("Family", "Work"). Categories are shared across
// the installation and managed administratively.
type Category struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Contact represents an address book entry owned by one user
type Contact struct {
	ID          uuid.UUID  `json:"id"`
	OwnerID     uuid.UUID  `json:"owner_id"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name,omitempty"`
	Phone       string     `json:"phone"`
	Email       string     `json:"email,omitempty"`
	Description string     `json:"description,omitempty"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	PictureKey  string     `json:"-"`
	Show        bool       `json:"show"`
	CreatedAt   time.Time  `json:"created_at"`
}

// FullName returns the display name for a contact
func (c *Contact) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

// ContactForm carries the editable fields of a contact
type ContactForm struct {
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Phone       string     `json:"phone"`
	Email       string     `json:"email"`
	Description string     `json:"description"`
	CategoryID  *uuid.UUID `json:"category_id"`
}

// ListParams controls contact listing
type ListParams struct {
	OwnerID uuid.UUID
	Search  string
	Limit   int
	Offset  int
}

// ContactPage is one page of a contact listing
type ContactPage struct {
	Contacts []Contact `json:"contacts"`
	Total    int       `json:"total"`
}
