package sessions

import (
	"time"

	"github.com/google/uuid"
)

// Session represents a browser session. Anonymous visitors get a session too,
// since the registration flow stages data against it before any account
// exists. UserID is nil until the session is authenticated.
type Session struct {
	ID           string     `json:"id"`
	UserID       *uuid.UUID `json:"user_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	ExpiresAt    time.Time  `json:"expires_at"`
	LastActivity time.Time  `json:"last_activity"`
}

// IsAuthenticated reports whether the session is bound to an account
func (s *Session) IsAuthenticated() bool {
	return s.UserID != nil
}

// IsExpired reports whether the session has passed its expiry
func (s *Session) IsExpired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
