package sessions

import (
	"context"
	"sync"
	"time"
)

// InMemRepository is an in-memory Repository for development and testing
type InMemRepository struct {
	mutex    sync.RWMutex
	sessions map[string]*Session
}

// NewInMemRepository creates an in-memory session repository
func NewInMemRepository() *InMemRepository {
	return &InMemRepository{
		sessions: make(map[string]*Session),
	}
}

// Create stores a new session
func (r *InMemRepository) Create(ctx context.Context, session *Session) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	copied := *session
	r.sessions[session.ID] = &copied
	return nil
}

// Get retrieves a session by ID
func (r *InMemRepository) Get(ctx context.Context, id string) (*Session, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	session, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}

	copied := *session
	return &copied, nil
}

// Update replaces a stored session
func (r *InMemRepository) Update(ctx context.Context, session *Session) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.sessions[session.ID]; !ok {
		return ErrSessionNotFound
	}

	copied := *session
	r.sessions[session.ID] = &copied
	return nil
}

// Delete removes a session by ID
func (r *InMemRepository) Delete(ctx context.Context, id string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	delete(r.sessions, id)
	return nil
}

// DeleteExpired removes expired sessions
func (r *InMemRepository) DeleteExpired(ctx context.Context) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	now := time.Now()
	for id, session := range r.sessions {
		if session.IsExpired(now) {
			delete(r.sessions, id)
		}
	}
	return nil
}
