package user

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemRepository implements Repository using in-memory storage
type InMemRepository struct {
	users    map[uuid.UUID]*User
	profiles map[uuid.UUID]*Profile // Key: user ID
	mutex    sync.RWMutex
}

// NewInMemRepository creates a new in-memory user repository
func NewInMemRepository() *InMemRepository {
	return &InMemRepository{
		users:    make(map[uuid.UUID]*User),
		profiles: make(map[uuid.UUID]*Profile),
	}
}

// CreateUserWithProfile inserts the user and its profile under one lock,
// mirroring the transactional semantics of the Postgres repository.
func (r *InMemRepository) CreateUserWithProfile(ctx context.Context, params CreateUserParams) (*User, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Username, params.Username) {
			return nil, ErrUsernameTaken
		}
		if strings.EqualFold(u.Email, params.Email) {
			return nil, ErrEmailTaken
		}
	}

	now := time.Now().UTC()
	u := &User{
		ID:           uuid.New(),
		Username:     params.Username,
		Email:        params.Email,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		PasswordHash: params.PasswordHash,
		Active:       true,
		CreatedAt:    now,
	}
	r.users[u.ID] = u

	r.profiles[u.ID] = &Profile{
		ID:        uuid.New(),
		UserID:    u.ID,
		PublicID:  uuid.New(),
		CreatedAt: now,
	}

	uCopy := *u
	return &uCopy, nil
}

// GetByID retrieves a user by ID
func (r *InMemRepository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	u, exists := r.users[id]
	if !exists {
		return nil, ErrUserNotFound
	}

	uCopy := *u
	return &uCopy, nil
}

// GetByUsername retrieves a user by username
func (r *InMemRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Username, username) {
			uCopy := *u
			return &uCopy, nil
		}
	}

	return nil, ErrUserNotFound
}

// GetByEmail retrieves a user by email
func (r *InMemRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			uCopy := *u
			return &uCopy, nil
		}
	}

	return nil, ErrUserNotFound
}

// GetProfileByUserID retrieves the profile owned by a user
func (r *InMemRepository) GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	p, exists := r.profiles[userID]
	if !exists {
		return nil, ErrUserNotFound
	}

	pCopy := *p
	return &pCopy, nil
}

// UpdateUser applies profile-edit fields
func (r *InMemRepository) UpdateUser(ctx context.Context, id uuid.UUID, params UpdateUserParams) (*User, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	u, exists := r.users[id]
	if !exists {
		return nil, ErrUserNotFound
	}

	for otherID, other := range r.users {
		if otherID == id {
			continue
		}
		if params.Username != nil && strings.EqualFold(other.Username, *params.Username) {
			return nil, ErrUsernameTaken
		}
		if params.Email != nil && strings.EqualFold(other.Email, *params.Email) {
			return nil, ErrEmailTaken
		}
	}

	if params.FirstName != nil {
		u.FirstName = *params.FirstName
	}
	if params.LastName != nil {
		u.LastName = *params.LastName
	}
	if params.Email != nil {
		u.Email = *params.Email
	}
	if params.Username != nil {
		u.Username = *params.Username
	}
	if params.PasswordHash != nil {
		u.PasswordHash = *params.PasswordHash
	}

	uCopy := *u
	return &uCopy, nil
}

// UsernameExists reports whether the username belongs to an account
func (r *InMemRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Username, username) {
			return true, nil
		}
	}
	return false, nil
}

// SetActive flips the active flag on a stored account. Used by tests and by
// deployments that disable accounts administratively.
func (r *InMemRepository) SetActive(id uuid.UUID, active bool) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if u, ok := r.users[id]; ok {
		u.Active = active
	}
}

// EmailExists reports whether the email belongs to an account
func (r *InMemRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return true, nil
		}
	}
	return false, nil
}
