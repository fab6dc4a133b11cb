package verification

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemRepository implements Repository using in-memory storage
type InMemRepository struct {
	codes map[uuid.UUID]*Code
	mutex sync.RWMutex
}

// NewInMemRepository creates a new in-memory verification code repository
func NewInMemRepository() *InMemRepository {
	return &InMemRepository{
		codes: make(map[uuid.UUID]*Code),
	}
}

// CreateCode inserts a new verification code
func (r *InMemRepository) CreateCode(ctx context.Context, email, code string, expiresAt time.Time) (*Code, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	c := &Code{
		ID:        uuid.New(),
		Email:     email,
		Code:      code,
		CreatedAt: time.Now().UTC(),
		ExpiresAt: expiresAt,
		Used:      false,
	}

	r.codes[c.ID] = c

	cCopy := *c
	return &cCopy, nil
}

// GetCurrentCodeByEmail retrieves the most recently created unused code for an email
func (r *InMemRepository) GetCurrentCodeByEmail(ctx context.Context, email string) (*Code, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var current *Code
	for _, c := range r.codes {
		if c.Email != email || c.Used {
			continue
		}
		if current == nil || c.CreatedAt.After(current.CreatedAt) {
			current = c
		}
	}

	if current == nil {
		return nil, ErrCodeNotFound
	}

	cCopy := *current
	return &cCopy, nil
}

// MarkCodeAsUsed marks a code as used
func (r *InMemRepository) MarkCodeAsUsed(ctx context.Context, codeID uuid.UUID) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	c, exists := r.codes[codeID]
	if !exists {
		return ErrCodeNotFound
	}

	c.Used = true
	return nil
}

// InvalidateCodesByEmail marks all unused codes for an email as used
func (r *InMemRepository) InvalidateCodesByEmail(ctx context.Context, email string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, c := range r.codes {
		if c.Email == email && !c.Used {
			c.Used = true
		}
	}

	return nil
}

// CountRecentCodesByEmail counts codes created for an email since a given time
func (r *InMemRepository) CountRecentCodesByEmail(ctx context.Context, email string, since time.Time) (int64, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	count := int64(0)
	for _, c := range r.codes {
		if c.Email == email && c.CreatedAt.After(since) {
			count++
		}
	}

	return count, nil
}
