package pending

import (
	"context"
	"sync"
	"time"
)

// InMemStore implements Store using an in-memory map with an expiry sweep
type InMemStore struct {
	ttl     time.Duration
	entries map[string]*entry
	mutex   sync.RWMutex
	done    chan struct{}
	once    sync.Once
}

type entry struct {
	reg       Registration
	expiresAt time.Time
}

// NewInMemStore creates an in-memory pending registration store. Entries
// expire after ttl; a background sweep reclaims abandoned registrations.
func NewInMemStore(ttl time.Duration, sweepInterval time.Duration) *InMemStore {
	s := &InMemStore{
		ttl:     ttl,
		entries: make(map[string]*entry),
		done:    make(chan struct{}),
	}

	go s.sweep(sweepInterval)

	return s
}

// Put associates the registration with the session
func (s *InMemStore) Put(ctx context.Context, sessionID string, reg Registration) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.entries[sessionID] = &entry{
		reg:       reg,
		expiresAt: time.Now().UTC().Add(s.ttl),
	}
	return nil
}

// Get returns the pending registration for the session
func (s *InMemStore) Get(ctx context.Context, sessionID string) (*Registration, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	e, exists := s.entries[sessionID]
	if !exists || time.Now().UTC().After(e.expiresAt) {
		return nil, ErrNotFound
	}

	regCopy := e.reg
	return &regCopy, nil
}

// Clear removes the association
func (s *InMemStore) Clear(ctx context.Context, sessionID string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.entries, sessionID)
	return nil
}

// Close stops the background sweep
func (s *InMemStore) Close() {
	s.once.Do(func() {
		close(s.done)
	})
}

func (s *InMemStore) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			now := time.Now().UTC()
			s.mutex.Lock()
			for id, e := range s.entries {
				if now.After(e.expiresAt) {
					delete(s.entries, id)
				}
			}
			s.mutex.Unlock()
		}
	}
}
