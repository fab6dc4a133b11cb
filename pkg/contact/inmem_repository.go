package contact

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemRepository is an in-memory Repository for development and testing
type InMemRepository struct {
	mutex      sync.RWMutex
	contacts   map[uuid.UUID]*Contact
	categories map[uuid.UUID]*Category
}

// NewInMemRepository creates an in-memory contact repository
func NewInMemRepository() *InMemRepository {
	return &InMemRepository{
		contacts:   make(map[uuid.UUID]*Contact),
		categories: make(map[uuid.UUID]*Category),
	}
}

// CreateContact stores a new contact
func (r *InMemRepository) CreateContact(ctx context.Context, c *Contact) (*Contact, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if c.CategoryID != nil {
		if _, ok := r.categories[*c.CategoryID]; !ok {
			return nil, ErrCategoryNotFound
		}
	}

	stored := *c
	stored.ID = uuid.New()
	stored.CreatedAt = time.Now().UTC()
	r.contacts[stored.ID] = &stored

	copied := stored
	return &copied, nil
}

func (r *InMemRepository) visible(ownerID, id uuid.UUID) (*Contact, bool) {
	c, ok := r.contacts[id]
	if !ok || c.OwnerID != ownerID || !c.Show {
		return nil, false
	}
	return c, true
}

// GetContact returns one of the owner's visible contacts
func (r *InMemRepository) GetContact(ctx context.Context, ownerID, id uuid.UUID) (*Contact, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	c, ok := r.visible(ownerID, id)
	if !ok {
		return nil, ErrContactNotFound
	}
	copied := *c
	return &copied, nil
}

func matchesSearch(c *Contact, search string) bool {
	if search == "" {
		return true
	}
	search = strings.ToLower(strings.TrimSpace(search))
	return strings.Contains(strings.ToLower(c.FirstName), search) ||
		strings.Contains(strings.ToLower(c.LastName), search) ||
		strings.Contains(c.Phone, search)
}

// ListContacts returns a page of the owner's visible contacts, newest first
func (r *InMemRepository) ListContacts(ctx context.Context, params ListParams) (*ContactPage, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	matched := []Contact{}
	for _, c := range r.contacts {
		if c.OwnerID == params.OwnerID && c.Show && matchesSearch(c, params.Search) {
			matched = append(matched, *c)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID.String() > matched[j].ID.String()
	})

	total := len(matched)
	start := params.Offset
	if start > total {
		start = total
	}
	end := total
	if params.Limit > 0 && start+params.Limit < end {
		end = start + params.Limit
	}

	return &ContactPage{Contacts: matched[start:end], Total: total}, nil
}

// UpdateContact replaces the editable fields of a contact
func (r *InMemRepository) UpdateContact(ctx context.Context, c *Contact) (*Contact, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	existing, ok := r.visible(c.OwnerID, c.ID)
	if !ok {
		return nil, ErrContactNotFound
	}
	if c.CategoryID != nil {
		if _, found := r.categories[*c.CategoryID]; !found {
			return nil, ErrCategoryNotFound
		}
	}

	existing.FirstName = c.FirstName
	existing.LastName = c.LastName
	existing.Phone = c.Phone
	existing.Email = c.Email
	existing.Description = c.Description
	existing.CategoryID = c.CategoryID

	copied := *existing
	return &copied, nil
}

// SetPictureKey updates the stored picture reference of a contact
func (r *InMemRepository) SetPictureKey(ctx context.Context, ownerID, id uuid.UUID, key string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	c, ok := r.visible(ownerID, id)
	if !ok {
		return ErrContactNotFound
	}
	c.PictureKey = key
	return nil
}

// DeleteContact removes one of the owner's contacts
func (r *InMemRepository) DeleteContact(ctx context.Context, ownerID, id uuid.UUID) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	c, ok := r.contacts[id]
	if !ok || c.OwnerID != ownerID {
		return ErrContactNotFound
	}
	delete(r.contacts, id)
	return nil
}

// CreateCategory stores a new category
func (r *InMemRepository) CreateCategory(ctx context.Context, name string) (*Category, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	cat := &Category{ID: uuid.New(), Name: name}
	r.categories[cat.ID] = cat

	copied := *cat
	return &copied, nil
}

// GetCategory returns a category by ID
func (r *InMemRepository) GetCategory(ctx context.Context, id uuid.UUID) (*Category, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	cat, ok := r.categories[id]
	if !ok {
		return nil, ErrCategoryNotFound
	}
	copied := *cat
	return &copied, nil
}

// ListCategories returns all categories ordered by name
func (r *InMemRepository) ListCategories(ctx context.Context) ([]Category, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	categories := make([]Category, 0, len(r.categories))
	for _, cat := range r.categories {
		categories = append(categories, *cat)
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})
	return categories, nil
}
