package contact

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/hubcontatos/contacthub/pkg/storage"
)

const defaultPageSize = 10

// Service handles contact business logic. Every operation takes the owner
// explicitly; there is no way to reach another user's contacts.
type Service struct {
	repo     Repository
	pictures storage.ObjectStorage
	pageSize int
}

// ServiceOption configures the contact service
type ServiceOption func(*Service)

// WithPictureStorage enables contact picture uploads
func WithPictureStorage(store storage.ObjectStorage) ServiceOption {
	return func(s *Service) {
		s.pictures = store
	}
}

// WithPageSize sets the default listing page size
func WithPageSize(n int) ServiceOption {
	return func(s *Service) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// NewService creates a new contact service
func NewService(repo Repository, opts ...ServiceOption) *Service {
	s := &Service{
		repo:     repo,
		pageSize: defaultPageSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates a contact form and stores it for the owner
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, form ContactForm) (*Contact, error) {
	form = normalizeForm(form)
	if errs := validateForm(form); len(errs) > 0 {
		return nil, errs
	}
	if err := s.checkCategory(ctx, form.CategoryID); err != nil {
		return nil, err
	}

	created, err := s.repo.CreateContact(ctx, &Contact{
		OwnerID:     ownerID,
		FirstName:   form.FirstName,
		LastName:    form.LastName,
		Phone:       form.Phone,
		Email:       form.Email,
		Description: form.Description,
		CategoryID:  form.CategoryID,
		Show:        true,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Contact created", "contact_id", created.ID, "owner_id", ownerID)
	return created, nil
}

// Get returns one of the owner's contacts
func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (*Contact, error) {
	return s.repo.GetContact(ctx, ownerID, id)
}

// List returns one page of the owner's contacts
func (s *Service) List(ctx context.Context, ownerID uuid.UUID, search string, page int) (*ContactPage, error) {
	if page < 1 {
		page = 1
	}
	return s.repo.ListContacts(ctx, ListParams{
		OwnerID: ownerID,
		Search:  search,
		Limit:   s.pageSize,
		Offset:  (page - 1) * s.pageSize,
	})
}

// Update validates a contact form and applies it to an existing contact
func (s *Service) Update(ctx context.Context, ownerID, id uuid.UUID, form ContactForm) (*Contact, error) {
	form = normalizeForm(form)
	if errs := validateForm(form); len(errs) > 0 {
		return nil, errs
	}
	if err := s.checkCategory(ctx, form.CategoryID); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateContact(ctx, &Contact{
		ID:          id,
		OwnerID:     ownerID,
		FirstName:   form.FirstName,
		LastName:    form.LastName,
		Phone:       form.Phone,
		Email:       form.Email,
		Description: form.Description,
		CategoryID:  form.CategoryID,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Contact updated", "contact_id", id, "owner_id", ownerID)
	return updated, nil
}

// Delete removes one of the owner's contacts along with its picture
func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	c, err := s.repo.GetContact(ctx, ownerID, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteContact(ctx, ownerID, id); err != nil {
		return err
	}

	if s.pictures != nil && c.PictureKey != "" {
		if err := s.pictures.DeletePicture(ctx, c.PictureKey); err != nil {
			slog.Warn("Failed to delete contact picture", "contact_id", id, "error", err)
		}
	}

	slog.Info("Contact deleted", "contact_id", id, "owner_id", ownerID)
	return nil
}

// UploadPicture stores a picture for a contact, replacing any previous one
func (s *Service) UploadPicture(ctx context.Context, ownerID, id uuid.UUID, file io.Reader, fileSize int64, contentType string) (string, error) {
	if s.pictures == nil {
		return "", errors.New("picture storage is not configured")
	}

	c, err := s.repo.GetContact(ctx, ownerID, id)
	if err != nil {
		return "", err
	}

	key, err := s.pictures.UploadPicture(ctx, ownerID, file, fileSize, contentType)
	if err != nil {
		return "", err
	}

	if err := s.repo.SetPictureKey(ctx, ownerID, id, key); err != nil {
		if cleanupErr := s.pictures.DeletePicture(ctx, key); cleanupErr != nil {
			slog.Warn("Failed to clean up orphaned picture", "key", key, "error", cleanupErr)
		}
		return "", err
	}

	if c.PictureKey != "" {
		if err := s.pictures.DeletePicture(ctx, c.PictureKey); err != nil {
			slog.Warn("Failed to delete replaced picture", "key", c.PictureKey, "error", err)
		}
	}

	slog.Info("Contact picture uploaded", "contact_id", id, "owner_id", ownerID)
	return key, nil
}

// PictureURL returns the URL of a contact's picture, or "" when it has none
func (s *Service) PictureURL(ctx context.Context, ownerID, id uuid.UUID) (string, error) {
	c, err := s.repo.GetContact(ctx, ownerID, id)
	if err != nil {
		return "", err
	}
	if c.PictureKey == "" || s.pictures == nil {
		return "", nil
	}
	return s.pictures.PictureURL(ctx, c.PictureKey)
}

// Categories returns all categories
func (s *Service) Categories(ctx context.Context) ([]Category, error) {
	return s.repo.ListCategories(ctx)
}

// CreateCategory stores a new category
func (s *Service) CreateCategory(ctx context.Context, name string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ValidationErrors{"name": "name is required"}
	}
	return s.repo.CreateCategory(ctx, name)
}

func (s *Service) checkCategory(ctx context.Context, categoryID *uuid.UUID) error {
	if categoryID == nil {
		return nil
	}
	if _, err := s.repo.GetCategory(ctx, *categoryID); err != nil {
		return err
	}
	return nil
}
