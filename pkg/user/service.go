package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// Service handles user account business logic
type Service struct {
	repo Repository
}

// NewService creates a new user service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateUser materializes a durable account with its profile. Uniqueness of
// username and email is enforced by the repository at commit time; callers
// should treat ErrUsernameTaken / ErrEmailTaken as fatal to the commit.
func (s *Service) CreateUser(ctx context.Context, params CreateUserParams) (*User, error) {
	u, err := s.repo.CreateUserWithProfile(ctx, params)
	if err != nil {
		if err == ErrUsernameTaken || err == ErrEmailTaken {
			slog.Warn("Uniqueness conflict at account commit", "username", params.Username, "email", params.Email, "error", err)
			return nil, err
		}
		slog.Error("Failed to create user", "username", params.Username, "error", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("User account created", "user_id", u.ID, "username", u.Username)
	return u, nil
}

// GetByID retrieves a user by ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByUsername retrieves a user by username
func (s *Service) GetByUsername(ctx context.Context, username string) (*User, error) {
	return s.repo.GetByUsername(ctx, username)
}

// GetProfile retrieves the profile owned by a user
func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	return s.repo.GetProfileByUserID(ctx, userID)
}

// UpdateUser applies profile edits for an account
func (s *Service) UpdateUser(ctx context.Context, id uuid.UUID, params UpdateUserParams) (*User, error) {
	u, err := s.repo.UpdateUser(ctx, id, params)
	if err != nil {
		if err == ErrUsernameTaken || err == ErrEmailTaken || err == ErrUserNotFound {
			return nil, err
		}
		slog.Error("Failed to update user", "user_id", id, "error", err)
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	slog.Info("User account updated", "user_id", u.ID)
	return u, nil
}

// UsernameExists reports whether the username belongs to an account
func (s *Service) UsernameExists(ctx context.Context, username string) (bool, error) {
	return s.repo.UsernameExists(ctx, username)
}

// EmailExists reports whether the email belongs to an account
func (s *Service) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.repo.EmailExists(ctx, email)
}
