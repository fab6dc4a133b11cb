package login

import (
	"context"
	"errors"
	"log/slog"

	"github.com/hubcontatos/contacthub/pkg/user"
)

// Service handles credential checks against durable accounts
type Service struct {
	userRepo user.Repository
	hasher   PasswordHasher
	policy   PasswordPolicyChecker
}

// ServiceOption configures the login service
type ServiceOption func(*Service)

// WithPasswordHasher overrides the default bcrypt hasher
func WithPasswordHasher(hasher PasswordHasher) ServiceOption {
	return func(s *Service) {
		s.hasher = hasher
	}
}

// WithPolicyChecker overrides the default password policy checker
func WithPolicyChecker(policy PasswordPolicyChecker) ServiceOption {
	return func(s *Service) {
		s.policy = policy
	}
}

// NewService creates a new login service
func NewService(userRepo user.Repository, opts ...ServiceOption) *Service {
	s := &Service{
		userRepo: userRepo,
		hasher:   NewBcryptHasher(0),
		policy:   NewDefaultPasswordPolicyChecker(nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login checks a username and password pair and returns the matching account.
// A wrong username and a wrong password both produce ErrInvalidCredentials so
// the response does not reveal which accounts exist.
func (s *Service) Login(ctx context.Context, username, password string) (*user.User, error) {
	u, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			// burn a comparison so the timing matches the found path
			s.hasher.Verify(password, "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")
			return nil, ErrInvalidCredentials
		}
		slog.Error("Failed to look up user for login", "username", username, "error", err)
		return nil, err
	}

	match, err := s.hasher.Verify(password, u.PasswordHash)
	if err != nil {
		slog.Error("Failed to verify password", "user_id", u.ID, "error", err)
		return nil, err
	}
	if !match {
		return nil, ErrInvalidCredentials
	}

	if !u.Active {
		return nil, ErrAccountNotActive
	}

	slog.Info("User logged in", "user_id", u.ID, "username", u.Username)
	return u, nil
}

// HashPassword hashes a plaintext password for storage
func (s *Service) HashPassword(password string) (string, error) {
	return s.hasher.Hash(password)
}

// CheckPasswordComplexity validates a candidate password against the policy
func (s *Service) CheckPasswordComplexity(password string, userInputs ...string) error {
	return s.policy.CheckPasswordComplexity(password, userInputs...)
}
