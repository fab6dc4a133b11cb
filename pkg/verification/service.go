package verification

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"time"
)

// Service handles verification code operations
type Service struct {
	repo         Repository
	codeExpiry   time.Duration
	codeLength   int
	resendWindow time.Duration
	resendNotice int
}

// ServiceOption defines configuration options
type ServiceOption func(*Service)

// WithCodeExpiry sets the code expiration duration
func WithCodeExpiry(expiry time.Duration) ServiceOption {
	return func(s *Service) {
		s.codeExpiry = expiry
	}
}

// WithCodeLength sets the number of digits in generated codes
func WithCodeLength(length int) ServiceOption {
	return func(s *Service) {
		s.codeLength = length
	}
}

// NewService creates a new verification code service
func NewService(repo Repository, opts ...ServiceOption) *Service {
	service := &Service{
		repo:         repo,
		codeExpiry:   24 * time.Hour,
		codeLength:   6,
		resendWindow: 1 * time.Hour,
		resendNotice: 10,
	}

	for _, opt := range opts {
		opt(service)
	}

	return service
}

// generateCode generates a fixed-length numeric code drawn from a uniform
// random digit distribution. Collisions across different emails are permitted.
func generateCode(length int) (string, error) {
	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate code: %w", err)
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}

// IssueCode invalidates any unused codes for the email, then generates and
// persists a fresh code. The invalidate-then-insert pair is sequential, so a
// concurrent IssueCode for the same email can momentarily leave two unused
// codes; the durable store's transaction semantics are the only guard.
func (s *Service) IssueCode(ctx context.Context, email string) (*Code, error) {
	if err := s.repo.InvalidateCodesByEmail(ctx, email); err != nil {
		slog.Error("Failed to invalidate prior codes", "email", email, "error", err)
		return nil, fmt.Errorf("failed to invalidate prior codes: %w", err)
	}

	code, err := generateCode(s.codeLength)
	if err != nil {
		return nil, err
	}

	expiresAt := time.Now().UTC().Add(s.codeExpiry)

	issued, err := s.repo.CreateCode(ctx, email, code, expiresAt)
	if err != nil {
		slog.Error("Failed to create verification code", "email", email, "error", err)
		return nil, fmt.Errorf("failed to create verification code: %w", err)
	}

	// Resend is always permitted; a burst is only worth an operator notice.
	cutoff := time.Now().UTC().Add(-s.resendWindow)
	if count, err := s.repo.CountRecentCodesByEmail(ctx, email, cutoff); err == nil && count >= int64(s.resendNotice) {
		slog.Warn("High verification code volume", "email", email, "count", count, "window", s.resendWindow)
	}

	slog.Info("Verification code issued", "email", email, "code_id", issued.ID, "expires_at", expiresAt)
	return issued, nil
}

// CurrentCode returns the most recently created unused code for the email
func (s *Service) CurrentCode(ctx context.Context, email string) (*Code, error) {
	return s.repo.GetCurrentCodeByEmail(ctx, email)
}

// VerifyCode checks a submitted value against a stored code. The checks are
// evaluated in a fixed order: expiry first, mismatch second, used-state third.
// The order determines which failure a user sees and must not change.
func (s *Service) VerifyCode(ctx context.Context, code *Code, submitted string) error {
	if time.Now().UTC().After(code.ExpiresAt) {
		slog.Warn("Verification code expired", "code_id", code.ID, "expires_at", code.ExpiresAt)
		return ErrCodeExpired
	}

	if submitted != code.Code {
		slog.Warn("Verification code mismatch", "code_id", code.ID)
		return ErrCodeMismatch
	}

	if code.Used {
		slog.Warn("Verification code already used", "code_id", code.ID)
		return ErrCodeAlreadyUsed
	}

	if err := s.repo.MarkCodeAsUsed(ctx, code.ID); err != nil {
		slog.Error("Failed to mark code as used", "code_id", code.ID, "error", err)
		return fmt.Errorf("failed to mark code as used: %w", err)
	}

	slog.Info("Verification code accepted", "code_id", code.ID, "email", code.Email)
	return nil
}

// CodeExpiry returns the configured code expiration duration
func (s *Service) CodeExpiry() time.Duration {
	return s.codeExpiry
}
