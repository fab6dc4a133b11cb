package signup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/hubcontatos/contacthub/pkg/login"
	"github.com/hubcontatos/contacthub/pkg/notification"
	"github.com/hubcontatos/contacthub/pkg/pending"
	"github.com/hubcontatos/contacthub/pkg/user"
	"github.com/hubcontatos/contacthub/pkg/verification"
)

// Service drives the registration workflow: staging submissions, issuing and
// re-issuing verification codes, and materializing accounts once the email
// is proven. No durable account exists until Verify succeeds.
type Service struct {
	pendingStore        pending.Store
	verificationService *verification.Service
	userService         *user.Service
	loginService        *login.Service
	dispatcher          *notification.Dispatcher
	registrationEnabled bool
}

// ServiceOption is a functional option for configuring the signup service
type ServiceOption func(*Service)

// WithRegistrationEnabled sets whether new registrations are accepted
func WithRegistrationEnabled(enabled bool) ServiceOption {
	return func(s *Service) {
		s.registrationEnabled = enabled
	}
}

// WithDispatcher sets the notification dispatcher used for verification and
// welcome notices. Without one, notices are skipped.
func WithDispatcher(d *notification.Dispatcher) ServiceOption {
	return func(s *Service) {
		s.dispatcher = d
	}
}

// NewService creates a new signup service
func NewService(
	pendingStore pending.Store,
	verificationService *verification.Service,
	userService *user.Service,
	loginService *login.Service,
	opts ...ServiceOption,
) *Service {
	s := &Service{
		pendingStore:        pendingStore,
		verificationService: verificationService,
		userService:         userService,
		loginService:        loginService,
		registrationEnabled: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit validates a registration, stages it against the session and issues
// a verification code to the submitted email. Nothing durable is written:
// resubmitting replaces the staged data and invalidates earlier codes.
func (s *Service) Submit(ctx context.Context, sessionID string, req RegisterRequest) error {
	if !s.registrationEnabled {
		return ErrRegistrationDisabled
	}

	req = normalizeRegisterRequest(req)
	errs := validateRegisterRequest(req)

	if _, ok := errs["password"]; !ok {
		if err := s.loginService.CheckPasswordComplexity(req.Password, req.Username, req.FirstName, req.LastName, req.Email); err != nil {
			errs["password"] = err.Error()
		}
	}

	// Early uniqueness checks give fast feedback. They are advisory only:
	// the commit in Verify re-checks and is the one that decides.
	if _, ok := errs["username"]; !ok {
		taken, err := s.userService.UsernameExists(ctx, req.Username)
		if err != nil {
			return fmt.Errorf("failed to check username: %w", err)
		}
		if taken {
			errs["username"] = "username is already taken"
		}
	}
	if _, ok := errs["email"]; !ok {
		taken, err := s.userService.EmailExists(ctx, req.Email)
		if err != nil {
			return fmt.Errorf("failed to check email: %w", err)
		}
		if taken {
			errs["email"] = "email is already registered"
		}
	}

	if len(errs) > 0 {
		return errs
	}

	reg := pending.Registration{
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	}
	if err := s.pendingStore.Put(ctx, sessionID, reg); err != nil {
		return fmt.Errorf("failed to stage registration: %w", err)
	}

	code, err := s.verificationService.IssueCode(ctx, req.Email)
	if err != nil {
		return fmt.Errorf("failed to issue verification code: %w", err)
	}

	s.sendVerificationCode(reg, code.Code)
	slog.Info("Registration staged", "username", req.Username, "email", req.Email)
	return nil
}

// Resend issues a fresh verification code for the session's pending
// registration. The previous code stops working immediately. There is no
// limit on resends; the staged data is untouched.
func (s *Service) Resend(ctx context.Context, sessionID string) error {
	reg, err := s.pendingStore.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, pending.ErrNotFound) {
			return ErrSessionExpired
		}
		return fmt.Errorf("failed to load pending registration: %w", err)
	}

	code, err := s.verificationService.IssueCode(ctx, reg.Email)
	if err != nil {
		return fmt.Errorf("failed to issue verification code: %w", err)
	}

	s.sendVerificationCode(*reg, code.Code)
	slog.Info("Verification code resent", "email", reg.Email)
	return nil
}

// PendingEmail returns the email awaiting verification for the session
func (s *Service) PendingEmail(ctx context.Context, sessionID string) (string, error) {
	reg, err := s.pendingStore.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, pending.ErrNotFound) {
			return "", ErrSessionExpired
		}
		return "", err
	}
	return reg.Email, nil
}

// Verify checks a submitted code against the session's pending registration
// and, on success, creates the account. Username and email uniqueness is
// re-checked at this commit: a conflict that appeared since Submit rejects
// the registration rather than overwriting anyone.
func (s *Service) Verify(ctx context.Context, sessionID, submitted string) (*user.User, error) {
	reg, err := s.pendingStore.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, pending.ErrNotFound) {
			return nil, ErrSessionExpired
		}
		return nil, fmt.Errorf("failed to load pending registration: %w", err)
	}

	code, err := s.verificationService.CurrentCode(ctx, reg.Email)
	if err != nil {
		return nil, err
	}
	if err := s.verificationService.VerifyCode(ctx, code, submitted); err != nil {
		return nil, err
	}

	hash, err := s.loginService.HashPassword(reg.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.userService.CreateUser(ctx, user.CreateUserParams{
		Username:     reg.Username,
		Email:        reg.Email,
		FirstName:    reg.FirstName,
		LastName:     reg.LastName,
		PasswordHash: hash,
	})
	if err != nil {
		// Late conflicts surface as-is; the staged data stays so the
		// error can be shown, and a fresh Submit replaces it.
		return nil, err
	}

	if err := s.pendingStore.Clear(ctx, sessionID); err != nil {
		slog.Warn("Failed to clear pending registration", "email", reg.Email, "error", err)
	}

	s.sendWelcome(created)
	slog.Info("Registration verified", "user_id", created.ID, "username", created.Username)
	return created, nil
}

func (s *Service) sendVerificationCode(reg pending.Registration, code string) {
	if s.dispatcher == nil {
		return
	}

	expiryHours := int(s.verificationService.CodeExpiry().Hours())
	err := s.dispatcher.Dispatch(notification.VerificationCodeNotice, notification.EmailSystem, notification.NotificationData{
		To: reg.Email,
		Data: map[string]string{
			"Name":        reg.FirstName,
			"Code":        code,
			"ExpiryHours": strconv.Itoa(expiryHours),
		},
	})
	if err != nil {
		slog.Error("Failed to dispatch verification code notice", "email", reg.Email, "error", err)
	}
}

func (s *Service) sendWelcome(u *user.User) {
	if s.dispatcher == nil {
		return
	}

	err := s.dispatcher.Dispatch(notification.WelcomeNotice, notification.EmailSystem, notification.NotificationData{
		To: u.Email,
		Data: map[string]string{
			"Name":     u.FirstName,
			"Username": u.Username,
		},
	})
	if err != nil {
		slog.Error("Failed to dispatch welcome notice", "email", u.Email, "error", err)
	}
}
