package sessions

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	// CookieName is the session cookie set on every response that creates a session
	CookieName = "contacthub_session"

	sessionIDBytes = 32
)

// Service manages browser sessions and their cookie plumbing
type Service struct {
	repo     Repository
	lifetime time.Duration
	secure   bool
}

// ServiceOption configures the session service
type ServiceOption func(*Service)

// WithLifetime sets how long sessions stay valid
func WithLifetime(d time.Duration) ServiceOption {
	return func(s *Service) {
		s.lifetime = d
	}
}

// WithSecureCookies marks session cookies Secure. Enable behind TLS.
func WithSecureCookies(secure bool) ServiceOption {
	return func(s *Service) {
		s.secure = secure
	}
}

// NewService creates a new session service
func NewService(repo Repository, opts ...ServiceOption) *Service {
	s := &Service{
		repo:     repo,
		lifetime: 14 * 24 * time.Hour,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func generateSessionID() (string, error) {
	buf := make([]byte, sessionIDBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session id: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Lifetime returns the configured session lifetime
func (s *Service) Lifetime() time.Duration {
	return s.lifetime
}

func (s *Service) newSession(ctx context.Context) (*Session, error) {
	id, err := generateSessionID()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &Session{
		ID:           id,
		CreatedAt:    now,
		ExpiresAt:    now.Add(s.lifetime),
		LastActivity: now,
	}
	if err := s.repo.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// EnsureSession returns the request's session, creating one when the cookie
// is missing, unknown or expired. The cookie is (re)set whenever a new
// session is created.
func (s *Service) EnsureSession(w http.ResponseWriter, r *http.Request) (*Session, error) {
	ctx := r.Context()

	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		session, err := s.repo.Get(ctx, cookie.Value)
		if err == nil && !session.IsExpired(time.Now()) {
			return session, nil
		}
		if err != nil && err != ErrSessionNotFound {
			return nil, err
		}
	}

	session, err := s.newSession(ctx)
	if err != nil {
		return nil, err
	}
	s.setCookie(w, session)
	return session, nil
}

// Current returns the session for the request cookie without creating one
func (s *Service) Current(r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil, ErrSessionNotFound
	}

	session, err := s.repo.Get(r.Context(), cookie.Value)
	if err != nil {
		return nil, err
	}
	if session.IsExpired(time.Now()) {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Authenticate binds a user to the request's session. The session ID is
// rotated so a pre-login cookie cannot be replayed as an authenticated one.
func (s *Service) Authenticate(w http.ResponseWriter, r *http.Request, userID uuid.UUID) (*Session, error) {
	ctx := r.Context()

	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		if err := s.repo.Delete(ctx, cookie.Value); err != nil {
			slog.Warn("Failed to delete pre-login session", "error", err)
		}
	}

	session, err := s.newSession(ctx)
	if err != nil {
		return nil, err
	}
	session.UserID = &userID
	if err := s.repo.Update(ctx, session); err != nil {
		return nil, err
	}

	s.setCookie(w, session)
	slog.Info("Session authenticated", "user_id", userID)
	return session, nil
}

// Destroy removes the request's session and clears the cookie
func (s *Service) Destroy(w http.ResponseWriter, r *http.Request) error {
	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		if err := s.repo.Delete(r.Context(), cookie.Value); err != nil {
			return err
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Touch refreshes the session's last activity timestamp
func (s *Service) Touch(ctx context.Context, session *Session) error {
	session.LastActivity = time.Now()
	return s.repo.Update(ctx, session)
}

func (s *Service) setCookie(w http.ResponseWriter, session *Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    session.ID,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
