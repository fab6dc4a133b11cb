package sessions

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == CookieName {
			return c
		}
	}
	return nil
}

func TestEnsureSessionCreatesAndReuses(t *testing.T) {
	svc := NewService(NewInMemRepository())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	first, err := svc.EnsureSession(rec, req)
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.False(t, first.IsAuthenticated())

	cookie := sessionCookie(t, rec)
	require.NotNil(t, cookie)
	assert.Equal(t, first.ID, cookie.Value)
	assert.True(t, cookie.HttpOnly)

	// second request with the cookie reuses the session
	rec2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/", nil)
	req2.AddCookie(cookie)

	second, err := svc.EnsureSession(rec2, req2)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Nil(t, sessionCookie(t, rec2))
}

func TestEnsureSessionReplacesExpired(t *testing.T) {
	repo := NewInMemRepository()
	svc := NewService(repo, WithLifetime(-time.Hour))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	first, err := svc.EnsureSession(rec, req)
	require.NoError(t, err)

	rec2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/", nil)
	req2.AddCookie(sessionCookie(t, rec))

	second, err := svc.EnsureSession(rec2, req2)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestAuthenticateRotatesSessionID(t *testing.T) {
	repo := NewInMemRepository()
	svc := NewService(repo)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	anon, err := svc.EnsureSession(rec, req)
	require.NoError(t, err)

	userID := uuid.New()
	rec2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodPost, "/login", nil)
	req2.AddCookie(sessionCookie(t, rec))

	authed, err := svc.Authenticate(rec2, req2, userID)
	require.NoError(t, err)
	assert.NotEqual(t, anon.ID, authed.ID)
	require.NotNil(t, authed.UserID)
	assert.Equal(t, userID, *authed.UserID)

	// the anonymous session is gone
	_, err = repo.Get(req2.Context(), anon.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// the new cookie resolves to the authenticated session
	req3 := httptest.NewRequest(http.MethodGet, "/", nil)
	req3.AddCookie(sessionCookie(t, rec2))
	current, err := svc.Current(req3)
	require.NoError(t, err)
	assert.True(t, current.IsAuthenticated())
}

func TestDestroyClearsSession(t *testing.T) {
	repo := NewInMemRepository()
	svc := NewService(repo)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	session, err := svc.EnsureSession(rec, req)
	require.NoError(t, err)

	rec2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req2.AddCookie(sessionCookie(t, rec))
	require.NoError(t, svc.Destroy(rec2, req2))

	_, err = repo.Get(req2.Context(), session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	cleared := sessionCookie(t, rec2)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)
}

func TestCurrentWithoutCookie(t *testing.T) {
	svc := NewService(NewInMemRepository())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := svc.Current(req)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestDeleteExpired(t *testing.T) {
	repo := NewInMemRepository()

	now := time.Now()
	require.NoError(t, repo.Create(context.Background(), &Session{ID: "live", ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, repo.Create(context.Background(), &Session{ID: "dead", ExpiresAt: now.Add(-time.Hour)}))

	require.NoError(t, repo.DeleteExpired(context.Background()))

	_, err := repo.Get(context.Background(), "live")
	assert.NoError(t, err)
	_, err = repo.Get(context.Background(), "dead")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
