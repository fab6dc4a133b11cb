package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubcontatos/contacthub/pkg/login"
	"github.com/hubcontatos/contacthub/pkg/notification"
	"github.com/hubcontatos/contacthub/pkg/pending"
	"github.com/hubcontatos/contacthub/pkg/sessions"
	"github.com/hubcontatos/contacthub/pkg/signup"
	"github.com/hubcontatos/contacthub/pkg/user"
	"github.com/hubcontatos/contacthub/pkg/verification"
)

type testEnv struct {
	server *httptest.Server
	client *http.Client
	mock   *notification.MockNotifier
	users  *user.Service
}

func setupAPITest(t *testing.T) *testEnv {
	t.Helper()

	store := pending.NewInMemStore(24*time.Hour, time.Minute)
	t.Cleanup(store.Close)

	verificationRepo, err := verification.NewVerificationRepository("memory", verification.RepositoryConfig{})
	require.NoError(t, err)
	verificationService := verification.NewService(verificationRepo)

	userRepo := user.NewInMemRepository()
	userService := user.NewService(userRepo)
	loginService := login.NewService(userRepo)

	mock := &notification.MockNotifier{}
	manager, err := notification.NewNotificationManagerWithOptions(notification.WithDefaultTemplates())
	require.NoError(t, err)
	manager.RegisterNotifier(notification.EmailSystem, mock)
	dispatcher := notification.NewDispatcher(manager, notification.WithSynchronous(true))
	t.Cleanup(dispatcher.Close)

	signupService := signup.NewService(store, verificationService, userService, loginService,
		signup.WithDispatcher(dispatcher))
	sessionService := sessions.NewService(sessions.NewInMemRepository())

	handler := NewHandler(signupService, sessionService)
	server := httptest.NewServer(handler.Routes())
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &testEnv{
		server: server,
		client: &http.Client{Jar: jar},
		mock:   mock,
		users:  userService,
	}
}

func (e *testEnv) post(t *testing.T, path string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := e.client.Post(e.server.URL+path, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func registerBody() RegisterRequest {
	return RegisterRequest{
		Username:        "joaosilva",
		FirstName:       "Joao",
		LastName:        "Silva",
		Email:           "joao@example.com",
		Password:        "tr4vessia-lunar",
		PasswordConfirm: "tr4vessia-lunar",
	}
}

func TestRegisterAndVerifyOverHTTP(t *testing.T) {
	env := setupAPITest(t)

	resp := env.post(t, "/register", registerBody())
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	reg := decodeBody[RegisterResponse](t, resp)
	assert.Equal(t, "joao@example.com", reg.Email)

	sent := env.mock.Sent()
	require.Len(t, sent, 1)
	code := sent[0].Data["Code"]
	require.Len(t, code, 6)

	resp = env.post(t, "/verify-email", VerifyRequest{Code: code})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	verified := decodeBody[VerifyResponse](t, resp)
	assert.Equal(t, "joaosilva", verified.Username)
	assert.NotEmpty(t, verified.UserID)
}

func TestRegisterValidationOverHTTP(t *testing.T) {
	env := setupAPITest(t)

	body := registerBody()
	body.Email = "broken"
	resp := env.post(t, "/register", body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	errResp := decodeBody[ErrorResponse](t, resp)
	assert.Contains(t, errResp.Fields, "email")
}

func TestVerifyWrongCodeOverHTTP(t *testing.T) {
	env := setupAPITest(t)

	resp := env.post(t, "/register", registerBody())
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	code := env.mock.Sent()[0].Data["Code"]
	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	resp = env.post(t, "/verify-email", VerifyRequest{Code: wrong})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func (e *testEnv) get(t *testing.T, path string) *http.Response {
	t.Helper()
	resp, err := e.client.Get(e.server.URL + path)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestVerifyStatusOverHTTP(t *testing.T) {
	env := setupAPITest(t)

	resp := env.post(t, "/register", registerBody())
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	resp = env.get(t, "/verify-email")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	status := decodeBody[VerifyStatusResponse](t, resp)
	assert.Equal(t, "joao@example.com", status.Email)
}

func TestVerifyStatusWithoutPendingOverHTTP(t *testing.T) {
	env := setupAPITest(t)

	resp := env.get(t, "/verify-email")
	assert.Equal(t, http.StatusGone, resp.StatusCode)
}

func TestResendOverHTTP(t *testing.T) {
	env := setupAPITest(t)

	resp := env.post(t, "/register", registerBody())
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	resp = env.post(t, "/resend-code", struct{}{})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, env.mock.Sent(), 2)
}

func TestResendWithoutSessionOverHTTP(t *testing.T) {
	env := setupAPITest(t)

	resp := env.post(t, "/resend-code", struct{}{})
	assert.Equal(t, http.StatusGone, resp.StatusCode)
}

func TestVerifyWithoutCodeOverHTTP(t *testing.T) {
	env := setupAPITest(t)

	resp := env.post(t, "/verify-email", VerifyRequest{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
