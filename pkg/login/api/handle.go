package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/hubcontatos/contacthub/pkg/login"
	"github.com/hubcontatos/contacthub/pkg/sessions"
)

// Handler exposes login and logout over HTTP
type Handler struct {
	loginService   *login.Service
	sessionService *sessions.Service
}

// NewHandler creates a new login API handler
func NewHandler(loginService *login.Service, sessionService *sessions.Service) *Handler {
	return &Handler{
		loginService:   loginService,
		sessionService: sessionService,
	}
}

// Routes mounts the login endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)
	return r
}

// Login handles POST /login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.Username == "" || req.Password == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "Username and password are required"})
		return
	}

	u, err := h.loginService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, login.ErrInvalidCredentials):
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, ErrorResponse{Error: "Invalid username or password"})
		case errors.Is(err, login.ErrAccountNotActive):
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, ErrorResponse{Error: "Account is not active"})
		default:
			slog.Error("Failed to process login", "error", err)
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, ErrorResponse{Error: "An error occurred while logging in"})
		}
		return
	}

	if _, err := h.sessionService.Authenticate(w, r, u.ID); err != nil {
		slog.Error("Failed to authenticate session", "user_id", u.ID, "error", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Error: "An error occurred while logging in"})
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, LoginResponse{
		Message:  "Logged in",
		UserID:   u.ID.String(),
		Username: u.Username,
	})
}

// Logout handles POST /logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionService.Destroy(w, r); err != nil {
		slog.Error("Failed to destroy session", "error", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Error: "An error occurred while logging out"})
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, LogoutResponse{Message: "Logged out"})
}
