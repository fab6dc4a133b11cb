package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/jinzhu/copier"

	"github.com/hubcontatos/contacthub/pkg/sessions"
	"github.com/hubcontatos/contacthub/pkg/user"
	"github.com/hubcontatos/contacthub/pkg/utils"
)

// Handler exposes the authenticated user's profile over HTTP
type Handler struct {
	userService *user.Service
}

// NewHandler creates a new user API handler
func NewHandler(userService *user.Service) *Handler {
	return &Handler{userService: userService}
}

// Routes mounts the profile endpoints. Callers must wrap them in the
// session auth middleware.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/me", h.GetProfile)
	r.Put("/me", h.UpdateProfile)
	return r
}

func toUserResponse(u *user.User) UserResponse {
	var resp UserResponse
	if err := copier.Copy(&resp, u); err != nil {
		slog.Error("Failed to map user response", "error", err)
	}
	resp.ID = u.ID.String()
	return resp
}

// GetProfile handles GET /me
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessions.UserIDFromContext(r.Context())
	if !ok {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, ErrorResponse{Error: "Authentication required"})
		return
	}

	u, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, ErrorResponse{Error: "User not found"})
			return
		}
		slog.Error("Failed to load user", "user_id", userID, "error", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Error: "An error occurred while loading the profile"})
		return
	}

	profile, err := h.userService.GetProfile(r.Context(), userID)
	if err != nil {
		slog.Error("Failed to load profile", "user_id", userID, "error", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Error: "An error occurred while loading the profile"})
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, ProfileResponse{
		User:     toUserResponse(u),
		PublicID: profile.PublicID.String(),
	})
}

// UpdateProfile handles PUT /me
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessions.UserIDFromContext(r.Context())
	if !ok {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, ErrorResponse{Error: "Authentication required"})
		return
	}

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "Invalid request body"})
		return
	}

	params := user.UpdateUserParams{}
	if req.FirstName != nil {
		name := utils.TitleCase(strings.TrimSpace(*req.FirstName))
		if len([]rune(name)) < 2 || utils.ContainsDigit(name) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, ErrorResponse{Error: "First name must have at least 2 characters and no digits"})
			return
		}
		params.FirstName = &name
	}
	if req.LastName != nil {
		name := utils.TitleCase(strings.TrimSpace(*req.LastName))
		if utils.ContainsDigit(name) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, ErrorResponse{Error: "Last name cannot contain digits"})
			return
		}
		params.LastName = &name
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if !utils.ValidEmail(email) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, ErrorResponse{Error: "Enter a valid email address"})
			return
		}
		params.Email = &email
	}

	updated, err := h.userService.UpdateUser(r.Context(), userID, params)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserNotFound):
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, ErrorResponse{Error: "User not found"})
		case errors.Is(err, user.ErrEmailTaken):
			render.Status(r, http.StatusConflict)
			render.JSON(w, r, ErrorResponse{Error: "Email is already registered"})
		case errors.Is(err, user.ErrUsernameTaken):
			render.Status(r, http.StatusConflict)
			render.JSON(w, r, ErrorResponse{Error: "Username is already taken"})
		default:
			slog.Error("Failed to update user", "user_id", userID, "error", err)
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, ErrorResponse{Error: "An error occurred while updating the profile"})
		}
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, toUserResponse(updated))
}
