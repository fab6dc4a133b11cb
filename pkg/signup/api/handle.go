package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/hubcontatos/contacthub/pkg/sessions"
	"github.com/hubcontatos/contacthub/pkg/signup"
	"github.com/hubcontatos/contacthub/pkg/user"
	"github.com/hubcontatos/contacthub/pkg/verification"
)

// Handler exposes the registration workflow over HTTP
type Handler struct {
	signupService  *signup.Service
	sessionService *sessions.Service
}

// NewHandler creates a new registration API handler
func NewHandler(signupService *signup.Service, sessionService *sessions.Service) *Handler {
	return &Handler{
		signupService:  signupService,
		sessionService: sessionService,
	}
}

// Routes mounts the registration endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/register", h.Register)
	r.Get("/verify-email", h.VerifyStatus)
	r.Post("/verify-email", h.VerifyEmail)
	r.Post("/resend-code", h.ResendCode)
	return r
}

// Register handles POST /register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessionService.EnsureSession(w, r)
	if err != nil {
		slog.Error("Failed to ensure session", "error", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Error: "An error occurred while starting registration"})
		return
	}

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "Invalid request body"})
		return
	}

	err = h.signupService.Submit(r.Context(), session.ID, signup.RegisterRequest{
		Username:        req.Username,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
	})
	if err != nil {
		var fieldErrs signup.ValidationErrors
		switch {
		case errors.As(err, &fieldErrs):
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, ErrorResponse{Error: "Validation failed", Fields: fieldErrs})
		case errors.Is(err, signup.ErrRegistrationDisabled):
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, ErrorResponse{Error: "Registration is currently disabled"})
		default:
			slog.Error("Failed to submit registration", "error", err)
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, ErrorResponse{Error: "An error occurred while processing registration"})
		}
		return
	}

	email, err := h.signupService.PendingEmail(r.Context(), session.ID)
	if err != nil {
		email = ""
	}

	render.Status(r, http.StatusAccepted)
	render.JSON(w, r, RegisterResponse{
		Message: "Verification code sent, check your email",
		Email:   email,
	})
}

// VerifyStatus handles GET /verify-email. It reports which email is
// awaiting verification for the caller's session.
func (h *Handler) VerifyStatus(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessionService.EnsureSession(w, r)
	if err != nil {
		slog.Error("Failed to ensure session", "error", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Error: "An error occurred while checking verification status"})
		return
	}

	email, err := h.signupService.PendingEmail(r.Context(), session.ID)
	if err != nil {
		if errors.Is(err, signup.ErrSessionExpired) {
			render.Status(r, http.StatusGone)
			render.JSON(w, r, ErrorResponse{Error: "Registration session expired, please register again"})
			return
		}
		slog.Error("Failed to load pending registration", "error", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Error: "An error occurred while checking verification status"})
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, VerifyStatusResponse{Email: email})
}

// VerifyEmail handles POST /verify-email
func (h *Handler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessionService.EnsureSession(w, r)
	if err != nil {
		slog.Error("Failed to ensure session", "error", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Error: "An error occurred while verifying"})
		return
	}

	var req VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.Code == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "Code is required"})
		return
	}

	created, err := h.signupService.Verify(r.Context(), session.ID, req.Code)
	if err != nil {
		status := http.StatusBadRequest
		message := "Failed to verify email"

		switch {
		case errors.Is(err, signup.ErrSessionExpired):
			status = http.StatusGone
			message = "Registration session expired, please register again"
		case errors.Is(err, verification.ErrCodeNotFound):
			status = http.StatusNotFound
			message = "No verification code found, request a new one"
		case errors.Is(err, verification.ErrCodeExpired):
			message = "Verification code has expired, request a new one"
		case errors.Is(err, verification.ErrCodeMismatch):
			message = "Incorrect verification code"
		case errors.Is(err, verification.ErrCodeAlreadyUsed):
			message = "Verification code has already been used"
		case errors.Is(err, user.ErrUsernameTaken):
			status = http.StatusConflict
			message = "Username is no longer available, please register again"
		case errors.Is(err, user.ErrEmailTaken):
			status = http.StatusConflict
			message = "Email is no longer available, please register again"
		default:
			slog.Error("Failed to verify registration", "error", err)
			status = http.StatusInternalServerError
			message = "An error occurred while verifying email"
		}

		render.Status(r, status)
		render.JSON(w, r, ErrorResponse{Error: message})
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, VerifyResponse{
		Message:  "Email verified, account created",
		UserID:   created.ID.String(),
		Username: created.Username,
	})
}

// ResendCode handles POST /resend-code
func (h *Handler) ResendCode(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessionService.EnsureSession(w, r)
	if err != nil {
		slog.Error("Failed to ensure session", "error", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Error: "An error occurred while resending"})
		return
	}

	if err := h.signupService.Resend(r.Context(), session.ID); err != nil {
		if errors.Is(err, signup.ErrSessionExpired) {
			render.Status(r, http.StatusGone)
			render.JSON(w, r, ErrorResponse{Error: "Registration session expired, please register again"})
			return
		}
		slog.Error("Failed to resend verification code", "error", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Error: "An error occurred while resending the code"})
		return
	}

	email, err := h.signupService.PendingEmail(r.Context(), session.ID)
	if err != nil {
		email = ""
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, ResendResponse{
		Message: "A new verification code was sent",
		Email:   email,
	})
}
