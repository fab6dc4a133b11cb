package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/hubcontatos/contacthub/pkg/contact"
	"github.com/hubcontatos/contacthub/pkg/sessions"
	"github.com/hubcontatos/contacthub/pkg/storage"
)

// Handler exposes the contact book over HTTP. Every route requires an
// authenticated session.
type Handler struct {
	contactService *contact.Service
}

// NewHandler creates a new contact API handler
func NewHandler(contactService *contact.Service) *Handler {
	return &Handler{contactService: contactService}
}

// Routes mounts the contact endpoints. Callers must wrap them in the
// session auth middleware.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/categories", h.ListCategories)
	r.Route("/{contactID}", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Put("/", h.Update)
		r.Delete("/", h.Delete)
		r.Post("/picture", h.UploadPicture)
	})
	return r
}

func ownerFromRequest(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	ownerID, ok := sessions.UserIDFromContext(r.Context())
	if !ok {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, ErrorResponse{Error: "Authentication required"})
		return uuid.Nil, false
	}
	return ownerID, true
}

func contactIDFromRequest(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "contactID"))
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "Invalid contact ID"})
		return uuid.Nil, false
	}
	return id, true
}

func parseForm(w http.ResponseWriter, r *http.Request) (contact.ContactForm, bool) {
	var req ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "Invalid request body"})
		return contact.ContactForm{}, false
	}

	form := contact.ContactForm{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Phone:       req.Phone,
		Email:       req.Email,
		Description: req.Description,
	}
	if req.CategoryID != nil && *req.CategoryID != "" {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, ErrorResponse{Error: "Invalid category ID"})
			return contact.ContactForm{}, false
		}
		form.CategoryID = &categoryID
	}
	return form, true
}

func (h *Handler) toResponse(r *http.Request, ownerID uuid.UUID, c *contact.Contact) ContactResponse {
	resp := ContactResponse{
		ID:          c.ID.String(),
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		FullName:    c.FullName(),
		Phone:       c.Phone,
		Email:       c.Email,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
	}
	if c.CategoryID != nil {
		id := c.CategoryID.String()
		resp.CategoryID = &id
	}
	if c.PictureKey != "" {
		url, err := h.contactService.PictureURL(r.Context(), ownerID, c.ID)
		if err != nil {
			slog.Warn("Failed to resolve picture url", "contact_id", c.ID, "error", err)
		} else {
			resp.PictureURL = url
		}
	}
	return resp
}

func renderContactError(w http.ResponseWriter, r *http.Request, err error, action string) {
	var fieldErrs contact.ValidationErrors
	switch {
	case errors.As(err, &fieldErrs):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "Validation failed", Fields: fieldErrs})
	case errors.Is(err, contact.ErrContactNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, ErrorResponse{Error: "Contact not found"})
	case errors.Is(err, contact.ErrCategoryNotFound):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "Category not found"})
	case errors.Is(err, storage.ErrFileTooBig):
		render.Status(r, http.StatusRequestEntityTooLarge)
		render.JSON(w, r, ErrorResponse{Error: "Picture exceeds the 5MB limit"})
	case errors.Is(err, storage.ErrInvalidFileType):
		render.Status(r, http.StatusUnsupportedMediaType)
		render.JSON(w, r, ErrorResponse{Error: "Only JPEG and PNG pictures are allowed"})
	default:
		slog.Error("Failed to "+action, "error", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Error: "An error occurred while processing the contact"})
	}
}

// List handles GET /contacts
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	search := r.URL.Query().Get("q")

	result, err := h.contactService.List(r.Context(), ownerID, search, page)
	if err != nil {
		renderContactError(w, r, err, "list contacts")
		return
	}

	contacts := make([]ContactResponse, 0, len(result.Contacts))
	for i := range result.Contacts {
		contacts = append(contacts, h.toResponse(r, ownerID, &result.Contacts[i]))
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, ContactListResponse{
		Contacts: contacts,
		Total:    result.Total,
		Page:     page,
	})
}

// Create handles POST /contacts
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}
	form, ok := parseForm(w, r)
	if !ok {
		return
	}

	created, err := h.contactService.Create(r.Context(), ownerID, form)
	if err != nil {
		renderContactError(w, r, err, "create contact")
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, h.toResponse(r, ownerID, created))
}

// Get handles GET /contacts/{contactID}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}
	id, ok := contactIDFromRequest(w, r)
	if !ok {
		return
	}

	c, err := h.contactService.Get(r.Context(), ownerID, id)
	if err != nil {
		renderContactError(w, r, err, "get contact")
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, h.toResponse(r, ownerID, c))
}

// Update handles PUT /contacts/{contactID}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}
	id, ok := contactIDFromRequest(w, r)
	if !ok {
		return
	}
	form, ok := parseForm(w, r)
	if !ok {
		return
	}

	updated, err := h.contactService.Update(r.Context(), ownerID, id, form)
	if err != nil {
		renderContactError(w, r, err, "update contact")
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, h.toResponse(r, ownerID, updated))
}

// Delete handles DELETE /contacts/{contactID}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}
	id, ok := contactIDFromRequest(w, r)
	if !ok {
		return
	}

	if err := h.contactService.Delete(r.Context(), ownerID, id); err != nil {
		renderContactError(w, r, err, "delete contact")
		return
	}

	render.NoContent(w, r)
}

// UploadPicture handles POST /contacts/{contactID}/picture as multipart form
// data with a "picture" field
func (h *Handler) UploadPicture(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}
	id, ok := contactIDFromRequest(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(storage.MaxPictureSize); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "Invalid multipart form"})
		return
	}

	file, header, err := r.FormFile("picture")
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "Picture file is required"})
		return
	}
	defer file.Close()

	_, err = h.contactService.UploadPicture(r.Context(), ownerID, id, file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		renderContactError(w, r, err, "upload picture")
		return
	}

	url, err := h.contactService.PictureURL(r.Context(), ownerID, id)
	if err != nil {
		slog.Warn("Failed to resolve picture url", "contact_id", id, "error", err)
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, PictureResponse{
		Message:    "Picture uploaded",
		PictureURL: url,
	})
}

// ListCategories handles GET /contacts/categories
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.contactService.Categories(r.Context())
	if err != nil {
		renderContactError(w, r, err, "list categories")
		return
	}

	resp := make([]CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		resp = append(resp, CategoryResponse{ID: cat.ID.String(), Name: cat.Name})
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, resp)
}
