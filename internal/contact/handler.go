package contact

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dvernon0786/reviewcraft-api/internal/auth"
	"github.com/dvernon0786/reviewcraft-api/internal/httputil"
	"github.com/dvernon0786/reviewcraft-api/internal/logging"
)

// Handler serves the contact CRUD endpoints
type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// CreateContactRequest is the body for creating a contact
type CreateContactRequest struct {
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Phone        *string  `json:"phone,omitempty"`
	Website      *string  `json:"website,omitempty"`
	Status       string   `json:"status"`
	Tags         []string `json:"tags"`
	BusinessName *string  `json:"businessName,omitempty"`
	Notes        *string  `json:"notes,omitempty"`
}

// UpdateContactRequest carries a partial update; nil fields are left as-is
type UpdateContactRequest struct {
	Name         *string  `json:"name,omitempty"`
	Email        *string  `json:"email,omitempty"`
	Phone        *string  `json:"phone,omitempty"`
	Website      *string  `json:"website,omitempty"`
	Status       *string  `json:"status,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	BusinessName *string  `json:"businessName,omitempty"`
	Notes        *string  `json:"notes,omitempty"`
	ReviewStatus *string  `json:"reviewStatus,omitempty"`
}

// List returns all contacts owned by the authenticated user
// @Summary      List contacts
// @Tags         contacts
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} Contact
// @Failure      401 {object} httputil.ErrorResponse
// @Router       /api/contacts [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, "Access token required", "Please provide a valid authentication token", http.StatusUnauthorized)
		return
	}

	contacts, err := h.repo.ListByUser(r.Context(), userID)
	if err != nil {
		logger.Error("failed to list contacts", "error", err.Error())
		httputil.RespondError(w, "Failed to fetch contacts", "An error occurred while retrieving contacts", http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, contacts, http.StatusOK)
}

// Get returns a single contact by id
// @Summary      Get a contact
// @Tags         contacts
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Contact ID"
// @Success      200 {object} Contact
// @Failure      404 {object} httputil.ErrorResponse
// @Router       /api/contacts/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, "Access token required", "Please provide a valid authentication token", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondError(w, "Contact not found", "The requested contact could not be found", http.StatusNotFound)
		return
	}

	c, err := h.repo.GetByID(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.RespondError(w, "Contact not found", "The requested contact could not be found", http.StatusNotFound)
			return
		}
		logger.Error("failed to get contact", "error", err.Error())
		httputil.RespondError(w, "Failed to fetch contact", "An error occurred while retrieving the contact", http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, c, http.StatusOK)
}

// Create adds a new contact for the authenticated user
// @Summary      Create a contact
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateContactRequest true "Contact details"
// @Success      201 {object} Contact
// @Failure      400 {object} httputil.ErrorResponse "Missing name or email"
// @Router       /api/contacts [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, "Access token required", "Please provide a valid authentication token", http.StatusUnauthorized)
		return
	}

	var req CreateContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid contact request body", "error", err.Error())
		httputil.RespondError(w, "Invalid request body", "Request body must be valid JSON", http.StatusBadRequest)
		return
	}

	if req.Name == "" || req.Email == "" {
		httputil.RespondError(w, "Missing required fields", "Name and email are required", http.StatusBadRequest)
		return
	}

	status := req.Status
	if status == "" {
		status = "active"
	}
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	created, err := h.repo.Create(r.Context(), &Contact{
		UserID:       userID,
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Website:      req.Website,
		Status:       status,
		Tags:         tags,
		BusinessName: req.BusinessName,
		Notes:        req.Notes,
		ReviewStatus: "none",
	})
	if err != nil {
		logger.Error("failed to create contact", "error", err.Error())
		httputil.RespondError(w, "Failed to create contact", "An error occurred while creating the contact", http.StatusInternalServerError)
		return
	}

	logger.Info("contact created", "contact_id", created.ID)

	httputil.RespondJSON(w, created, http.StatusCreated)
}

// Update applies a partial update to one of the user's contacts
// @Summary      Update a contact
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Contact ID"
// @Param        request body UpdateContactRequest true "Fields to change"
// @Success      200 {object} Contact
// @Failure      404 {object} httputil.ErrorResponse
// @Router       /api/contacts/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, "Access token required", "Please provide a valid authentication token", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondError(w, "Contact not found", "The requested contact could not be found", http.StatusNotFound)
		return
	}

	var req UpdateContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid contact update body", "error", err.Error())
		httputil.RespondError(w, "Invalid request body", "Request body must be valid JSON", http.StatusBadRequest)
		return
	}

	existing, err := h.repo.GetByID(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.RespondError(w, "Contact not found", "The requested contact could not be found", http.StatusNotFound)
			return
		}
		logger.Error("failed to load contact for update", "error", err.Error())
		httputil.RespondError(w, "Failed to update contact", "An error occurred while updating the contact", http.StatusInternalServerError)
		return
	}

	applyContactUpdate(existing, &req)

	updated, err := h.repo.Update(r.Context(), existing)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.RespondError(w, "Contact not found", "The requested contact could not be found", http.StatusNotFound)
			return
		}
		logger.Error("failed to update contact", "error", err.Error())
		httputil.RespondError(w, "Failed to update contact", "An error occurred while updating the contact", http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, updated, http.StatusOK)
}

// Delete removes one of the user's contacts
// @Summary      Delete a contact
// @Tags         contacts
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Contact ID"
// @Success      200 {object} map[string]string
// @Failure      404 {object} httputil.ErrorResponse
// @Router       /api/contacts/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, "Access token required", "Please provide a valid authentication token", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondError(w, "Contact not found", "The requested contact could not be found", http.StatusNotFound)
		return
	}

	if err := h.repo.Delete(r.Context(), userID, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.RespondError(w, "Contact not found", "The requested contact could not be found", http.StatusNotFound)
			return
		}
		logger.Error("failed to delete contact", "error", err.Error())
		httputil.RespondError(w, "Failed to delete contact", "An error occurred while deleting the contact", http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, map[string]string{
		"message": "Contact deleted successfully",
		"id":      id.String(),
	}, http.StatusOK)
}

// Demo serves the demo-mode contact list. Authenticated callers get
// their real contacts; anonymous callers get canned sample data.
// @Summary      Demo contacts
// @Tags         contacts
// @Produce      json
// @Success      200 {array} Contact
// @Router       /api/demo/contacts [get]
func (h *Handler) Demo(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	if userID, ok := auth.GetUserIDFromContext(r.Context()); ok {
		contacts, err := h.repo.ListByUser(r.Context(), userID)
		if err != nil {
			logger.Error("failed to list contacts for demo", "error", err.Error())
			httputil.RespondError(w, "Demo endpoint failed", "An error occurred in demo mode", http.StatusInternalServerError)
			return
		}
		httputil.RespondJSON(w, contacts, http.StatusOK)
		return
	}

	httputil.RespondJSON(w, demoContacts(), http.StatusOK)
}

func demoContacts() []Contact {
	phone := "(555) 123-4567"
	business := "Demo Business"
	notes := "Demo contact for testing"
	now := time.Now()
	return []Contact{
		{
			ID:           uuid.MustParse("00000000-0000-0000-0000-000000000001"),
			Name:         "John Doe",
			Email:        "john@example.com",
			Phone:        &phone,
			Status:       "active",
			Tags:         []string{"vip", "customer"},
			BusinessName: &business,
			Notes:        &notes,
			ReviewStatus: "none",
			CreatedAt:    now,
			UpdatedAt:    now,
		},
	}
}

func applyContactUpdate(c *Contact, req *UpdateContactRequest) {
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Email != nil {
		c.Email = *req.Email
	}
	if req.Phone != nil {
		c.Phone = req.Phone
	}
	if req.Website != nil {
		c.Website = req.Website
	}
	if req.Status != nil {
		c.Status = *req.Status
	}
	if req.Tags != nil {
		c.Tags = req.Tags
	}
	if req.BusinessName != nil {
		c.BusinessName = req.BusinessName
	}
	if req.Notes != nil {
		c.Notes = req.Notes
	}
	if req.ReviewStatus != nil {
		c.ReviewStatus = *req.ReviewStatus
	}
}
