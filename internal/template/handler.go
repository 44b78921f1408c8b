package template

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dvernon0786/reviewcraft-api/internal/auth"
	"github.com/dvernon0786/reviewcraft-api/internal/httputil"
	"github.com/dvernon0786/reviewcraft-api/internal/logging"
)

// Handler serves the email template CRUD endpoints
type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// TemplateRequest is the body for creating or updating an email template
type TemplateRequest struct {
	Name      string   `json:"name"`
	Subject   string   `json:"subject"`
	Content   string   `json:"content"`
	Category  string   `json:"category"`
	IsDefault bool     `json:"isDefault"`
	MergeTags []string `json:"mergeTags"`
}

// List returns all email templates owned by the authenticated user
// @Summary      List email templates
// @Tags         email-templates
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} Template
// @Router       /api/email-templates [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, "Access token required", "Please provide a valid authentication token", http.StatusUnauthorized)
		return
	}

	templates, err := h.repo.ListByUser(r.Context(), userID)
	if err != nil {
		logger.Error("failed to list email templates", "error", err.Error())
		httputil.RespondError(w, "Failed to fetch email templates", "An error occurred while fetching email templates", http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, templates, http.StatusOK)
}

// Get returns a single email template
// @Summary      Get an email template
// @Tags         email-templates
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Template ID"
// @Success      200 {object} Template
// @Failure      404 {object} httputil.ErrorResponse
// @Router       /api/email-templates/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, "Access token required", "Please provide a valid authentication token", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondError(w, "Template not found", "The requested email template could not be found", http.StatusNotFound)
		return
	}

	t, err := h.repo.GetByID(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.RespondError(w, "Template not found", "The requested email template could not be found", http.StatusNotFound)
			return
		}
		logger.Error("failed to get email template", "error", err.Error())
		httputil.RespondError(w, "Failed to fetch email template", "An error occurred while fetching the email template", http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, t, http.StatusOK)
}

// Create adds an email template
// @Summary      Create an email template
// @Tags         email-templates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body TemplateRequest true "Template details"
// @Success      201 {object} Template
// @Failure      400 {object} httputil.ErrorResponse
// @Router       /api/email-templates [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, "Access token required", "Please provide a valid authentication token", http.StatusUnauthorized)
		return
	}

	var req TemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid template request body", "error", err.Error())
		httputil.RespondError(w, "Invalid request body", "Request body must be valid JSON", http.StatusBadRequest)
		return
	}

	if req.Name == "" || req.Subject == "" || req.Content == "" || req.Category == "" {
		httputil.RespondError(w, "Missing required fields", "Name, subject, content, and category are required", http.StatusBadRequest)
		return
	}

	mergeTags := req.MergeTags
	if mergeTags == nil {
		mergeTags = []string{}
	}

	created, err := h.repo.Create(r.Context(), &Template{
		UserID:    userID,
		Name:      req.Name,
		Subject:   req.Subject,
		Content:   req.Content,
		Category:  req.Category,
		IsDefault: req.IsDefault,
		MergeTags: mergeTags,
	})
	if err != nil {
		logger.Error("failed to create email template", "error", err.Error())
		httputil.RespondError(w, "Failed to create email template", "An error occurred while creating the email template", http.StatusInternalServerError)
		return
	}

	logger.Info("email template created", "template_id", created.ID)

	httputil.RespondJSON(w, created, http.StatusCreated)
}

// Update replaces an email template's editable fields
// @Summary      Update an email template
// @Tags         email-templates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Template ID"
// @Param        request body TemplateRequest true "Template details"
// @Success      200 {object} Template
// @Failure      404 {object} httputil.ErrorResponse
// @Router       /api/email-templates/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, "Access token required", "Please provide a valid authentication token", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondError(w, "Template not found", "The requested email template could not be found", http.StatusNotFound)
		return
	}

	var req TemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid template update body", "error", err.Error())
		httputil.RespondError(w, "Invalid request body", "Request body must be valid JSON", http.StatusBadRequest)
		return
	}

	existing, err := h.repo.GetByID(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.RespondError(w, "Template not found", "The requested email template could not be found", http.StatusNotFound)
			return
		}
		logger.Error("failed to load email template for update", "error", err.Error())
		httputil.RespondError(w, "Failed to update email template", "An error occurred while updating the email template", http.StatusInternalServerError)
		return
	}

	mergeTags := req.MergeTags
	if mergeTags == nil {
		mergeTags = []string{}
	}

	updated, err := h.repo.Update(r.Context(), &Template{
		ID:        existing.ID,
		UserID:    userID,
		Name:      req.Name,
		Subject:   req.Subject,
		Content:   req.Content,
		Category:  req.Category,
		IsDefault: req.IsDefault,
		MergeTags: mergeTags,
		CreatedAt: existing.CreatedAt,
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.RespondError(w, "Template not found", "The requested email template could not be found", http.StatusNotFound)
			return
		}
		logger.Error("failed to update email template", "error", err.Error())
		httputil.RespondError(w, "Failed to update email template", "An error occurred while updating the email template", http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, updated, http.StatusOK)
}

// Delete removes an email template
// @Summary      Delete an email template
// @Tags         email-templates
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Template ID"
// @Success      200 {object} map[string]string
// @Failure      404 {object} httputil.ErrorResponse
// @Router       /api/email-templates/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, "Access token required", "Please provide a valid authentication token", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondError(w, "Template not found", "The requested email template could not be found", http.StatusNotFound)
		return
	}

	if err := h.repo.Delete(r.Context(), userID, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.RespondError(w, "Template not found", "The requested email template could not be found", http.StatusNotFound)
			return
		}
		logger.Error("failed to delete email template", "error", err.Error())
		httputil.RespondError(w, "Failed to delete email template", "An error occurred while deleting the email template", http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, map[string]string{
		"message": "Email template deleted successfully",
		"id":      id.String(),
	}, http.StatusOK)
}
