package campaign

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

// Handler serves the campaign CRUD endpoints
type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// CampaignRequest is the body for creating or updating a campaign
type CampaignRequest struct {
	Name             string          `json:"name"`
	Description      *string         `json:"description,omitempty"`
	Status           string          `json:"status"`
	BusinessName     *string         `json:"businessName,omitempty"`
	TargetPlatforms  []string        `json:"targetPlatforms"`
	EmailTemplate    *string         `json:"emailTemplate,omitempty"`
	SubjectLine      *string         `json:"subjectLine,omitempty"`
	SelectedContacts []string        `json:"selectedContacts"`
	Steps            json.RawMessage `json:"steps,omitempty"`
}

// List returns all campaigns owned by the authenticated user
// @Summary      List campaigns
// @Tags         campaigns
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} Campaign
// @Router       /api/campaigns [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, "Access token required", "Please provide a valid authentication token", http.StatusUnauthorized)
		return
	}

	campaigns, err := h.repo.ListByUser(r.Context(), userID)
	if err != nil {
		logger.Error("failed to list campaigns", "error", err.Error())
		httputil.RespondError(w, "Failed to fetch campaigns", "An error occurred while fetching campaigns", http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, campaigns, http.StatusOK)
}

// Get returns a single campaign
// @Summary      Get a campaign
// @Tags         campaigns
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Campaign ID"
// @Success      200 {object} Campaign
// @Failure      404 {object} httputil.ErrorResponse
// @Router       /api/campaigns/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, "Access token required", "Please provide a valid authentication token", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondError(w, "Campaign not found", "Campaign with the specified ID does not exist", http.StatusNotFound)
		return
	}

	c, err := h.repo.GetByID(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.RespondError(w, "Campaign not found", "Campaign with the specified ID does not exist", http.StatusNotFound)
			return
		}
		logger.Error("failed to get campaign", "error", err.Error())
		httputil.RespondError(w, "Failed to fetch campaign", "An error occurred while fetching the campaign", http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, c, http.StatusOK)
}

// Create adds a campaign
// @Summary      Create a campaign
// @Tags         campaigns
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CampaignRequest true "Campaign details"
// @Success      201 {object} Campaign
// @Failure      400 {object} httputil.ErrorResponse
// @Router       /api/campaigns [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, "Access token required", "Please provide a valid authentication token", http.StatusUnauthorized)
		return
	}

	var req CampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid campaign request body", "error", err.Error())
		httputil.RespondError(w, "Invalid request body", "Request body must be valid JSON", http.StatusBadRequest)
		return
	}

	if req.Name == "" {
		httputil.RespondError(w, "Missing required fields", "Campaign name is required", http.StatusBadRequest)
		return
	}

	created, err := h.repo.Create(r.Context(), campaignFromRequest(userID, &req))
	if err != nil {
		logger.Error("failed to create campaign", "error", err.Error())
		httputil.RespondError(w, "Failed to create campaign", "An error occurred while creating the campaign", http.StatusInternalServerError)
		return
	}

	logger.Info("campaign created", "campaign_id", created.ID)

	httputil.RespondJSON(w, created, http.StatusCreated)
}

// Update replaces an existing campaign's editable fields
// @Summary      Update a campaign
// @Tags         campaigns
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Campaign ID"
// @Param        request body CampaignRequest true "Campaign details"
// @Success      200 {object} Campaign
// @Failure      404 {object} httputil.ErrorResponse
// @Router       /api/campaigns/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, "Access token required", "Please provide a valid authentication token", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondError(w, "Campaign not found", "Campaign with the specified ID does not exist", http.StatusNotFound)
		return
	}

	var req CampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid campaign update body", "error", err.Error())
		httputil.RespondError(w, "Invalid request body", "Request body must be valid JSON", http.StatusBadRequest)
		return
	}

	existing, err := h.repo.GetByID(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.RespondError(w, "Campaign not found", "Campaign with the specified ID does not exist", http.StatusNotFound)
			return
		}
		logger.Error("failed to load campaign for update", "error", err.Error())
		httputil.RespondError(w, "Failed to update campaign", "An error occurred while updating the campaign", http.StatusInternalServerError)
		return
	}

	updatedCampaign := campaignFromRequest(userID, &req)
	updatedCampaign.ID = existing.ID
	updatedCampaign.Enrollments = existing.Enrollments
	updatedCampaign.CompletionRate = existing.CompletionRate
	updatedCampaign.CreatedAt = existing.CreatedAt

	updated, err := h.repo.Update(r.Context(), updatedCampaign)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.RespondError(w, "Campaign not found", "Campaign with the specified ID does not exist", http.StatusNotFound)
			return
		}
		logger.Error("failed to update campaign", "error", err.Error())
		httputil.RespondError(w, "Failed to update campaign", "An error occurred while updating the campaign", http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, updated, http.StatusOK)
}

// Delete removes a campaign
// @Summary      Delete a campaign
// @Tags         campaigns
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Campaign ID"
// @Success      200 {object} map[string]string
// @Failure      404 {object} httputil.ErrorResponse
// @Router       /api/campaigns/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, "Access token required", "Please provide a valid authentication token", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondError(w, "Campaign not found", "Campaign with the specified ID does not exist", http.StatusNotFound)
		return
	}

	if err := h.repo.Delete(r.Context(), userID, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.RespondError(w, "Campaign not found", "Campaign with the specified ID does not exist", http.StatusNotFound)
			return
		}
		logger.Error("failed to delete campaign", "error", err.Error())
		httputil.RespondError(w, "Failed to delete campaign", "An error occurred while deleting the campaign", http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, map[string]string{
		"message": "Campaign deleted successfully",
		"id":      id.String(),
	}, http.StatusOK)
}

func campaignFromRequest(userID uuid.UUID, req *CampaignRequest) *Campaign {
	status := req.Status
	if status == "" {
		status = "draft"
	}
	platforms := req.TargetPlatforms
	if platforms == nil {
		platforms = []string{}
	}
	contacts := req.SelectedContacts
	if contacts == nil {
		contacts = []string{}
	}

	return &Campaign{
		UserID:           userID,
		Name:             req.Name,
		Description:      req.Description,
		Status:           status,
		BusinessName:     req.BusinessName,
		TargetPlatforms:  platforms,
		EmailTemplate:    req.EmailTemplate,
		SubjectLine:      req.SubjectLine,
		SelectedContacts: contacts,
		Steps:            req.Steps,
	}
}
