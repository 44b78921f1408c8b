package preference

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/dvernon0786/reviewcraft-api/internal/auth"
	"github.com/dvernon0786/reviewcraft-api/internal/httputil"
	"github.com/dvernon0786/reviewcraft-api/internal/logging"
)

// Handler serves the user settings endpoints
type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// PreferencesRequest is the body for saving user preferences
type PreferencesRequest struct {
	BusinessName         *string         `json:"businessName"`
	BusinessType         *string         `json:"businessType"`
	ReviewPlatforms      []string        `json:"reviewPlatforms"`
	DefaultEmailTemplate *string         `json:"defaultEmailTemplate"`
	EmailSignature       *string         `json:"emailSignature"`
	Timezone             string          `json:"timezone"`
	Language             string          `json:"language"`
	Notifications        json.RawMessage `json:"notifications"`
}

// PlatformURLsRequest is the body for saving review platform links
type PlatformURLsRequest struct {
	Google      *string `json:"google"`
	Yelp        *string `json:"yelp"`
	Facebook    *string `json:"facebook"`
	Tripadvisor *string `json:"tripadvisor"`
	Trustpilot  *string `json:"trustpilot"`
}

// GetPreferences returns the authenticated user's preferences
// @Summary      Get user preferences
// @Tags         user-preferences
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} Preferences
// @Router       /api/user-preferences [get]
func (h *Handler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, "Access token required", "Please provide a valid authentication token", http.StatusUnauthorized)
		return
	}

	prefs, err := h.repo.GetPreferences(r.Context(), userID)
	if err != nil {
		logger.Error("failed to get user preferences", "error", err.Error())
		httputil.RespondError(w, "Failed to fetch preferences", "An error occurred while fetching your preferences", http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, prefs, http.StatusOK)
}

// UpdatePreferences saves the authenticated user's preferences
// @Summary      Update user preferences
// @Tags         user-preferences
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body PreferencesRequest true "Preferences"
// @Success      200 {object} Preferences
// @Failure      400 {object} httputil.ErrorResponse
// @Router       /api/user-preferences [put]
func (h *Handler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, "Access token required", "Please provide a valid authentication token", http.StatusUnauthorized)
		return
	}

	var req PreferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid preferences body", "error", err.Error())
		httputil.RespondError(w, "Invalid request body", "Request body must be valid JSON", http.StatusBadRequest)
		return
	}

	prefs := preferencesFromRequest(userID, &req)

	saved, err := h.repo.UpsertPreferences(r.Context(), prefs)
	if err != nil {
		logger.Error("failed to save user preferences", "error", err.Error())
		httputil.RespondError(w, "Failed to save preferences", "An error occurred while saving your preferences", http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, saved, http.StatusOK)
}

// GetPlatformURLs returns the authenticated user's review platform links
// @Summary      Get review platform URLs
// @Tags         review-platform-urls
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} PlatformURLs
// @Router       /api/review-platform-urls [get]
func (h *Handler) GetPlatformURLs(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, "Access token required", "Please provide a valid authentication token", http.StatusUnauthorized)
		return
	}

	urls, err := h.repo.GetPlatformURLs(r.Context(), userID)
	if err != nil {
		logger.Error("failed to get review platform urls", "error", err.Error())
		httputil.RespondError(w, "Failed to fetch review platform URLs", "An error occurred while fetching your review platform URLs", http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, urls, http.StatusOK)
}

// UpdatePlatformURLs saves the authenticated user's review platform links
// @Summary      Update review platform URLs
// @Tags         review-platform-urls
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body PlatformURLsRequest true "Platform links"
// @Success      200 {object} PlatformURLs
// @Failure      400 {object} httputil.ErrorResponse
// @Router       /api/review-platform-urls [put]
func (h *Handler) UpdatePlatformURLs(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, "Access token required", "Please provide a valid authentication token", http.StatusUnauthorized)
		return
	}

	var req PlatformURLsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid platform urls body", "error", err.Error())
		httputil.RespondError(w, "Invalid request body", "Request body must be valid JSON", http.StatusBadRequest)
		return
	}

	saved, err := h.repo.UpsertPlatformURLs(r.Context(), &PlatformURLs{
		UserID:      userID,
		Google:      req.Google,
		Yelp:        req.Yelp,
		Facebook:    req.Facebook,
		Tripadvisor: req.Tripadvisor,
		Trustpilot:  req.Trustpilot,
	})
	if err != nil {
		logger.Error("failed to save review platform urls", "error", err.Error())
		httputil.RespondError(w, "Failed to save review platform URLs", "An error occurred while saving your review platform URLs", http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, saved, http.StatusOK)
}

func preferencesFromRequest(userID uuid.UUID, req *PreferencesRequest) *Preferences {
	prefs := DefaultPreferences(userID)

	prefs.BusinessName = req.BusinessName
	prefs.BusinessType = req.BusinessType
	if req.ReviewPlatforms != nil {
		prefs.ReviewPlatforms = req.ReviewPlatforms
	}
	if req.DefaultEmailTemplate != nil {
		if id, err := uuid.Parse(*req.DefaultEmailTemplate); err == nil {
			prefs.DefaultEmailTemplate = &id
		}
	}
	prefs.EmailSignature = req.EmailSignature
	if req.Timezone != "" {
		prefs.Timezone = req.Timezone
	}
	if req.Language != "" {
		prefs.Language = req.Language
	}
	if len(req.Notifications) > 0 {
		prefs.Notifications = req.Notifications
	}

	return prefs
}
