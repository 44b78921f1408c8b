package emaillog

import (
	"net/http"
	"strconv"

	"github.com/dvernon0786/reviewcraft-api/internal/auth"
	"github.com/dvernon0786/reviewcraft-api/internal/httputil"
	"github.com/dvernon0786/reviewcraft-api/internal/logging"
)

// Handler serves the email log endpoints
type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// List returns the authenticated user's email logs, newest first
// @Summary      List email logs
// @Tags         email-logs
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Maximum number of logs to return"
// @Success      200 {array} EmailLog
// @Failure      401 {object} httputil.ErrorResponse
// @Router       /api/email-logs [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, "Access token required", "Please provide a valid authentication token", http.StatusUnauthorized)
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	logs, err := h.repo.ListByUser(r.Context(), userID, limit)
	if err != nil {
		logger.Error("failed to list email logs", "error", err.Error())
		httputil.RespondError(w, "Failed to fetch email logs", "An error occurred while retrieving email logs", http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, logs, http.StatusOK)
}
