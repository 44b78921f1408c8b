package email

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/dvernon0786/reviewcraft-api/internal/auth"
	"github.com/dvernon0786/reviewcraft-api/internal/emaillog"
	"github.com/dvernon0786/reviewcraft-api/internal/httputil"
	"github.com/dvernon0786/reviewcraft-api/internal/logging"
)

// Handler serves the outbound email sending endpoints
type Handler struct {
	service *Service
	logs    *emaillog.Repository
}

func NewHandler(service *Service, logs *emaillog.Repository) *Handler {
	return &Handler{service: service, logs: logs}
}

// ReviewRequestRequest is the body for sending a review request email.
// Platform names in SelectedPlatforms pick which of the provided URLs
// end up as buttons in the email.
type ReviewRequestRequest struct {
	ContactName        string            `json:"contactName"`
	ContactEmail       string            `json:"contactEmail"`
	BusinessName       string            `json:"businessName"`
	ReviewPlatformURLs map[string]string `json:"reviewPlatformUrls"`
	SelectedPlatforms  []string          `json:"selectedPlatforms"`
	ContactID          *uuid.UUID        `json:"contactId,omitempty"`
	CampaignID         *uuid.UUID        `json:"campaignId,omitempty"`
}

// TestEmailRequest is the body for sending a configuration test email
type TestEmailRequest struct {
	To string `json:"to"`
}

// SendResponse reports the outcome of a send
type SendResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// SendReviewRequest renders and sends a review request email, recording
// the outcome in the email log.
// @Summary      Send a review request email
// @Tags         email-sending
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body ReviewRequestRequest true "Review request details"
// @Success      200 {object} SendResponse
// @Failure      400 {object} httputil.ErrorResponse "Missing required fields"
// @Failure      500 {object} httputil.ErrorResponse "Send failure"
// @Router       /api/email-sending/send-review-request [post]
func (h *Handler) SendReviewRequest(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, "Access token required", "Please provide a valid authentication token", http.StatusUnauthorized)
		return
	}

	var req ReviewRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid review request body", "error", err.Error())
		httputil.RespondError(w, "Invalid request body", "Request body must be valid JSON", http.StatusBadRequest)
		return
	}

	if req.ContactEmail == "" || req.ContactName == "" || req.BusinessName == "" {
		httputil.RespondError(w, "Missing required fields", "Contact email, name, and business name are required", http.StatusBadRequest)
		return
	}

	subject, body, err := RenderReviewRequest(ReviewRequestData{
		ContactName:   req.ContactName,
		BusinessName:  req.BusinessName,
		PlatformLinks: buildPlatformLinks(req.ReviewPlatformURLs, req.SelectedPlatforms),
	})
	if err != nil {
		logger.Error("failed to render review request email", "error", err.Error())
		httputil.RespondError(w, "Email sending failed", "An error occurred while sending the email", http.StatusInternalServerError)
		return
	}

	sendErr := h.service.Send(req.ContactEmail, subject, body)

	h.record(r, emaillog.EmailLog{
		UserID:     userID,
		ContactID:  req.ContactID,
		CampaignID: req.CampaignID,
		Subject:    subject,
		Content:    body,
	}, sendErr)

	if sendErr != nil {
		logger.Error("failed to send review request email", "email", req.ContactEmail, "error", sendErr.Error())
		httputil.RespondError(w, "Failed to send email", "An error occurred while sending the email", http.StatusInternalServerError)
		return
	}

	logger.Info("review request email sent", "email", req.ContactEmail)

	httputil.RespondJSON(w, SendResponse{
		Success: true,
		Message: "Email sent successfully",
	}, http.StatusOK)
}

// SendTestEmail sends a canned email to verify SMTP configuration.
// @Summary      Send a test email
// @Tags         email-sending
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body TestEmailRequest true "Recipient address"
// @Success      200 {object} SendResponse
// @Failure      400 {object} httputil.ErrorResponse "Missing email address"
// @Failure      500 {object} httputil.ErrorResponse "Send failure"
// @Router       /api/email-sending/send-test-email [post]
func (h *Handler) SendTestEmail(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, "Access token required", "Please provide a valid authentication token", http.StatusUnauthorized)
		return
	}

	var req TestEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid test email request body", "error", err.Error())
		httputil.RespondError(w, "Invalid request body", "Request body must be valid JSON", http.StatusBadRequest)
		return
	}

	if req.To == "" {
		httputil.RespondError(w, "Missing email address", "Email address is required", http.StatusBadRequest)
		return
	}

	subject, body := RenderTestEmail()
	sendErr := h.service.Send(req.To, subject, body)

	h.record(r, emaillog.EmailLog{
		UserID:  userID,
		Subject: subject,
		Content: body,
	}, sendErr)

	if sendErr != nil {
		logger.Error("failed to send test email", "email", req.To, "error", sendErr.Error())
		httputil.RespondError(w, "Failed to send email", "An error occurred while sending the email", http.StatusInternalServerError)
		return
	}

	logger.Info("test email sent", "email", req.To)

	httputil.RespondJSON(w, SendResponse{
		Success: true,
		Message: "Test email sent successfully",
	}, http.StatusOK)
}

// record writes the email log row. Logging failures are reported but
// never fail the send itself.
func (h *Handler) record(r *http.Request, log emaillog.EmailLog, sendErr error) {
	logger := logging.GetLoggerFromContext(r.Context())

	log.Status = emaillog.StatusSent
	if sendErr != nil {
		log.Status = emaillog.StatusFailed
		reason := sendErr.Error()
		log.BounceReason = &reason
	}

	if _, err := h.logs.Create(r.Context(), &log); err != nil {
		logger.Error("failed to record email log", "error", err.Error())
	}
}

// buildPlatformLinks keeps the selected platforms that have a URL
// configured, in the order they were selected.
func buildPlatformLinks(urls map[string]string, selected []string) []PlatformLink {
	links := make([]PlatformLink, 0, len(selected))
	for _, name := range selected {
		if url, ok := urls[name]; ok && url != "" {
			links = append(links, PlatformLink{Name: displayName(name), URL: url})
		}
	}
	return links
}

func displayName(platform string) string {
	switch platform {
	case "google":
		return "Google"
	case "yelp":
		return "Yelp"
	case "facebook":
		return "Facebook"
	case "tripadvisor":
		return "Tripadvisor"
	case "trustpilot":
		return "Trustpilot"
	default:
		return platform
	}
}
