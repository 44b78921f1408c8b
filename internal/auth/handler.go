package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/dvernon0786/reviewcraft-api/internal/httputil"
	"github.com/dvernon0786/reviewcraft-api/internal/logging"
	"github.com/dvernon0786/reviewcraft-api/internal/ratelimit"
	"github.com/dvernon0786/reviewcraft-api/internal/user"
)

// Handler contains HTTP handlers for authentication endpoints
type Handler struct {
	service     *Service
	rateLimiter *ratelimit.Limiter
	logger      *logging.Logger
}

func NewHandler(service *Service, rateLimiter *ratelimit.Limiter, logger *logging.Logger) *Handler {
	return &Handler{
		service:     service,
		rateLimiter: rateLimiter,
		logger:      logger,
	}
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Email        string  `json:"email"`
	Password     string  `json:"password"`
	FirstName    *string `json:"firstName,omitempty"`
	LastName     *string `json:"lastName,omitempty"`
	BusinessName *string `json:"businessName,omitempty"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	User    *user.User `json:"user"`
	Token   string     `json:"token"`
}

// ProfileResponse is returned by the current-user endpoint
type ProfileResponse struct {
	Success bool       `json:"success"`
	User    *user.User `json:"user"`
}

// AvailabilityResponse is returned by the email availability check
type AvailabilityResponse struct {
	Available bool   `json:"available"`
	Message   string `json:"message"`
}

// ForgotPasswordRequest represents the password reset request
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest represents the password reset confirmation
type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// Register handles user registration
// @Summary      Register a new user
// @Description  Create a new account with email and password, returning the profile and a session token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration credentials"
// @Success      201 {object} AuthResponse
// @Failure      400 {object} httputil.ErrorResponse "Missing or invalid fields"
// @Failure      409 {object} httputil.ErrorResponse "Email already registered"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /api/auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	if h.limited(w, r, "register") {
		return
	}

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid registration request body", "error", err.Error())
		httputil.RespondError(w, "Invalid request body", "Request body must be valid JSON", http.StatusBadRequest)
		return
	}

	logger = logger.WithFields(map[string]any{"email": req.Email})

	newUser, token, err := h.service.Register(r.Context(), RegisterParams{
		Email:        req.Email,
		Password:     req.Password,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		BusinessName: req.BusinessName,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields):
			logger.Warn("registration failed: missing fields")
			httputil.RespondError(w, "Missing required fields", "Email and password are required", http.StatusBadRequest)
		case errors.Is(err, ErrInvalidEmailFormat):
			logger.Warn("registration failed: invalid email format")
			httputil.RespondError(w, "Invalid email format", "Please provide a valid email address", http.StatusBadRequest)
		case errors.Is(err, ErrPasswordTooShort):
			logger.Warn("registration failed: password too short")
			httputil.RespondError(w, "Password too weak", "Password must be at least 8 characters long", http.StatusBadRequest)
		case errors.Is(err, ErrPasswordTooLong):
			logger.Warn("registration failed: password too long")
			httputil.RespondError(w, "Password too long", "Password must be at most 72 characters long", http.StatusBadRequest)
		case errors.Is(err, user.ErrDuplicateEmail):
			logger.Warn("registration failed: email already registered")
			httputil.RespondError(w, "Email already registered", "An account with this email already exists", http.StatusConflict)
		default:
			logger.Error("registration failed: internal error", "error", err.Error())
			httputil.RespondError(w, "Registration failed", "An error occurred during registration", http.StatusInternalServerError)
		}
		return
	}

	logger.Info("user registered successfully", "user_id", newUser.ID)

	httputil.RespondJSON(w, AuthResponse{
		Success: true,
		Message: "User registered successfully",
		User:    newUser,
		Token:   token,
	}, http.StatusCreated)
}

// Login handles user login
// @Summary      User login
// @Description  Authenticate with email and password, returning the profile and a session token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200 {object} AuthResponse
// @Failure      400 {object} httputil.ErrorResponse "Missing fields"
// @Failure      401 {object} httputil.ErrorResponse "Invalid credentials or disabled account"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /api/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	if h.limited(w, r, "login") {
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid login request body", "error", err.Error())
		httputil.RespondError(w, "Invalid request body", "Request body must be valid JSON", http.StatusBadRequest)
		return
	}

	logger = logger.WithFields(map[string]any{"email": req.Email})

	loggedInUser, token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields):
			logger.Warn("login failed: missing fields")
			httputil.RespondError(w, "Missing required fields", "Email and password are required", http.StatusBadRequest)
		case errors.Is(err, ErrInvalidCredentials):
			logger.Warn("login failed: invalid credentials")
			httputil.RespondError(w, "Invalid credentials", "Email or password is incorrect", http.StatusUnauthorized)
		case errors.Is(err, ErrAccountDisabled):
			logger.Warn("login failed: account disabled")
			httputil.RespondError(w, "Account disabled", "Your account has been disabled", http.StatusUnauthorized)
		default:
			logger.Error("login failed: internal error", "error", err.Error())
			httputil.RespondError(w, "Login failed", "An error occurred during login", http.StatusInternalServerError)
		}
		return
	}

	logger.Info("user logged in successfully", "user_id", loggedInUser.ID)

	httputil.RespondJSON(w, AuthResponse{
		Success: true,
		Message: "Login successful",
		User:    loggedInUser,
		Token:   token,
	}, http.StatusOK)
}

// CheckEmail handles email availability checks for real-time validation
// @Summary      Check email availability
// @Description  Report whether the given email is free to register.
// @Tags         auth
// @Produce      json
// @Param        email query string true "Email address"
// @Success      200 {object} AvailabilityResponse
// @Failure      400 {object} httputil.ErrorResponse "Email parameter missing"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /api/auth/check-email [get]
func (h *Handler) CheckEmail(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	email := r.URL.Query().Get("email")
	if email == "" {
		httputil.RespondError(w, "Email required", "Email parameter is required", http.StatusBadRequest)
		return
	}

	if !ValidEmail(email) {
		httputil.RespondJSON(w, AvailabilityResponse{
			Available: false,
			Message:   "Invalid email format",
		}, http.StatusOK)
		return
	}

	available, err := h.service.EmailAvailable(r.Context(), email)
	if err != nil {
		logger.Error("email availability check failed", "error", err.Error())
		httputil.RespondError(w, "Email check failed", "An error occurred while checking email availability", http.StatusInternalServerError)
		return
	}

	message := "Email is available"
	if !available {
		message = "Email already registered"
	}

	httputil.RespondJSON(w, AvailabilityResponse{
		Available: available,
		Message:   message,
	}, http.StatusOK)
}

// Me returns the authenticated user's profile
// @Summary      Current user profile
// @Description  Return the profile of the token's subject.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} ProfileResponse
// @Failure      401 {object} httputil.ErrorResponse "Missing token"
// @Failure      403 {object} httputil.ErrorResponse "Invalid token"
// @Failure      404 {object} httputil.ErrorResponse "Account missing or disabled"
// @Router       /api/auth/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, "Access token required", "Please provide a valid authentication token", http.StatusUnauthorized)
		return
	}

	currentUser, err := h.service.CurrentUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			httputil.RespondError(w, "User not found", "User account not found or disabled", http.StatusNotFound)
			return
		}
		logger.Error("failed to get user profile", "error", err.Error())
		httputil.RespondError(w, "Failed to get user profile", "An error occurred while fetching user profile", http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, ProfileResponse{
		Success: true,
		User:    currentUser,
	}, http.StatusOK)
}

// ForgotPassword handles password reset requests
// @Summary      Request password reset
// @Description  Send a password reset link to the user's email. Always returns success to prevent enumeration.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body ForgotPasswordRequest true "Email address"
// @Success      200 {object} map[string]string
// @Failure      400 {object} httputil.ErrorResponse "Invalid request body"
// @Failure      429 {object} httputil.ErrorResponse "Too many requests"
// @Router       /api/auth/forgot-password [post]
func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	if h.limited(w, r, "forgot-password") {
		return
	}

	var req ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid forgot password request body", "error", err.Error())
		httputil.RespondError(w, "Invalid request body", "Request body must be valid JSON", http.StatusBadRequest)
		return
	}

	// Always succeeds from the caller's perspective
	_ = h.service.RequestPasswordReset(r.Context(), req.Email)

	httputil.RespondJSON(w, map[string]string{
		"message": "If an account exists with that email, a password reset link has been sent.",
	}, http.StatusOK)
}

// ResetPassword handles password reset with token
// @Summary      Reset password
// @Description  Set a new password using a valid reset token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body ResetPasswordRequest true "Reset token and new password"
// @Success      200 {object} map[string]string
// @Failure      400 {object} httputil.ErrorResponse "Invalid request or token"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /api/auth/reset-password [post]
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid reset password request body", "error", err.Error())
		httputil.RespondError(w, "Invalid request body", "Request body must be valid JSON", http.StatusBadRequest)
		return
	}

	err := h.service.ResetPassword(r.Context(), req.Token, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, ErrResetTokenNotFound):
			logger.Warn("password reset failed: invalid or expired token")
			httputil.RespondError(w, "Invalid reset token", "Your password reset token is invalid or expired", http.StatusBadRequest)
		case errors.Is(err, ErrMissingFields):
			logger.Warn("password reset failed: missing password")
			httputil.RespondError(w, "Missing required fields", "A new password is required", http.StatusBadRequest)
		case errors.Is(err, ErrPasswordTooShort):
			logger.Warn("password reset failed: password too short")
			httputil.RespondError(w, "Password too weak", "Password must be at least 8 characters long", http.StatusBadRequest)
		case errors.Is(err, ErrPasswordTooLong):
			logger.Warn("password reset failed: password too long")
			httputil.RespondError(w, "Password too long", "Password must be at most 72 characters long", http.StatusBadRequest)
		default:
			logger.Error("password reset failed: internal error", "error", err.Error())
			httputil.RespondError(w, "Password reset failed", "An error occurred while resetting your password", http.StatusInternalServerError)
		}
		return
	}

	logger.Info("password reset successfully")

	httputil.RespondJSON(w, map[string]string{
		"message": "Password reset successfully. You can now login with your new password.",
	}, http.StatusOK)
}

// limited applies the per-IP rate limit for a purpose and writes the 429
// response when the budget is exhausted. Limiter failures are logged and
// the request is let through rather than blocking legitimate callers.
func (h *Handler) limited(w http.ResponseWriter, r *http.Request, purpose string) bool {
	if h.rateLimiter == nil {
		return false
	}

	logger := logging.GetLoggerFromContext(r.Context())
	ip := getClientIP(r)

	allowed, err := h.rateLimiter.Allow(r.Context(), ip, purpose)
	if err != nil {
		logger.Error("failed to check rate limit", "error", err.Error())
		return false
	}
	if !allowed {
		logger.Warn("rate limit exceeded", "ip", ip, "purpose", purpose)
		httputil.RespondError(w, "Too many requests", "Please try again later", http.StatusTooManyRequests)
		return true
	}
	return false
}

// getClientIP extracts the client IP address from the request
func getClientIP(r *http.Request) string {
	// Check X-Forwarded-For header first (behind proxy/load balancer)
	xff := r.Header.Get("X-Forwarded-For")
	if xff != "" {
		// X-Forwarded-For can contain multiple IPs, take the first one
		ips := strings.Split(xff, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	// Check X-Real-IP header
	xri := r.Header.Get("X-Real-IP")
	if xri != "" {
		return strings.TrimSpace(xri)
	}

	// Fallback to RemoteAddr, which is "IP:port"
	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}
