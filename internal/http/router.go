package http

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/dvernon0786/reviewcraft-api/internal/auth"
	"github.com/dvernon0786/reviewcraft-api/internal/campaign"
	"github.com/dvernon0786/reviewcraft-api/internal/config"
	"github.com/dvernon0786/reviewcraft-api/internal/contact"
	"github.com/dvernon0786/reviewcraft-api/internal/email"
	"github.com/dvernon0786/reviewcraft-api/internal/emaillog"
	"github.com/dvernon0786/reviewcraft-api/internal/httputil"
	"github.com/dvernon0786/reviewcraft-api/internal/logging"
	"github.com/dvernon0786/reviewcraft-api/internal/preference"
	"github.com/dvernon0786/reviewcraft-api/internal/template"
)

// Handlers collects the route handlers the router wires up.
type Handlers struct {
	Auth        *auth.Handler
	Contacts    *contact.Handler
	Campaigns   *campaign.Handler
	Templates   *template.Handler
	EmailLogs   *emaillog.Handler
	Preferences *preference.Handler
	Email       *email.Handler
}

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, h *Handlers, authMiddleware *auth.Middleware, logger *logging.Logger) *chi.Mux {
	r := chi.NewRouter()

	// CORS - must be first
	if len(cfg.Server.TrustedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.Server.TrustedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders:   []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           300, // 5 minutes
		}))
	}

	// Global middleware
	r.Use(SecurityHeaders)               // Security headers on all responses
	r.Use(middleware.Recoverer)          // Recover from panics
	r.Use(middleware.RequestID)          // Add request ID
	r.Use(middleware.RealIP)             // Set RemoteAddr to real IP
	r.Use(logging.RequestLogger(logger)) // Structured logging with request context
	r.Use(middleware.Compress(5))        // Compress responses

	// Public routes
	r.Get("/health", handleHealth)

	// Swagger UI - only in development
	// Production builds will not have this route at all
	if cfg.Server.IsDevelopment() {
		log.Println("Swagger UI enabled at /swagger/*")
		r.Get("/swagger/*", httpSwagger.WrapHandler)
	} else {
		log.Println("Swagger UI disabled (production mode)")
	}

	r.Route("/api", func(r chi.Router) {
		// Auth routes (public)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Get("/check-email", h.Auth.CheckEmail)
			r.Post("/forgot-password", h.Auth.ForgotPassword)
			r.Post("/reset-password", h.Auth.ResetPassword)

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.RequireAuth)
				r.Get("/me", h.Auth.Me)
			})
		})

		// Demo routes respond with sample data for anonymous visitors
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.OptionalAuth)
			r.Get("/demo/contacts", h.Contacts.Demo)
		})

		// Protected routes (require authentication)
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.RequireAuth)

			r.Route("/contacts", func(r chi.Router) {
				r.Get("/", h.Contacts.List)
				r.Post("/", h.Contacts.Create)
				r.Get("/{id}", h.Contacts.Get)
				r.Put("/{id}", h.Contacts.Update)
				r.Delete("/{id}", h.Contacts.Delete)
			})

			r.Route("/campaigns", func(r chi.Router) {
				r.Get("/", h.Campaigns.List)
				r.Post("/", h.Campaigns.Create)
				r.Get("/{id}", h.Campaigns.Get)
				r.Put("/{id}", h.Campaigns.Update)
				r.Delete("/{id}", h.Campaigns.Delete)
			})

			r.Route("/email-templates", func(r chi.Router) {
				r.Get("/", h.Templates.List)
				r.Post("/", h.Templates.Create)
				r.Get("/{id}", h.Templates.Get)
				r.Put("/{id}", h.Templates.Update)
				r.Delete("/{id}", h.Templates.Delete)
			})

			r.Get("/email-logs", h.EmailLogs.List)

			r.Route("/user-preferences", func(r chi.Router) {
				r.Get("/", h.Preferences.GetPreferences)
				r.Put("/", h.Preferences.UpdatePreferences)
			})

			r.Route("/review-platform-urls", func(r chi.Router) {
				r.Get("/", h.Preferences.GetPlatformURLs)
				r.Put("/", h.Preferences.UpdatePlatformURLs)
			})

			r.Route("/email-sending", func(r chi.Router) {
				r.Post("/send-review-request", h.Email.SendReviewRequest)
				r.Post("/send-test-email", h.Email.SendTestEmail)
			})
		})
	})

	r.NotFound(handleNotFound)

	return r
}

// handleHealth is a simple health check endpoint
// @Summary      Health check
// @Description  Check if the API is running
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       /health [get]
func handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, map[string]string{"status": "api is running"}, http.StatusOK)
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	httputil.RespondError(w, "Not found", "The requested endpoint does not exist", http.StatusNotFound)
}
