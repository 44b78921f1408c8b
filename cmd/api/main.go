package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"

	"github.com/dvernon0786/reviewcraft-api/internal/auth"
	"github.com/dvernon0786/reviewcraft-api/internal/campaign"
	"github.com/dvernon0786/reviewcraft-api/internal/config"
	"github.com/dvernon0786/reviewcraft-api/internal/contact"
	"github.com/dvernon0786/reviewcraft-api/internal/database"
	"github.com/dvernon0786/reviewcraft-api/internal/email"
	"github.com/dvernon0786/reviewcraft-api/internal/emaillog"
	httpServer "github.com/dvernon0786/reviewcraft-api/internal/http"
	"github.com/dvernon0786/reviewcraft-api/internal/logging"
	"github.com/dvernon0786/reviewcraft-api/internal/preference"
	"github.com/dvernon0786/reviewcraft-api/internal/ratelimit"
	"github.com/dvernon0786/reviewcraft-api/internal/template"
	"github.com/dvernon0786/reviewcraft-api/internal/user"
)

// @title           ReviewCraft API
// @version         1.0
// @description     Review management backend for small businesses: accounts, contacts, campaigns, and review request emails.

// @contact.name   API Support
// @contact.email  support@reviewcraft.io

// @host      localhost:3001
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.

func main() {
	if err := run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	logger := logging.NewLogger(cfg.Server.IsDevelopment())
	logger.Info("starting application",
		"env", cfg.Server.Env,
		"port", cfg.Server.Port,
	)

	// Initialize database connection
	db, err := initDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	// Ensure the schema exists before serving traffic
	if err := database.CreateSchema(context.Background(), db); err != nil {
		return fmt.Errorf("failed to create database schema: %w", err)
	}

	// Initialize Redis connection
	redisClient, err := initRedis(cfg.Redis)
	if err != nil {
		return fmt.Errorf("failed to initialize Redis: %w", err)
	}
	defer redisClient.Close()

	// Initialize repositories
	userRepo := user.NewRepository(db)
	passwordResetRepo := auth.NewPasswordResetRepository(redisClient)
	contactRepo := contact.NewRepository(db)
	campaignRepo := campaign.NewRepository(db)
	templateRepo := template.NewRepository(db)
	emailLogRepo := emaillog.NewRepository(db)
	preferenceRepo := preference.NewRepository(db)

	// Initialize rate limiter
	rateLimiter := ratelimit.NewLimiter(redisClient, cfg.RateLimit.Window, cfg.RateLimit.MaxRequests)

	// Initialize token service
	pasetoService, err := auth.NewPasetoService(cfg.Auth.TokenKey)
	if err != nil {
		return fmt.Errorf("failed to initialize token service: %w", err)
	}

	// Initialize email service
	emailService := email.NewService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
		cfg.Email.FrontendURL,
	)

	// Initialize auth service
	authService := auth.NewService(
		userRepo,
		pasetoService,
		passwordResetRepo,
		emailService,
		logger,
		cfg.Auth.TokenDuration,
	)

	// Initialize HTTP handlers
	handlers := &httpServer.Handlers{
		Auth:        auth.NewHandler(authService, rateLimiter, logger),
		Contacts:    contact.NewHandler(contactRepo),
		Campaigns:   campaign.NewHandler(campaignRepo),
		Templates:   template.NewHandler(templateRepo),
		EmailLogs:   emaillog.NewHandler(emailLogRepo),
		Preferences: preference.NewHandler(preferenceRepo),
		Email:       email.NewHandler(emailService, emailLogRepo),
	}
	authMiddleware := auth.NewMiddleware(pasetoService)

	// Initialize router
	router := httpServer.NewRouter(cfg, handlers, authMiddleware, logger)

	// Initialize HTTP server
	serverAddr := ":" + cfg.Server.Port
	server := httpServer.NewServer(
		serverAddr,
		router,
		cfg.Server.ReadTimeout,
		cfg.Server.WriteTimeout,
	)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	// Wait for interrupt signal or server error
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Printf("Received signal: %v", sig)

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// initDB initializes the database connection and returns a Bun DB instance
func initDB(cfg config.DatabaseConfig) (*bun.DB, error) {
	sqlDB, err := sql.Open("postgres", cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Verify connection
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	return database.NewBunDB(sqlDB), nil
}

// initRedis initializes the Redis connection and returns a Redis client
func initRedis(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Verify connection
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return client, nil
}
