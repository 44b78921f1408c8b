package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dvernon0786/reviewcraft-api/internal/user"
)

// TokenService defines the interface for session token creation and
// validation. PasetoService (PASETO v4.local) is the production
// implementation.
type TokenService interface {
	CreateToken(userID uuid.UUID, email string, duration time.Duration) (string, error)
	VerifyToken(tokenStr string) (*TokenClaims, error)
}

// UserStore is the user directory the auth flows run against.
// Implemented by user.Repository; tests substitute an in-memory store.
// Create must enforce email uniqueness atomically and return
// user.ErrDuplicateEmail on a duplicate.
type UserStore interface {
	Create(ctx context.Context, params user.NewUserParams) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

// ResetTokenStore persists short-lived password reset tokens.
type ResetTokenStore interface {
	StorePasswordResetToken(ctx context.Context, userID uuid.UUID, token string) error
	GetPasswordResetToken(ctx context.Context, token string) (uuid.UUID, error)
	DeletePasswordResetToken(ctx context.Context, token string) error
}

// EmailService defines the interface for outbound auth emails
type EmailService interface {
	SendPasswordResetEmail(ctx context.Context, toEmail, token string) error
}
