package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/dvernon0786/reviewcraft-api/internal/logging"
	"github.com/dvernon0786/reviewcraft-api/internal/user"
)

var (
	ErrMissingFields      = errors.New("email and password are required")
	ErrInvalidEmailFormat = errors.New("please provide a valid email address")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters long")
	ErrPasswordTooLong    = errors.New("password must be at most 72 characters long")
	ErrInvalidCredentials = errors.New("email or password is incorrect")
	ErrAccountDisabled    = errors.New("your account has been disabled")
	ErrResetTokenNotFound = errors.New("invalid or expired reset token")
)

// emailPattern accepts local@domain.tld: non-empty local part, non-empty
// domain with a dot-separated TLD, no whitespace.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether the address matches the accepted pattern.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// RegisterParams carries registration input. Profile fields are optional.
type RegisterParams struct {
	Email        string
	Password     string
	FirstName    *string
	LastName     *string
	BusinessName *string
}

// Service handles authentication business logic
type Service struct {
	users         UserStore
	tokens        TokenService
	resetTokens   ResetTokenStore
	emailService  EmailService
	logger        *logging.Logger
	tokenDuration time.Duration
}

func NewService(
	users UserStore,
	tokens TokenService,
	resetTokens ResetTokenStore,
	emailService EmailService,
	logger *logging.Logger,
	tokenDuration time.Duration,
) *Service {
	return &Service{
		users:         users,
		tokens:        tokens,
		resetTokens:   resetTokens,
		emailService:  emailService,
		logger:        logger,
		tokenDuration: tokenDuration,
	}
}

// Register validates input, creates the account, and returns the new
// user along with a session token.
func (s *Service) Register(ctx context.Context, params RegisterParams) (*user.User, string, error) {
	if params.Email == "" || params.Password == "" {
		return nil, "", ErrMissingFields
	}
	if !ValidEmail(params.Email) {
		return nil, "", ErrInvalidEmailFormat
	}
	if len(params.Password) < 8 {
		return nil, "", ErrPasswordTooShort
	}
	if len(params.Password) > maxPasswordBytes {
		return nil, "", ErrPasswordTooLong
	}

	// Cheap existence check before paying the hashing cost. The insert's
	// unique constraint remains the real guard against a concurrent
	// registration slipping in between.
	exists, err := s.users.EmailExists(ctx, params.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, "", user.ErrDuplicateEmail
	}

	passwordHash, err := HashPassword(params.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	newUser, err := s.users.Create(ctx, user.NewUserParams{
		Email:        params.Email,
		PasswordHash: passwordHash,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		BusinessName: params.BusinessName,
	})
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			return nil, "", user.ErrDuplicateEmail
		}
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokens.CreateToken(newUser.ID, newUser.Email, s.tokenDuration)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create token: %w", err)
	}

	return newUser, token, nil
}

// Login checks credentials and returns the user plus a session token.
// A wrong password and an unknown email produce the same error; a
// disabled account is reported distinctly.
func (s *Service) Login(ctx context.Context, email, password string) (*user.User, string, error) {
	if email == "" || password == "" {
		return nil, "", ErrMissingFields
	}

	existingUser, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}

	if !existingUser.IsActive {
		return nil, "", ErrAccountDisabled
	}

	if !VerifyPassword(existingUser.PasswordHash, password) {
		return nil, "", ErrInvalidCredentials
	}

	// Best effort: a failed timestamp write must not fail the login.
	if err := s.users.UpdateLastLogin(ctx, existingUser.ID); err != nil {
		s.logger.Warn("failed to update last login", "user_id", existingUser.ID, "error", err)
	} else {
		now := time.Now()
		existingUser.LastLogin = &now
	}

	token, err := s.tokens.CreateToken(existingUser.ID, existingUser.Email, s.tokenDuration)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create token: %w", err)
	}

	return existingUser, token, nil
}

// EmailAvailable reports whether no account exists with this exact email.
func (s *Service) EmailAvailable(ctx context.Context, email string) (bool, error) {
	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return false, fmt.Errorf("failed to check email availability: %w", err)
	}
	return !exists, nil
}

// CurrentUser loads the token subject's profile. Returns
// user.ErrNotFound when the account vanished or was disabled after the
// token was issued.
func (s *Service) CurrentUser(ctx context.Context, id uuid.UUID) (*user.User, error) {
	existingUser, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !existingUser.IsActive {
		return nil, user.ErrNotFound
	}
	return existingUser, nil
}

// RequestPasswordReset initiates the password reset process.
// Always returns nil to prevent email enumeration.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	existingUser, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil
		}
		s.logger.Warn("failed to get user for password reset", "error", err)
		return nil
	}

	token, err := generateRandomToken()
	if err != nil {
		s.logger.Warn("failed to generate password reset token", "error", err)
		return nil
	}

	if err := s.resetTokens.StorePasswordResetToken(ctx, existingUser.ID, token); err != nil {
		s.logger.Warn("failed to store password reset token", "error", err)
		return nil
	}

	// Send the email in a goroutine so SMTP latency never blocks the
	// response. Fresh context: the request's context ends with the reply.
	go func() {
		emailCtx := context.Background()
		if err := s.emailService.SendPasswordResetEmail(emailCtx, email, token); err != nil {
			s.logger.Warn("failed to send password reset email", "email", email, "error", err)
		}
	}()

	return nil
}

// ResetPassword sets a new password using a valid reset token.
// Outstanding session tokens stay valid until they expire.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	if newPassword == "" {
		return ErrMissingFields
	}
	if len(newPassword) < 8 {
		return ErrPasswordTooShort
	}
	if len(newPassword) > maxPasswordBytes {
		return ErrPasswordTooLong
	}

	userID, err := s.resetTokens.GetPasswordResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, ErrResetTokenNotFound) {
			return ErrResetTokenNotFound
		}
		return fmt.Errorf("failed to get password reset token: %w", err)
	}

	passwordHash, err := HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, userID, passwordHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if err := s.resetTokens.DeletePasswordResetToken(ctx, token); err != nil {
		s.logger.Warn("failed to delete password reset token", "error", err)
	}

	return nil
}

// generateRandomToken creates a cryptographically secure random token
func generateRandomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
