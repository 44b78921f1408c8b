package auth

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvernon0786/reviewcraft-api/internal/logging"
	"github.com/dvernon0786/reviewcraft-api/internal/user"
)

// fakeUserStore is an in-memory UserStore with the same atomic
// email-uniqueness guarantee the database provides.
type fakeUserStore struct {
	mu      sync.Mutex
	byID    map[uuid.UUID]*user.User
	byEmail map[string]uuid.UUID
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		byID:    make(map[uuid.UUID]*user.User),
		byEmail: make(map[string]uuid.UUID),
	}
}

func (s *fakeUserStore) Create(ctx context.Context, params user.NewUserParams) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[params.Email]; exists {
		return nil, user.ErrDuplicateEmail
	}

	u := &user.User{
		ID:           uuid.New(),
		Email:        params.Email,
		PasswordHash: params.PasswordHash,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		BusinessName: params.BusinessName,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
	s.byID[u.ID] = u
	s.byEmail[u.Email] = u.ID

	copied := *u
	return &copied, nil
}

func (s *fakeUserStore) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, user.ErrNotFound
	}
	copied := *s.byID[id]
	return &copied, nil
}

func (s *fakeUserStore) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byID[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (s *fakeUserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.byEmail[email]
	return ok, nil
}

func (s *fakeUserStore) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byID[id]
	if !ok {
		return user.ErrNotFound
	}
	now := time.Now()
	u.LastLogin = &now
	return nil
}

func (s *fakeUserStore) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byID[id]
	if !ok {
		return user.ErrNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

// deactivate flips a user's active flag, simulating an admin disable.
func (s *fakeUserStore) deactivate(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.byID[id]; ok {
		u.IsActive = false
	}
}

// fakeResetTokenStore keeps reset tokens in a plain map.
type fakeResetTokenStore struct {
	mu     sync.Mutex
	tokens map[string]uuid.UUID
}

func newFakeResetTokenStore() *fakeResetTokenStore {
	return &fakeResetTokenStore{tokens: make(map[string]uuid.UUID)}
}

func (s *fakeResetTokenStore) StorePasswordResetToken(ctx context.Context, userID uuid.UUID, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = userID
	return nil
}

func (s *fakeResetTokenStore) GetPasswordResetToken(ctx context.Context, token string) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.tokens[token]
	if !ok {
		return uuid.Nil, ErrResetTokenNotFound
	}
	return id, nil
}

func (s *fakeResetTokenStore) DeletePasswordResetToken(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
	return nil
}

type fakeEmailService struct {
	mu   sync.Mutex
	sent []string
}

func (s *fakeEmailService) SendPasswordResetEmail(ctx context.Context, toEmail, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, toEmail)
	return nil
}

func newTestService(t *testing.T) (*Service, *fakeUserStore, *fakeResetTokenStore) {
	t.Helper()

	tokens, err := NewPasetoService(testKey())
	require.NoError(t, err)

	users := newFakeUserStore()
	resetTokens := newFakeResetTokenStore()
	svc := NewService(users, tokens, resetTokens, &fakeEmailService{}, logging.NewLogger(true), time.Hour)
	return svc, users, resetTokens
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("valid registration returns user and token", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		first := "Jane"
		newUser, token, err := svc.Register(ctx, RegisterParams{
			Email:     "jane@example.com",
			Password:  "password123",
			FirstName: &first,
		})
		require.NoError(t, err)
		require.NotNil(t, newUser)
		assert.NotEmpty(t, token)
		assert.Equal(t, "jane@example.com", newUser.Email)
		assert.NotEqual(t, uuid.Nil, newUser.ID)
		assert.True(t, newUser.IsActive)
		// The digest never equals the plaintext
		assert.NotEqual(t, "password123", newUser.PasswordHash)
	})

	t.Run("validation failures", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		tests := []struct {
			name    string
			params  RegisterParams
			wantErr error
		}{
			{"missing email", RegisterParams{Password: "password123"}, ErrMissingFields},
			{"missing password", RegisterParams{Email: "a@b.com"}, ErrMissingFields},
			{"no at sign", RegisterParams{Email: "nodomain", Password: "password123"}, ErrInvalidEmailFormat},
			{"no dot in domain", RegisterParams{Email: "a@b", Password: "password123"}, ErrInvalidEmailFormat},
			{"whitespace in email", RegisterParams{Email: "a b@c.com", Password: "password123"}, ErrInvalidEmailFormat},
			{"short password", RegisterParams{Email: "a@b.com", Password: "short"}, ErrPasswordTooShort},
			{"password over bcrypt limit", RegisterParams{Email: "a@b.com", Password: strings.Repeat("a", 73)}, ErrPasswordTooLong},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, _, err := svc.Register(ctx, tt.params)
				assert.ErrorIs(t, err, tt.wantErr)
			})
		}
	})

	t.Run("72-byte password is accepted", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		longest := strings.Repeat("a", 72)
		_, token, err := svc.Register(ctx, RegisterParams{Email: "long@example.com", Password: longest})
		require.NoError(t, err)
		assert.NotEmpty(t, token)

		_, _, err = svc.Login(ctx, "long@example.com", longest)
		assert.NoError(t, err)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, _, err := svc.Register(ctx, RegisterParams{Email: "dup@example.com", Password: "password123"})
		require.NoError(t, err)

		_, _, err = svc.Register(ctx, RegisterParams{Email: "dup@example.com", Password: "otherpassword"})
		assert.ErrorIs(t, err, user.ErrDuplicateEmail)
	})
}

// staleExistenceStore reports every email as free, so the insert's
// uniqueness guarantee is the only thing standing between two
// registrations racing for the same address.
type staleExistenceStore struct {
	*fakeUserStore
}

func (s *staleExistenceStore) EmailExists(ctx context.Context, email string) (bool, error) {
	return false, nil
}

func TestService_Register_ConcurrentDuplicate(t *testing.T) {
	ctx := context.Background()

	tokens, err := NewPasetoService(testKey())
	require.NoError(t, err)

	users := &staleExistenceStore{fakeUserStore: newFakeUserStore()}
	svc := NewService(users, tokens, newFakeResetTokenStore(), &fakeEmailService{}, logging.NewLogger(true), time.Hour)

	_, _, err = svc.Register(ctx, RegisterParams{Email: "race@example.com", Password: "password123"})
	require.NoError(t, err)

	// The existence pre-check sees nothing, so this registration reaches
	// the insert and collides there. The caller still gets the duplicate
	// error, not a generic failure.
	_, _, err = svc.Register(ctx, RegisterParams{Email: "race@example.com", Password: "password123"})
	assert.ErrorIs(t, err, user.ErrDuplicateEmail)
}

func TestService_RegisterThenLogin(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	registered, _, err := svc.Register(ctx, RegisterParams{Email: "roundtrip@example.com", Password: "password123"})
	require.NoError(t, err)

	loggedIn, token, err := svc.Login(ctx, "roundtrip@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, loggedIn.ID)
	assert.NotEmpty(t, token)
	assert.NotNil(t, loggedIn.LastLogin)
}

func TestService_Login_Failures(t *testing.T) {
	ctx := context.Background()
	svc, users, _ := newTestService(t)

	registered, _, err := svc.Register(ctx, RegisterParams{Email: "known@example.com", Password: "password123"})
	require.NoError(t, err)

	t.Run("missing fields", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "", "password123")
		assert.ErrorIs(t, err, ErrMissingFields)
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		_, _, errWrongPassword := svc.Login(ctx, "known@example.com", "wrongpassword")
		_, _, errUnknownEmail := svc.Login(ctx, "unknown@example.com", "password123")

		assert.ErrorIs(t, errWrongPassword, ErrInvalidCredentials)
		assert.ErrorIs(t, errUnknownEmail, ErrInvalidCredentials)
		assert.Equal(t, errWrongPassword.Error(), errUnknownEmail.Error())
	})

	t.Run("disabled account reported distinctly", func(t *testing.T) {
		users.deactivate(registered.ID)

		_, _, err := svc.Login(ctx, "known@example.com", "password123")
		assert.ErrorIs(t, err, ErrAccountDisabled)
	})
}

func TestService_EmailAvailable(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	available, err := svc.EmailAvailable(ctx, "fresh@example.com")
	require.NoError(t, err)
	assert.True(t, available)

	_, _, err = svc.Register(ctx, RegisterParams{Email: "fresh@example.com", Password: "password123"})
	require.NoError(t, err)

	available, err = svc.EmailAvailable(ctx, "fresh@example.com")
	require.NoError(t, err)
	assert.False(t, available)
}

func TestService_CurrentUser(t *testing.T) {
	ctx := context.Background()
	svc, users, _ := newTestService(t)

	registered, _, err := svc.Register(ctx, RegisterParams{Email: "me@example.com", Password: "password123"})
	require.NoError(t, err)

	t.Run("active user", func(t *testing.T) {
		got, err := svc.CurrentUser(ctx, registered.ID)
		require.NoError(t, err)
		assert.Equal(t, registered.ID, got.ID)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.CurrentUser(ctx, uuid.New())
		assert.ErrorIs(t, err, user.ErrNotFound)
	})

	t.Run("disabled account", func(t *testing.T) {
		users.deactivate(registered.ID)
		_, err := svc.CurrentUser(ctx, registered.ID)
		assert.ErrorIs(t, err, user.ErrNotFound)
	})
}

func TestService_ResetPassword(t *testing.T) {
	ctx := context.Background()
	svc, _, resetTokens := newTestService(t)

	registered, _, err := svc.Register(ctx, RegisterParams{Email: "reset@example.com", Password: "oldpassword"})
	require.NoError(t, err)

	require.NoError(t, resetTokens.StorePasswordResetToken(ctx, registered.ID, "reset-token"))

	t.Run("weak new password rejected", func(t *testing.T) {
		assert.ErrorIs(t, svc.ResetPassword(ctx, "reset-token", "short"), ErrPasswordTooShort)
	})

	t.Run("new password over bcrypt limit rejected", func(t *testing.T) {
		assert.ErrorIs(t, svc.ResetPassword(ctx, "reset-token", strings.Repeat("a", 73)), ErrPasswordTooLong)
	})

	t.Run("unknown token rejected", func(t *testing.T) {
		assert.ErrorIs(t, svc.ResetPassword(ctx, "bogus-token", "newpassword1"), ErrResetTokenNotFound)
	})

	t.Run("valid token changes password and is consumed", func(t *testing.T) {
		require.NoError(t, svc.ResetPassword(ctx, "reset-token", "newpassword1"))

		_, _, err := svc.Login(ctx, "reset@example.com", "oldpassword")
		assert.ErrorIs(t, err, ErrInvalidCredentials)

		_, _, err = svc.Login(ctx, "reset@example.com", "newpassword1")
		assert.NoError(t, err)

		// Token is single use
		assert.ErrorIs(t, svc.ResetPassword(ctx, "reset-token", "anotherpassword"), ErrResetTokenNotFound)
	})
}

func TestValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"user@example.com", true},
		{"first.last@sub.example.co.uk", true},
		{"user+tag@example.com", true},
		{"", false},
		{"plainstring", false},
		{"@example.com", false},
		{"user@", false},
		{"user@domain", false},
		{"user @example.com", false},
		{"user@exam ple.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidEmail(tt.email))
		})
	}
}
