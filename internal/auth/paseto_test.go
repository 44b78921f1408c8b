package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey() []byte {
	return []byte("0123456789abcdef0123456789abcdef")
}

func TestNewPasetoService_KeyLength(t *testing.T) {
	tests := []struct {
		name    string
		key     []byte
		wantErr bool
	}{
		{"valid 32-byte key", testKey(), false},
		{"too short", []byte("short"), true},
		{"too long", append(testKey(), 'x'), true},
		{"empty", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := NewPasetoService(tt.key)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, svc)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, svc)
			}
		})
	}
}

func TestPasetoService_CreateAndVerify(t *testing.T) {
	svc, err := NewPasetoService(testKey())
	require.NoError(t, err)

	userID := uuid.New()
	token, err := svc.CreateToken(userID, "user@example.com", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.WithinDuration(t, time.Now(), claims.IssuedAt, 5*time.Second)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, 5*time.Second)
}

func TestPasetoService_VerifyToken_Tampered(t *testing.T) {
	svc, err := NewPasetoService(testKey())
	require.NoError(t, err)

	token, err := svc.CreateToken(uuid.New(), "user@example.com", time.Hour)
	require.NoError(t, err)

	// Flip the last character of the ciphertext
	last := token[len(token)-1]
	replacement := byte('A')
	if last == replacement {
		replacement = 'B'
	}
	tampered := token[:len(token)-1] + string(replacement)

	claims, err := svc.VerifyToken(tampered)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasetoService_VerifyToken_Expired(t *testing.T) {
	svc, err := NewPasetoService(testKey())
	require.NoError(t, err)

	token, err := svc.CreateToken(uuid.New(), "user@example.com", -time.Minute)
	require.NoError(t, err)

	claims, err := svc.VerifyToken(token)
	assert.Nil(t, claims)
	// Expiry and tampering are indistinguishable to callers
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasetoService_VerifyToken_WrongKey(t *testing.T) {
	svc, err := NewPasetoService(testKey())
	require.NoError(t, err)

	otherSvc, err := NewPasetoService([]byte("fedcba9876543210fedcba9876543210"))
	require.NoError(t, err)

	token, err := svc.CreateToken(uuid.New(), "user@example.com", time.Hour)
	require.NoError(t, err)

	claims, err := otherSvc.VerifyToken(token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasetoService_VerifyToken_Garbage(t *testing.T) {
	svc, err := NewPasetoService(testKey())
	require.NoError(t, err)

	for _, input := range []string{"", "not-a-token", "v4.local.AAAA"} {
		claims, err := svc.VerifyToken(input)
		assert.Nil(t, claims)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}
