package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	digest, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEmpty(t, digest)
	assert.NotContains(t, digest, "correct horse battery staple")

	cost, err := bcrypt.Cost([]byte(digest))
	require.NoError(t, err)
	assert.Equal(t, 12, cost)
}

func TestHashPassword_DistinctDigests(t *testing.T) {
	first, err := HashPassword("same password")
	require.NoError(t, err)
	second, err := HashPassword("same password")
	require.NoError(t, err)

	// Each call salts independently
	assert.NotEqual(t, first, second)
	assert.True(t, VerifyPassword(first, "same password"))
	assert.True(t, VerifyPassword(second, "same password"))
}

func TestVerifyPassword(t *testing.T) {
	digest, err := HashPassword("s3cret-password")
	require.NoError(t, err)

	tests := []struct {
		name     string
		digest   string
		password string
		want     bool
	}{
		{"correct password", digest, "s3cret-password", true},
		{"wrong password", digest, "wrong-password", false},
		{"empty password", digest, "", false},
		{"empty digest", "", "s3cret-password", false},
		{"malformed digest", "not-a-bcrypt-digest", "s3cret-password", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VerifyPassword(tt.digest, tt.password))
		})
	}
}
