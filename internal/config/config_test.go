package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validTokenKey = "0123456789abcdef0123456789abcdef"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TOKEN_KEY", validTokenKey)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3001", cfg.Server.Port)
	assert.Equal(t, "dev", cfg.Server.Env)
	assert.True(t, cfg.Server.IsDevelopment())
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.TokenDuration)
	assert.Equal(t, []byte(validTokenKey), cfg.Auth.TokenKey)
	assert.Equal(t, 15*time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, 100, cfg.RateLimit.MaxRequests)
	assert.Equal(t, "reviewcraft", cfg.Database.DBName)
}

func TestLoad_TokenKeyLength(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{"valid 32 bytes", validTokenKey, false},
		{"too short", "short-key", true},
		{"too long", validTokenKey + "x", true},
		{"missing", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TOKEN_KEY", tt.key)

			cfg, err := Load()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, cfg)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, cfg)
			}
		})
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("TOKEN_KEY", validTokenKey)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("APP_ENV", "prod")
	t.Setenv("TOKEN_DURATION", "3600")
	t.Setenv("RATE_LIMIT_MAX_REQUESTS", "5")
	t.Setenv("TRUSTED_ORIGINS", "https://app.example.com, https://admin.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.False(t, cfg.Server.IsDevelopment())
	assert.Equal(t, time.Hour, cfg.Auth.TokenDuration)
	assert.Equal(t, 5, cfg.RateLimit.MaxRequests)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.Server.TrustedOrigins)
}

func TestLoad_FromEmailFallsBackToSMTPUser(t *testing.T) {
	t.Setenv("TOKEN_KEY", validTokenKey)
	t.Setenv("SMTP_USER", "mailer@example.com")
	t.Setenv("FROM_EMAIL", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "mailer@example.com", cfg.Email.FromEmail)
}

func TestDatabaseConnectionString(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.internal",
		Port:     "5433",
		User:     "app",
		Password: "secret",
		DBName:   "reviewcraft",
		SSLMode:  "require",
	}

	got := cfg.ConnectionString()
	assert.Equal(t, "host=db.internal port=5433 user=app password=secret dbname=reviewcraft sslmode=require", got)

	cfg.ChannelBinding = "require"
	assert.Contains(t, cfg.ConnectionString(), "channel_binding=require")
}

func TestRedisAddress(t *testing.T) {
	cfg := RedisConfig{Host: "cache.internal", Port: "6380"}
	assert.Equal(t, "cache.internal:6380", cfg.Address())
}
