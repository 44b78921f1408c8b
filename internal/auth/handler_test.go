package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvernon0786/reviewcraft-api/internal/httputil"
	"github.com/dvernon0786/reviewcraft-api/internal/logging"
)

func newTestHandler(t *testing.T) (*Handler, *Service) {
	t.Helper()
	svc, _, _ := newTestService(t)
	// nil rate limiter: handler skips the limit check
	return NewHandler(svc, nil, logging.NewLogger(true)), svc
}

func postJSON(t *testing.T, handler http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestHandler_Register(t *testing.T) {
	t.Run("success returns 201 with user and token", func(t *testing.T) {
		h, _ := newTestHandler(t)

		rec := postJSON(t, h.Register, "/api/auth/register",
			`{"email":"new@example.com","password":"password123","firstName":"Jane","businessName":"Jane's Cafe"}`)

		require.Equal(t, http.StatusCreated, rec.Code)

		var resp AuthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "User registered successfully", resp.Message)
		assert.NotEmpty(t, resp.Token)
		require.NotNil(t, resp.User)
		assert.Equal(t, "new@example.com", resp.User.Email)
		require.NotNil(t, resp.User.FirstName)
		assert.Equal(t, "Jane", *resp.User.FirstName)

		// The password digest never appears in the response
		assert.NotContains(t, rec.Body.String(), "password_hash")
		assert.NotContains(t, rec.Body.String(), "passwordHash")
		assert.NotContains(t, rec.Body.String(), "$2a$")
	})

	t.Run("error mapping", func(t *testing.T) {
		h, _ := newTestHandler(t)

		tests := []struct {
			name       string
			body       string
			wantStatus int
			wantError  string
		}{
			{"malformed json", `{"email":`, http.StatusBadRequest, "Invalid request body"},
			{"missing fields", `{"email":"a@b.com"}`, http.StatusBadRequest, "Missing required fields"},
			{"bad email", `{"email":"bad","password":"password123"}`, http.StatusBadRequest, "Invalid email format"},
			{"weak password", `{"email":"a@b.com","password":"short"}`, http.StatusBadRequest, "Password too weak"},
			{"overlong password", `{"email":"a@b.com","password":"` + strings.Repeat("a", 73) + `"}`, http.StatusBadRequest, "Password too long"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				rec := postJSON(t, h.Register, "/api/auth/register", tt.body)
				assert.Equal(t, tt.wantStatus, rec.Code)

				var resp httputil.ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, tt.wantError, resp.Error)
				assert.NotEmpty(t, resp.Message)
			})
		}
	})

	t.Run("duplicate email returns 409", func(t *testing.T) {
		h, _ := newTestHandler(t)

		rec := postJSON(t, h.Register, "/api/auth/register", `{"email":"dup@example.com","password":"password123"}`)
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = postJSON(t, h.Register, "/api/auth/register", `{"email":"dup@example.com","password":"password123"}`)
		assert.Equal(t, http.StatusConflict, rec.Code)

		var resp httputil.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Email already registered", resp.Error)
	})
}

func TestHandler_Login(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := postJSON(t, h.Register, "/api/auth/register", `{"email":"login@example.com","password":"password123"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	t.Run("success returns 200 with token", func(t *testing.T) {
		rec := postJSON(t, h.Login, "/api/auth/login", `{"email":"login@example.com","password":"password123"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp AuthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "login@example.com", resp.User.Email)
	})

	t.Run("wrong password returns 401", func(t *testing.T) {
		rec := postJSON(t, h.Login, "/api/auth/login", `{"email":"login@example.com","password":"wrongpassword"}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		var resp httputil.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Invalid credentials", resp.Error)
	})

	t.Run("unknown email returns same 401 body", func(t *testing.T) {
		wrongPassword := postJSON(t, h.Login, "/api/auth/login", `{"email":"login@example.com","password":"wrongpassword"}`)
		unknownEmail := postJSON(t, h.Login, "/api/auth/login", `{"email":"nobody@example.com","password":"password123"}`)

		assert.Equal(t, wrongPassword.Code, unknownEmail.Code)
		assert.JSONEq(t, wrongPassword.Body.String(), unknownEmail.Body.String())
	})

	t.Run("missing fields returns 400", func(t *testing.T) {
		rec := postJSON(t, h.Login, "/api/auth/login", `{"email":"login@example.com"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_CheckEmail(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := postJSON(t, h.Register, "/api/auth/register", `{"email":"taken@example.com","password":"password123"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	checkEmail := func(query string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/check-email"+query, nil)
		rec := httptest.NewRecorder()
		h.CheckEmail(rec, req)
		return rec
	}

	t.Run("missing parameter returns 400", func(t *testing.T) {
		rec := checkEmail("")
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var resp httputil.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Email required", resp.Error)
	})

	t.Run("invalid format reported as unavailable", func(t *testing.T) {
		rec := checkEmail("?email=not-an-email")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp AvailabilityResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.False(t, resp.Available)
		assert.Equal(t, "Invalid email format", resp.Message)
	})

	t.Run("taken email", func(t *testing.T) {
		rec := checkEmail("?email=taken%40example.com")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp AvailabilityResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.False(t, resp.Available)
		assert.Equal(t, "Email already registered", resp.Message)
	})

	t.Run("free email", func(t *testing.T) {
		rec := checkEmail("?email=free%40example.com")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp AvailabilityResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Available)
		assert.Equal(t, "Email is available", resp.Message)
	})
}

func TestHandler_MeThroughMiddleware(t *testing.T) {
	svc, _, _ := newTestService(t)
	tokens, err := NewPasetoService(testKey())
	require.NoError(t, err)
	// The service and middleware must share the same key for issued
	// tokens to verify
	h := NewHandler(svc, nil, logging.NewLogger(true))
	mw := NewMiddleware(tokens)

	rec := postJSON(t, h.Register, "/api/auth/register", `{"email":"profile@example.com","password":"password123"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var registered AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &registered))

	protected := mw.RequireAuth(http.HandlerFunc(h.Me))

	t.Run("valid token returns profile", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		req.Header.Set("Authorization", "Bearer "+registered.Token)
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp ProfileResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "profile@example.com", resp.User.Email)
	})

	t.Run("no token returns 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token for deleted account returns 404", func(t *testing.T) {
		orphanToken, err := tokens.CreateToken(uuid.New(), "gone@example.com", time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		req.Header.Set("Authorization", "Bearer "+orphanToken)
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)

		var resp httputil.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "User not found", resp.Error)
	})
}

func TestHandler_ForgotPassword_AlwaysSucceeds(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := postJSON(t, h.Register, "/api/auth/register", `{"email":"exists@example.com","password":"password123"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	known := postJSON(t, h.ForgotPassword, "/api/auth/forgot-password", `{"email":"exists@example.com"}`)
	unknown := postJSON(t, h.ForgotPassword, "/api/auth/forgot-password", `{"email":"nobody@example.com"}`)

	// Same response either way: no account enumeration
	assert.Equal(t, http.StatusOK, known.Code)
	assert.Equal(t, http.StatusOK, unknown.Code)
	assert.JSONEq(t, known.Body.String(), unknown.Body.String())
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{"remote addr only", "10.0.0.1:54321", nil, "10.0.0.1"},
		{"x-forwarded-for single", "10.0.0.1:54321", map[string]string{"X-Forwarded-For": "203.0.113.7"}, "203.0.113.7"},
		{"x-forwarded-for chain", "10.0.0.1:54321", map[string]string{"X-Forwarded-For": "203.0.113.7, 70.41.3.18"}, "203.0.113.7"},
		{"x-real-ip", "10.0.0.1:54321", map[string]string{"X-Real-IP": "198.51.100.2"}, "198.51.100.2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, getClientIP(req))
		})
	}
}
