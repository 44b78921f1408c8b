package contact

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvernon0786/reviewcraft-api/internal/auth"
	"github.com/dvernon0786/reviewcraft-api/internal/httputil"
)

func TestDemo_Anonymous(t *testing.T) {
	h := NewHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/demo/contacts", nil)
	rec := httptest.NewRecorder()
	h.Demo(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var contacts []Contact
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &contacts))
	require.Len(t, contacts, 1)
	assert.Equal(t, "John Doe", contacts[0].Name)
	assert.Equal(t, "active", contacts[0].Status)
	assert.Contains(t, contacts[0].Tags, "vip")
}

func TestCreate_Validation(t *testing.T) {
	h := NewHandler(nil)

	withUser := func(r *http.Request) *http.Request {
		ctx := context.WithValue(r.Context(), auth.UserIDContextKey, uuid.New())
		return r.WithContext(ctx)
	}

	t.Run("no identity returns 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/contacts", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		h.Create(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed body returns 400", func(t *testing.T) {
		req := withUser(httptest.NewRequest(http.MethodPost, "/api/contacts", strings.NewReader(`{"name":`)))
		rec := httptest.NewRecorder()
		h.Create(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing name or email returns 400", func(t *testing.T) {
		req := withUser(httptest.NewRequest(http.MethodPost, "/api/contacts", strings.NewReader(`{"name":"Jane"}`)))
		rec := httptest.NewRecorder()
		h.Create(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var resp httputil.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Missing required fields", resp.Error)
	})
}

func TestApplyContactUpdate(t *testing.T) {
	oldPhone := "(555) 000-0000"
	existing := &Contact{
		Name:         "Original Name",
		Email:        "original@example.com",
		Phone:        &oldPhone,
		Status:       "active",
		Tags:         []string{"old"},
		ReviewStatus: "none",
	}

	newName := "Updated Name"
	newStatus := "inactive"
	newReview := "requested"
	applyContactUpdate(existing, &UpdateContactRequest{
		Name:         &newName,
		Status:       &newStatus,
		Tags:         []string{"fresh"},
		ReviewStatus: &newReview,
	})

	assert.Equal(t, "Updated Name", existing.Name)
	assert.Equal(t, "inactive", existing.Status)
	assert.Equal(t, []string{"fresh"}, existing.Tags)
	assert.Equal(t, "requested", existing.ReviewStatus)

	// Untouched fields keep their values
	assert.Equal(t, "original@example.com", existing.Email)
	require.NotNil(t, existing.Phone)
	assert.Equal(t, oldPhone, *existing.Phone)
}
