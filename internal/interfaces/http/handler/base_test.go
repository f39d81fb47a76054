package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/comercia/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestBaseHandler_HandleError(t *testing.T) {
	h := &BaseHandler{}

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", shared.ErrNotFound, http.StatusNotFound},
		{"conflict", shared.ErrAlreadyExists, http.StatusConflict},
		{"stale version", shared.ErrStaleVersion, http.StatusConflict},
		{"invalid transition", shared.NewInvalidTransitionError("Invoice", "PAID", "DRAFT"), http.StatusConflict},
		{"validation", shared.NewValidationError("Total must be positive"), http.StatusBadRequest},
		{"business rule", shared.NewBusinessRuleError("Credit note exceeds invoice balance"), http.StatusUnprocessableEntity},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext(t)
			h.HandleError(c, tt.err)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}

	t.Run("nil error writes nothing", func(t *testing.T) {
		c, w := newTestContext(t)
		h.HandleError(c, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Body.String())
	})
}

func TestIdentityFromHeaders(t *testing.T) {
	h := &BaseHandler{}

	t.Run("header fallback when no JWT claims are present", func(t *testing.T) {
		c, _ := newTestContext(t)
		tenantID := uuid.New()
		userID := uuid.New()
		c.Request.Header.Set("X-Tenant-ID", tenantID.String())
		c.Request.Header.Set("X-User-ID", userID.String())

		gotTenant, gotUser, ok := h.identity(c)
		require.True(t, ok)
		assert.Equal(t, tenantID, gotTenant)
		assert.Equal(t, userID, gotUser)
	})

	t.Run("missing identity responds 401", func(t *testing.T) {
		c, w := newTestContext(t)

		_, _, ok := h.identity(c)
		assert.False(t, ok)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
