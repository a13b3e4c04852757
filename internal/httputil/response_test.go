package httputil

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/credvault/internal/crypto/domain"
	apperrors "github.com/allisson/credvault/internal/errors"
)

func setupTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	return c, w
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHandleErrorGin(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{"not found", apperrors.ErrNotFound, http.StatusNotFound, "not_found"},
		{"conflict", apperrors.ErrConflict, http.StatusConflict, "conflict"},
		{"invalid input", apperrors.ErrInvalidInput, http.StatusUnprocessableEntity, "invalid_input"},
		{"unauthorized", apperrors.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{"misconfigured", apperrors.ErrMisconfigured, http.StatusInternalServerError, "misconfigured"},
		{"unknown", apperrors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := setupTestContext(t)

			HandleErrorGin(c, tt.err, testLogger())

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tt.expectedCode, response.Error)
		})
	}

	t.Run("nil error writes nothing", func(t *testing.T) {
		c, w := setupTestContext(t)
		HandleErrorGin(c, nil, testLogger())
		assert.Empty(t, w.Body.String())
	})

	t.Run("decryption error maps to invalid input", func(t *testing.T) {
		c, w := setupTestContext(t)

		HandleErrorGin(c, &cryptoDomain.DecryptionError{Err: apperrors.New("tag mismatch")}, testLogger())

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.NotContains(t, w.Body.String(), "tag mismatch")
	})

	t.Run("missing key maps to misconfigured", func(t *testing.T) {
		c, w := setupTestContext(t)

		HandleErrorGin(c, cryptoDomain.ErrMissingKey, testLogger())

		assert.Equal(t, http.StatusInternalServerError, w.Code)

		var response ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "misconfigured", response.Error)
	})
}

func TestHandleValidationErrorGin(t *testing.T) {
	c, w := setupTestContext(t)

	HandleValidationErrorGin(c, apperrors.New("provider: cannot be blank"), testLogger())

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var response ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "validation_error", response.Error)
	assert.Contains(t, response.Message, "provider")
}

func TestHandleBadRequestGin(t *testing.T) {
	c, w := setupTestContext(t)

	HandleBadRequestGin(c, apperrors.New("invalid JSON"), testLogger())

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
