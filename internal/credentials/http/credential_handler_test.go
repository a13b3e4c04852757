package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	credentialsDomain "github.com/allisson/credvault/internal/credentials/domain"
	"github.com/allisson/credvault/internal/credentials/http/dto"
	"github.com/allisson/credvault/internal/credentials/usecase/mocks"
	cryptoDomain "github.com/allisson/credvault/internal/crypto/domain"
	apperrors "github.com/allisson/credvault/internal/errors"
)

// setupTestHandler creates a test handler with mocked dependencies.
func setupTestHandler(t *testing.T) (*CredentialHandler, *mocks.MockCredentialUseCase) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	mockUseCase := &mocks.MockCredentialUseCase{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewCredentialHandler(mockUseCase, logger), mockUseCase
}

func createTestContext(method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	return c, w
}

func setParams(c *gin.Context, provider, credentialType string) {
	c.Params = gin.Params{
		{Key: "provider", Value: provider},
		{Key: "type", Value: credentialType},
	}
}

func TestCredentialHandler_StoreHandler(t *testing.T) {
	t.Run("Success_PlaintextValue", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		now := time.Now().UTC()
		expected := &credentialsDomain.Credential{
			ID:        uuid.Must(uuid.NewV7()),
			Provider:  "stripe",
			Type:      credentialsDomain.TypeAPIKey,
			CreatedAt: now,
			UpdatedAt: now,
		}

		mockUseCase.On("Store", mock.Anything, "stripe", credentialsDomain.TypeAPIKey, "sk-live-abc123", "").
			Return(expected, nil).
			Once()

		request := dto.StoreCredentialRequest{Value: "sk-live-abc123"}
		c, w := createTestContext(http.MethodPut, "/v1/credentials/stripe/api_key", request)
		setParams(c, "stripe", "api_key")

		handler.StoreHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response dto.CredentialResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, expected.ID.String(), response.ID)
		assert.Equal(t, "stripe", response.Provider)
		assert.Equal(t, "api_key", response.Type)
		// Envelope fields never appear in responses.
		assert.NotContains(t, w.Body.String(), "ciphertext")
	})

	t.Run("Success_JSONValue", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		now := time.Now().UTC()
		expected := &credentialsDomain.Credential{
			ID:        uuid.Must(uuid.NewV7()),
			Provider:  "google",
			Type:      credentialsDomain.TypeOAuthToken,
			CreatedAt: now,
			UpdatedAt: now,
		}

		mockUseCase.On("StoreJSON", mock.Anything, "google", credentialsDomain.TypeOAuthToken, mock.Anything, "").
			Return(expected, nil).
			Once()

		request := map[string]any{
			"value_json": map[string]any{"access_token": "ya29.a0AfH6"},
		}
		c, w := createTestContext(http.MethodPut, "/v1/credentials/google/oauth_token", request)
		setParams(c, "google", "oauth_token")

		handler.StoreHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		mockUseCase.AssertNotCalled(t, "Store", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error_InvalidProvider", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		request := dto.StoreCredentialRequest{Value: "sk-live-abc123"}
		c, w := createTestContext(http.MethodPut, "/v1/credentials/Not%20Valid/api_key", request)
		setParams(c, "Not Valid", "api_key")

		handler.StoreHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockUseCase.AssertNotCalled(t, "Store", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error_UnsupportedType", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		request := dto.StoreCredentialRequest{Value: "hunter2"}
		c, w := createTestContext(http.MethodPut, "/v1/credentials/github/password", request)
		setParams(c, "github", "password")

		handler.StoreHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_BothValueAndJSON", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		request := map[string]any{
			"value":      "sk-live-abc123",
			"value_json": map[string]any{"k": "v"},
		}
		c, w := createTestContext(http.MethodPut, "/v1/credentials/stripe/api_key", request)
		setParams(c, "stripe", "api_key")

		handler.StoreHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_EmptyBody", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodPut, "/v1/credentials/stripe/api_key", map[string]any{})
		setParams(c, "stripe", "api_key")

		handler.StoreHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_InvalidExplicitKey", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		request := dto.StoreCredentialRequest{Value: "sk-live-abc123", Key: "not-base64!!!"}
		c, w := createTestContext(http.MethodPut, "/v1/credentials/stripe/api_key", request)
		setParams(c, "stripe", "api_key")

		handler.StoreHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_EncryptionMisconfigured", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		mockUseCase.On("Store", mock.Anything, "stripe", credentialsDomain.TypeAPIKey, "sk-live-abc123", "").
			Return(nil, cryptoDomain.ErrMissingKey).
			Once()

		request := dto.StoreCredentialRequest{Value: "sk-live-abc123"}
		c, w := createTestContext(http.MethodPut, "/v1/credentials/stripe/api_key", request)
		setParams(c, "stripe", "api_key")

		handler.StoreHandler(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestCredentialHandler_RevealHandler(t *testing.T) {
	t.Run("Success_TextFormat", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		mockUseCase.On("Reveal", mock.Anything, "stripe", credentialsDomain.TypeAPIKey, "").
			Return("sk-live-abc123", nil).
			Once()

		c, w := createTestContext(http.MethodGet, "/v1/credentials/stripe/api_key/reveal", nil)
		setParams(c, "stripe", "api_key")

		handler.RevealHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.RevealCredentialResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "sk-live-abc123", response.Value)
		assert.Nil(t, response.ValueJSON)
	})

	t.Run("Success_JSONFormat", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		token := map[string]any{"access_token": "ya29.a0AfH6"}

		mockUseCase.On("RevealJSON", mock.Anything, "google", credentialsDomain.TypeOAuthToken, "").
			Return(token, nil).
			Once()

		c, w := createTestContext(http.MethodGet, "/v1/credentials/google/oauth_token/reveal?format=json", nil)
		setParams(c, "google", "oauth_token")

		handler.RevealHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.RevealCredentialResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, token, response.ValueJSON)
		assert.Empty(t, response.Value)
	})

	t.Run("Success_ExplicitKeyHeader", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		explicitKey := "dGVzdC1rZXktMzItYnl0ZXMtbG9uZy1oZXJlISE="

		mockUseCase.On("Reveal", mock.Anything, "stripe", credentialsDomain.TypeAPIKey, explicitKey).
			Return("sk-live-abc123", nil).
			Once()

		c, w := createTestContext(http.MethodGet, "/v1/credentials/stripe/api_key/reveal", nil)
		c.Request.Header.Set(EncryptionKeyHeader, explicitKey)
		setParams(c, "stripe", "api_key")

		handler.RevealHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		mockUseCase.On("Reveal", mock.Anything, "stripe", credentialsDomain.TypeAPIKey, "").
			Return("", apperrors.ErrNotFound).
			Once()

		c, w := createTestContext(http.MethodGet, "/v1/credentials/stripe/api_key/reveal", nil)
		setParams(c, "stripe", "api_key")

		handler.RevealHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Error_WrongKey", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		mockUseCase.On("Reveal", mock.Anything, "stripe", credentialsDomain.TypeAPIKey, mock.Anything).
			Return("", &cryptoDomain.DecryptionError{}).
			Once()

		c, w := createTestContext(http.MethodGet, "/v1/credentials/stripe/api_key/reveal", nil)
		c.Request.Header.Set(EncryptionKeyHeader, "d3Jvbmcta2V5LXdyb25nLWtleS13cm9uZy1rZXkh")
		setParams(c, "stripe", "api_key")

		handler.RevealHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		// The response never explains why decryption failed.
		assert.NotContains(t, w.Body.String(), "authentication")
	})

	t.Run("Error_InvalidFormat", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		c, w := createTestContext(http.MethodGet, "/v1/credentials/stripe/api_key/reveal?format=xml", nil)
		setParams(c, "stripe", "api_key")

		handler.RevealHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockUseCase.AssertNotCalled(t, "Reveal", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCredentialHandler_ListHandler(t *testing.T) {
	t.Run("Success_ReturnsMetadataOnly", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		now := time.Now().UTC()
		credentials := []*credentialsDomain.Credential{
			{
				ID:       uuid.Must(uuid.NewV7()),
				Provider: "github",
				Type:     credentialsDomain.TypeOAuthToken,
				Envelope: cryptoDomain.Envelope{
					Ciphertext: "Y2lwaGVydGV4dA==",
					IV:         "bm9uY2Vub25jZQ==",
					Tag:        "dGFnZ3RhZ2d0YWdndGFnZw==",
				},
				CreatedAt: now,
				UpdatedAt: now,
			},
		}

		mockUseCase.On("List", mock.Anything, 0, 50).
			Return(credentials, nil).
			Once()

		c, w := createTestContext(http.MethodGet, "/v1/credentials", nil)

		handler.ListHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.ListCredentialsResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Len(t, response.Data, 1)
		assert.Equal(t, "github", response.Data[0].Provider)
		// Envelope fields must not leak into listings.
		assert.NotContains(t, w.Body.String(), "Y2lwaGVydGV4dA==")
	})

	t.Run("Error_InvalidPagination", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		c, w := createTestContext(http.MethodGet, "/v1/credentials?limit=1000", nil)

		handler.ListHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockUseCase.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCredentialHandler_DeleteHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		mockUseCase.On("Delete", mock.Anything, "stripe", credentialsDomain.TypeAPIKey).
			Return(nil).
			Once()

		c, w := createTestContext(http.MethodDelete, "/v1/credentials/stripe/api_key", nil)
		setParams(c, "stripe", "api_key")

		handler.DeleteHandler(c)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		mockUseCase.On("Delete", mock.Anything, "stripe", credentialsDomain.TypeAPIKey).
			Return(apperrors.ErrNotFound).
			Once()

		c, w := createTestContext(http.MethodDelete, "/v1/credentials/stripe/api_key", nil)
		setParams(c, "stripe", "api_key")

		handler.DeleteHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
