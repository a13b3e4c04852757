// Package http provides HTTP handlers for credential management operations.
// Credentials are encrypted at rest; listings expose metadata only and the
// decrypted payload is returned exclusively by the reveal endpoint.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	credentialsDomain "github.com/allisson/credvault/internal/credentials/domain"
	"github.com/allisson/credvault/internal/credentials/http/dto"
	credentialsUseCase "github.com/allisson/credvault/internal/credentials/usecase"
	"github.com/allisson/credvault/internal/httputil"
	customValidation "github.com/allisson/credvault/internal/validation"
)

// EncryptionKeyHeader carries an optional explicit base64-encoded key on
// reveal requests. Headers are used instead of query parameters so key
// material stays out of access logs.
const EncryptionKeyHeader = "X-Encryption-Key"

// CredentialHandler handles HTTP requests for credential management operations.
type CredentialHandler struct {
	credentialUseCase credentialsUseCase.CredentialUseCase
	logger            *slog.Logger
}

// NewCredentialHandler creates a new credential handler with required dependencies.
func NewCredentialHandler(
	credentialUseCase credentialsUseCase.CredentialUseCase,
	logger *slog.Logger,
) *CredentialHandler {
	return &CredentialHandler{
		credentialUseCase: credentialUseCase,
		logger:            logger,
	}
}

// params extracts and validates the provider and type path parameters.
func (h *CredentialHandler) params(c *gin.Context) (string, credentialsDomain.Type, error) {
	provider := c.Param("provider")
	if err := customValidation.Slug.Validate(provider); err != nil {
		return "", "", fmt.Errorf("invalid provider: %w", err)
	}

	credentialType := credentialsDomain.Type(c.Param("type"))
	if !credentialType.IsValid() {
		return "", "", credentialsDomain.ErrUnsupportedCredentialType
	}

	return provider, credentialType, nil
}

// StoreHandler stores or replaces a credential under (provider, type).
// PUT /v1/credentials/:provider/:type
// Returns 201 Created with credential metadata (never the payload).
func (h *CredentialHandler) StoreHandler(c *gin.Context) {
	provider, credentialType, err := h.params(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var req dto.StoreCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	var credential *credentialsDomain.Credential
	if req.IsJSON() {
		credential, err = h.credentialUseCase.StoreJSON(
			c.Request.Context(), provider, credentialType, req.ValueJSON, req.Key,
		)
	} else {
		credential, err = h.credentialUseCase.Store(
			c.Request.Context(), provider, credentialType, req.Value, req.Key,
		)
	}
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapCredentialToResponse(credential))
}

// RevealHandler decrypts and returns a credential payload.
// GET /v1/credentials/:provider/:type/reveal?format=json
// An explicit key may be supplied via the X-Encryption-Key header.
// Returns 200 OK with the decrypted payload.
func (h *CredentialHandler) RevealHandler(c *gin.Context) {
	provider, credentialType, err := h.params(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	key := c.GetHeader(EncryptionKeyHeader)

	response := dto.RevealCredentialResponse{
		Provider: provider,
		Type:     string(credentialType),
	}

	switch format := c.DefaultQuery("format", "text"); format {
	case "json":
		value, err := h.credentialUseCase.RevealJSON(c.Request.Context(), provider, credentialType, key)
		if err != nil {
			httputil.HandleErrorGin(c, err, h.logger)
			return
		}
		response.ValueJSON = value
	case "text":
		value, err := h.credentialUseCase.Reveal(c.Request.Context(), provider, credentialType, key)
		if err != nil {
			httputil.HandleErrorGin(c, err, h.logger)
			return
		}
		response.Value = value
	default:
		httputil.HandleValidationErrorGin(
			c,
			fmt.Errorf("invalid format parameter: must be text or json"),
			h.logger,
		)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ListHandler retrieves credential metadata with pagination support.
// GET /v1/credentials?offset=0&limit=50
// Returns 200 OK with metadata only; payloads are never listed.
func (h *CredentialHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	credentials, err := h.credentialUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCredentialsToListResponse(credentials))
}

// DeleteHandler removes a credential by provider and type.
// DELETE /v1/credentials/:provider/:type
// Returns 204 No Content.
func (h *CredentialHandler) DeleteHandler(c *gin.Context) {
	provider, credentialType, err := h.params(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := h.credentialUseCase.Delete(c.Request.Context(), provider, credentialType); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}
