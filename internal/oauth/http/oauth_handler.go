// Package http provides HTTP handlers for the OAuth capture flow.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/credvault/internal/credentials/http/dto"
	"github.com/allisson/credvault/internal/httputil"
	oauthUseCase "github.com/allisson/credvault/internal/oauth/usecase"
	customValidation "github.com/allisson/credvault/internal/validation"
)

// OAuthHandler handles HTTP requests for the OAuth authorization code flow.
type OAuthHandler struct {
	oauthUseCase oauthUseCase.OAuthUseCase
	logger       *slog.Logger
}

// NewOAuthHandler creates a new OAuth handler with required dependencies.
func NewOAuthHandler(useCase oauthUseCase.OAuthUseCase, logger *slog.Logger) *OAuthHandler {
	return &OAuthHandler{
		oauthUseCase: useCase,
		logger:       logger,
	}
}

// StartHandler begins the authorization flow for a provider.
// GET /v1/oauth/:provider/start
// Returns 302 Found redirecting to the provider's authorization URL.
func (h *OAuthHandler) StartHandler(c *gin.Context) {
	provider := c.Param("provider")
	if err := customValidation.Slug.Validate(provider); err != nil {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("invalid provider: %w", err), h.logger)
		return
	}

	authURL, err := h.oauthUseCase.Start(c.Request.Context(), provider)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Redirect(http.StatusFound, authURL)
}

// CallbackHandler completes the authorization flow.
// GET /v1/oauth/:provider/callback?state=...&code=...
// Returns 201 Created with the stored credential's metadata.
func (h *OAuthHandler) CallbackHandler(c *gin.Context) {
	provider := c.Param("provider")
	if err := customValidation.Slug.Validate(provider); err != nil {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("invalid provider: %w", err), h.logger)
		return
	}

	state := c.Query("state")
	code := c.Query("code")
	if state == "" || code == "" {
		httputil.HandleValidationErrorGin(
			c,
			fmt.Errorf("state and code parameters are required"),
			h.logger,
		)
		return
	}

	credential, err := h.oauthUseCase.Callback(c.Request.Context(), provider, state, code)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapCredentialToResponse(credential))
}
