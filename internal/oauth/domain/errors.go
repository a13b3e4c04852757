package domain

import (
	"github.com/allisson/credvault/internal/errors"
)

// OAuth flow error definitions.
var (
	// ErrProviderNotFound indicates the requested OAuth provider is not configured.
	ErrProviderNotFound = errors.Wrap(errors.ErrNotFound, "oauth provider not configured")

	// ErrInvalidState indicates the callback state value is unknown or expired.
	// Expired and never-issued states are indistinguishable on purpose.
	ErrInvalidState = errors.Wrap(errors.ErrInvalidInput, "invalid or expired oauth state")

	// ErrExchangeFailed indicates the authorization code could not be exchanged
	// for a token.
	ErrExchangeFailed = errors.Wrap(errors.ErrInvalidInput, "oauth code exchange failed")
)
