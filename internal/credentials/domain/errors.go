package domain

import (
	"github.com/allisson/credvault/internal/errors"
)

// Credential-specific error definitions.
var (
	// ErrCredentialNotFound indicates no credential exists for the requested
	// provider and type.
	ErrCredentialNotFound = errors.Wrap(errors.ErrNotFound, "credential not found")

	// ErrUnsupportedCredentialType indicates the requested credential type is
	// not one of the supported types.
	ErrUnsupportedCredentialType = errors.Wrap(errors.ErrInvalidInput, "unsupported credential type")
)
