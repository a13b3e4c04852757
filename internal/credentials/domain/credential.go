// Package domain defines the core domain models for stored credentials.
// A credential is one encrypted third-party secret (an OAuth token or an API
// key) identified by its provider and type; the encrypted payload is carried
// as an AES-256-GCM envelope and never stored in plaintext.
package domain

import (
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/credvault/internal/crypto/domain"
)

// Type classifies what kind of secret a credential holds.
type Type string

const (
	// TypeOAuthToken is a full OAuth token payload (access token, refresh
	// token, expiry), stored as encrypted JSON.
	TypeOAuthToken Type = "oauth_token"

	// TypeAPIKey is an opaque API key or static secret, stored as encrypted text.
	TypeAPIKey Type = "api_key"
)

// IsValid reports whether the type is one of the supported credential types.
func (t Type) IsValid() bool {
	switch t {
	case TypeOAuthToken, TypeAPIKey:
		return true
	}
	return false
}

// Credential represents an encrypted third-party credential at rest.
// There is exactly one credential per (provider, type) pair; storing again
// replaces the envelope in place.
type Credential struct {
	// ID is the unique identifier for this credential.
	ID uuid.UUID
	// Provider is the external service the credential belongs to (e.g., "github").
	Provider string
	// Type classifies the credential payload.
	Type Type
	// Envelope holds the encrypted payload: ciphertext, iv, and tag, each
	// base64-encoded and persisted as separate columns.
	Envelope cryptoDomain.Envelope
	// CreatedAt is the UTC timestamp when the credential was first stored.
	CreatedAt time.Time
	// UpdatedAt is the UTC timestamp of the last envelope replacement.
	UpdatedAt time.Time
}
