package dto

import (
	"time"

	credentialsDomain "github.com/allisson/credvault/internal/credentials/domain"
)

// CredentialResponse represents credential metadata in API responses.
// Envelope fields and plaintext are never included.
type CredentialResponse struct {
	ID        string    `json:"id"`
	Provider  string    `json:"provider"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MapCredentialToResponse converts a domain credential to its metadata response.
func MapCredentialToResponse(credential *credentialsDomain.Credential) CredentialResponse {
	return CredentialResponse{
		ID:        credential.ID.String(),
		Provider:  credential.Provider,
		Type:      string(credential.Type),
		CreatedAt: credential.CreatedAt,
		UpdatedAt: credential.UpdatedAt,
	}
}

// RevealCredentialResponse carries a decrypted credential payload.
// Exactly one of Value or ValueJSON is set, mirroring how the credential was
// stored. Must be transmitted over HTTPS in production.
type RevealCredentialResponse struct {
	Provider  string `json:"provider"`
	Type      string `json:"type"`
	Value     string `json:"value,omitempty"`
	ValueJSON any    `json:"value_json,omitempty"`
}

// ListCredentialsResponse represents a paginated list of credentials in API responses.
type ListCredentialsResponse struct {
	Data []CredentialResponse `json:"data"`
}

// MapCredentialsToListResponse converts a slice of domain credentials to a list response.
func MapCredentialsToListResponse(credentials []*credentialsDomain.Credential) ListCredentialsResponse {
	data := make([]CredentialResponse, 0, len(credentials))
	for _, credential := range credentials {
		data = append(data, MapCredentialToResponse(credential))
	}

	return ListCredentialsResponse{
		Data: data,
	}
}
