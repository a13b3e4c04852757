// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/credvault/internal/validation"
)

// StoreCredentialRequest contains the payload for storing a credential.
// Exactly one of Value (plaintext) or ValueJSON (arbitrary JSON document) must
// be set. Key is an optional explicit base64-encoded 256-bit encryption key;
// when omitted the process-wide key is used.
type StoreCredentialRequest struct {
	Value     string `json:"value,omitempty"`
	ValueJSON any    `json:"value_json,omitempty"`
	Key       string `json:"key,omitempty"`
}

// Validate checks if the store credential request is valid.
func (r *StoreCredentialRequest) Validate() error {
	if (r.Value == "") == (r.ValueJSON == nil) {
		return validation.NewError(
			"validation_value",
			"exactly one of value or value_json must be provided",
		)
	}

	return validation.ValidateStruct(r,
		validation.Field(&r.Key, customValidation.Base64),
	)
}

// IsJSON reports whether the request carries a JSON document payload.
func (r *StoreCredentialRequest) IsJSON() bool {
	return r.ValueJSON != nil
}
