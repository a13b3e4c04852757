// Package domain defines the envelope format, size constants, and error
// taxonomy for the credential encryption module.
//
// An Envelope is the only entity this module produces: the AES-256-GCM output
// of a single encryption call, split into three independently base64-encoded
// fields. Envelopes are immutable once produced; flipping any bit in any field
// makes decryption fail via authentication tag mismatch.
package domain

import (
	"encoding/base64"
)

// Envelope is one encrypted message: ciphertext, nonce, and authentication
// tag, each base64-encoded with standard encoding. There is no binary
// concatenation format; callers persist the three fields independently
// (e.g., as separate columns in a credentials table).
type Envelope struct {
	// Ciphertext is the encrypted payload. Its decoded length equals the
	// plaintext length (GCM is length-preserving once the tag is split off).
	Ciphertext string `json:"ciphertext"`
	// IV is the 12-byte nonce generated for this encryption call. Never
	// reused under the same key.
	IV string `json:"iv"`
	// Tag is the 16-byte GCM authentication tag binding ciphertext, nonce,
	// and key.
	Tag string `json:"tag"`
}

// Validate checks that every envelope field is well-formed before any
// cryptographic work is attempted: the IV decodes to exactly NonceSize bytes,
// the tag to exactly TagSize bytes, and the ciphertext is valid base64.
// Ciphertext length is not otherwise constrained (it tracks the plaintext).
//
// The checks run in order (iv, tag, ciphertext) and report the first failure
// with the field name. Validate is pure: it never logs or retains field values.
func (e *Envelope) Validate() error {
	iv, err := base64.StdEncoding.DecodeString(e.IV)
	if err != nil {
		return &InvalidBase64Error{Field: "iv", Err: err}
	}
	if len(iv) != NonceSize {
		return &InvalidIVLengthError{Expected: NonceSize, Actual: len(iv)}
	}

	tag, err := base64.StdEncoding.DecodeString(e.Tag)
	if err != nil {
		return &InvalidBase64Error{Field: "tag", Err: err}
	}
	if len(tag) != TagSize {
		return &InvalidAuthTagLengthError{Expected: TagSize, Actual: len(tag)}
	}

	if _, err := base64.StdEncoding.DecodeString(e.Ciphertext); err != nil {
		return &InvalidBase64Error{Field: "ciphertext", Err: err}
	}

	return nil
}
