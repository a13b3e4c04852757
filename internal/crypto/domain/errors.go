package domain

import (
	"fmt"

	apperrors "github.com/allisson/credvault/internal/errors"
)

// Cryptographic operation error definitions.
//
// Every failure path of the crypto module maps to exactly one of the types
// below. Callers branch on the error type with errors.As/errors.Is, never by
// matching message strings. Each type also unwraps to one of the base errors
// in internal/errors so the HTTP layer can map it to a status code.
var (
	// ErrMissingKey indicates no encryption key was provided and the
	// ENCRYPTION_KEY environment variable is not set.
	//
	// This is a configuration fault, not a cryptographic one: callers should
	// treat it as a startup/deployment problem rather than a bad request.
	ErrMissingKey = apperrors.Wrap(apperrors.ErrMisconfigured, "encryption key not available")
)

// PlaintextTooLargeError indicates the plaintext exceeds MaxPlaintextSize.
//
// The size check runs before any key handling or nonce generation, so an
// oversized payload never touches key material.
type PlaintextTooLargeError struct {
	MaxSize    int
	ActualSize int
}

func (e *PlaintextTooLargeError) Error() string {
	return fmt.Sprintf("plaintext exceeds maximum size: %d bytes (max %d)", e.ActualSize, e.MaxSize)
}

// Unwrap maps the error to the application-wide invalid input error.
func (e *PlaintextTooLargeError) Unwrap() error { return apperrors.ErrInvalidInput }

// InvalidKeyLengthError indicates a key did not decode to exactly KeySize bytes.
//
// The decoded key buffer is zeroed before this error is returned.
type InvalidKeyLengthError struct {
	Expected int
	Actual   int
}

func (e *InvalidKeyLengthError) Error() string {
	return fmt.Sprintf("invalid key length: expected %d bytes, got %d", e.Expected, e.Actual)
}

// Unwrap maps the error to the application-wide invalid input error.
func (e *InvalidKeyLengthError) Unwrap() error { return apperrors.ErrInvalidInput }

// InvalidIVLengthError indicates an envelope IV did not decode to NonceSize bytes.
type InvalidIVLengthError struct {
	Expected int
	Actual   int
}

func (e *InvalidIVLengthError) Error() string {
	return fmt.Sprintf("invalid iv length: expected %d bytes, got %d", e.Expected, e.Actual)
}

// Unwrap maps the error to the application-wide invalid input error.
func (e *InvalidIVLengthError) Unwrap() error { return apperrors.ErrInvalidInput }

// InvalidAuthTagLengthError indicates an envelope tag did not decode to TagSize bytes.
type InvalidAuthTagLengthError struct {
	Expected int
	Actual   int
}

func (e *InvalidAuthTagLengthError) Error() string {
	return fmt.Sprintf("invalid auth tag length: expected %d bytes, got %d", e.Expected, e.Actual)
}

// Unwrap maps the error to the application-wide invalid input error.
func (e *InvalidAuthTagLengthError) Unwrap() error { return apperrors.ErrInvalidInput }

// InvalidBase64Error indicates an envelope field or key is not valid base64.
// Field names which field failed to decode ("iv", "tag", "ciphertext", "key").
type InvalidBase64Error struct {
	Field string
	Err   error
}

func (e *InvalidBase64Error) Error() string {
	return fmt.Sprintf("invalid base64 in field %q: %v", e.Field, e.Err)
}

// Unwrap maps the error to the application-wide invalid input error.
// The underlying decode error is intentionally not part of the chain;
// it is kept only for the message.
func (e *InvalidBase64Error) Unwrap() error { return apperrors.ErrInvalidInput }

// EncryptionError wraps an unexpected failure from the AEAD primitive during
// encryption (e.g., the system random source failing). These are not expected
// from a correctly-configured runtime and are surfaced as-is, without retry.
type EncryptionError struct {
	Err error
}

func (e *EncryptionError) Error() string {
	return fmt.Sprintf("encryption failed: %v", e.Err)
}

// Unwrap exposes the underlying cause.
func (e *EncryptionError) Unwrap() error { return e.Err }

// DecryptionError indicates the decrypt+verify step failed.
//
// Wrong key, tampered ciphertext, a modified nonce, and corrupted data all
// collapse into this single opaque error. Distinguishing them would hand an
// attacker a decryption oracle, so the cause is deliberately undifferentiated.
type DecryptionError struct {
	Err error
}

func (e *DecryptionError) Error() string {
	return "decryption failed"
}

// Unwrap maps the error to the application-wide invalid input error. The
// underlying AEAD error is kept for debugging but excluded from the message.
func (e *DecryptionError) Unwrap() error { return apperrors.ErrInvalidInput }

// JSONMarshalError wraps a serialization failure in EncryptJSON
// (e.g., a value containing a channel or a NaN float).
type JSONMarshalError struct {
	Err error
}

func (e *JSONMarshalError) Error() string {
	return fmt.Sprintf("json serialization failed: %v", e.Err)
}

// Unwrap exposes the underlying cause.
func (e *JSONMarshalError) Unwrap() error { return e.Err }

// JSONUnmarshalError wraps a parse failure in DecryptJSON. It is distinct
// from DecryptionError: the envelope authenticated and decrypted correctly,
// but the recovered text is not valid JSON.
type JSONUnmarshalError struct {
	Err error
}

func (e *JSONUnmarshalError) Error() string {
	return fmt.Sprintf("json parse failed: %v", e.Err)
}

// Unwrap exposes the underlying cause.
func (e *JSONUnmarshalError) Unwrap() error { return e.Err }
