// Package service implements authenticated encryption for credentials at rest.
// The single supported construction is AES-256-GCM with per-call random nonces
// and per-call key buffer scrubbing.
package service

import (
	cryptoDomain "github.com/allisson/credvault/internal/crypto/domain"
)

// Encryptor defines the operations for protecting credential material at rest.
//
// The key argument on every method is an optional explicit base64-encoded
// 256-bit key; pass the empty string to use the process-wide key obtained
// through the KeyResolver. All implementations must be stateless and safe for
// concurrent use.
type Encryptor interface {
	// Encrypt encrypts a UTF-8 plaintext and returns the envelope.
	Encrypt(plaintext, key string) (*cryptoDomain.Envelope, error)

	// Decrypt validates the envelope, then decrypts and authenticates it in
	// one atomic operation, returning the recovered plaintext.
	Decrypt(envelope *cryptoDomain.Envelope, key string) (string, error)

	// EncryptJSON serializes a value to JSON and encrypts the result.
	EncryptJSON(value any, key string) (*cryptoDomain.Envelope, error)

	// DecryptJSON decrypts an envelope and parses the recovered text as JSON.
	// The result is untyped; schema validation is the caller's concern.
	DecryptJSON(envelope *cryptoDomain.Envelope, key string) (any, error)

	// GenerateKey produces a fresh random 256-bit key, base64-encoded.
	GenerateKey() (string, error)
}

// KeyResolver resolves the key material used by an Encryptor call.
type KeyResolver interface {
	// Resolve returns the explicit key when one is given, otherwise the
	// process-wide key. Returns domain.ErrMissingKey when neither is available.
	Resolve(explicit string) (string, error)
}
