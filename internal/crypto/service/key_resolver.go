package service

import (
	"os"

	cryptoDomain "github.com/allisson/credvault/internal/crypto/domain"
)

// EncryptionKeyEnvVar is the environment variable holding the base64-encoded
// process-wide default encryption key.
const EncryptionKeyEnvVar = "ENCRYPTION_KEY"

// EnvKeyResolver resolves keys from an explicit argument with a fallback to
// the ENCRYPTION_KEY environment variable.
//
// The environment variable is read on every call rather than cached, so a
// process that rewrites its environment (e.g., tests) always sees the current
// value. Length validation is not performed here; the cipher validates the
// decoded key at the point of use.
type EnvKeyResolver struct{}

// NewEnvKeyResolver creates a new EnvKeyResolver.
func NewEnvKeyResolver() *EnvKeyResolver {
	return &EnvKeyResolver{}
}

// Resolve returns the explicit key if non-empty, otherwise the value of
// ENCRYPTION_KEY. Returns domain.ErrMissingKey when both are empty: that is a
// configuration fault the caller should surface at startup, not a
// cryptographic failure.
func (r *EnvKeyResolver) Resolve(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	if key := os.Getenv(EncryptionKeyEnvVar); key != "" {
		return key, nil
	}

	return "", cryptoDomain.ErrMissingKey
}

// StaticKeyResolver resolves to a fixed key. Intended for tests and for
// callers that manage their own key material.
type StaticKeyResolver struct {
	Key string
}

// Resolve returns the explicit key if non-empty, otherwise the static key.
func (r *StaticKeyResolver) Resolve(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if r.Key != "" {
		return r.Key, nil
	}
	return "", cryptoDomain.ErrMissingKey
}
