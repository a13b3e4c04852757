package service

import (
	"encoding/json"

	cryptoDomain "github.com/allisson/credvault/internal/crypto/domain"
)

// EncryptJSON serializes a value to JSON and encrypts the result.
//
// Serialization failures (unsupported types such as channels or functions,
// non-finite floats, cyclic structures) return a *domain.JSONMarshalError
// wrapping the cause; everything else is delegated to Encrypt, including the
// plaintext size ceiling, which applies to the serialized form.
func (s *AESGCMService) EncryptJSON(value any, key string) (*cryptoDomain.Envelope, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, &cryptoDomain.JSONMarshalError{Err: err}
	}

	return s.Encrypt(string(data), key)
}

// DecryptJSON decrypts an envelope and parses the recovered text as JSON.
//
// Decryption errors are propagated unchanged. A parse failure of correctly
// decrypted text returns a *domain.JSONUnmarshalError, distinct from any
// decryption error. The result is untyped (map[string]any, []any, string,
// float64, bool, or nil); schema validation of the shape is the caller's
// responsibility.
func (s *AESGCMService) DecryptJSON(envelope *cryptoDomain.Envelope, key string) (any, error) {
	plaintext, err := s.Decrypt(envelope, key)
	if err != nil {
		return nil, err
	}

	var value any
	if err := json.Unmarshal([]byte(plaintext), &value); err != nil {
		return nil, &cryptoDomain.JSONUnmarshalError{Err: err}
	}

	return value, nil
}
