package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"

	cryptoDomain "github.com/allisson/credvault/internal/crypto/domain"
)

// AESGCMService implements the Encryptor interface using AES-256-GCM
// (Advanced Encryption Standard with Galois/Counter Mode).
//
// AES-GCM provides authenticated encryption: confidentiality from AES and
// integrity/authenticity from GMAC in one primitive. Tag verification inside
// cipher.AEAD.Open is constant-time with respect to secret material, so this
// service never compares tags itself.
//
// Security properties:
//   - 256-bit keys only; any other length is rejected before use
//   - 12-byte nonce, freshly generated from crypto/rand on every call
//   - 16-byte authentication tag, carried as its own envelope field
//   - No associated data: the envelope is context-free by design
//
// Key lifetime:
//
//	Each call base64-decodes its own key buffer and zeroes it before
//	returning, on every exit path including validation failures. No key
//	material outlives the call that decoded it.
//
// Thread safety:
//
//	The service is stateless and safe for concurrent use from multiple
//	goroutines; concurrent calls share nothing but the resolver.
type AESGCMService struct {
	resolver KeyResolver
}

// NewAESGCM creates a new AESGCMService with the provided key resolver.
func NewAESGCM(resolver KeyResolver) *AESGCMService {
	return &AESGCMService{resolver: resolver}
}

// Encrypt encrypts a UTF-8 plaintext with AES-256-GCM and returns the envelope.
//
// The plaintext size is checked against domain.MaxPlaintextSize before any
// key handling or nonce generation occurs. The key argument is an optional
// explicit base64-encoded key; the empty string selects the resolver's
// process-wide key.
//
// Failure modes, in order of checking:
//   - *domain.PlaintextTooLargeError: plaintext exceeds the size ceiling
//   - domain.ErrMissingKey: no key available
//   - *domain.InvalidBase64Error: the key is not valid base64
//   - *domain.InvalidKeyLengthError: the key does not decode to 32 bytes
//   - *domain.EncryptionError: the AEAD primitive or random source failed
func (s *AESGCMService) Encrypt(plaintext, key string) (*cryptoDomain.Envelope, error) {
	if len(plaintext) > cryptoDomain.MaxPlaintextSize {
		return nil, &cryptoDomain.PlaintextTooLargeError{
			MaxSize:    cryptoDomain.MaxPlaintextSize,
			ActualSize: len(plaintext),
		}
	}

	aead, err := s.newAEAD(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, cryptoDomain.NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, &cryptoDomain.EncryptionError{Err: err}
	}

	// Seal appends the 16-byte tag to the ciphertext; split it into its own
	// envelope field.
	sealed := aead.Seal(nil, nonce, []byte(plaintext), nil)
	tagStart := len(sealed) - cryptoDomain.TagSize

	return &cryptoDomain.Envelope{
		Ciphertext: base64.StdEncoding.EncodeToString(sealed[:tagStart]),
		IV:         base64.StdEncoding.EncodeToString(nonce),
		Tag:        base64.StdEncoding.EncodeToString(sealed[tagStart:]),
	}, nil
}

// Decrypt validates the envelope, then decrypts and authenticates it in one
// atomic operation, returning the recovered plaintext.
//
// Envelope validation errors are propagated unchanged, so a malformed field is
// always reported before any cryptographic work happens. After validation, the
// key is resolved and length-checked exactly as in Encrypt.
//
// Any failure of the decrypt+verify step itself (wrong key, tampered
// ciphertext, modified nonce or tag, corrupted data) collapses into a single
// opaque *domain.DecryptionError. Distinguishing those causes would create a
// decryption oracle, so the collapse is deliberate.
func (s *AESGCMService) Decrypt(envelope *cryptoDomain.Envelope, key string) (string, error) {
	if err := envelope.Validate(); err != nil {
		return "", err
	}

	aead, err := s.newAEAD(key)
	if err != nil {
		return "", err
	}

	// Validate already established these fields are well-formed base64.
	nonce, _ := base64.StdEncoding.DecodeString(envelope.IV)
	tag, _ := base64.StdEncoding.DecodeString(envelope.Tag)
	ciphertext, _ := base64.StdEncoding.DecodeString(envelope.Ciphertext)

	// Open expects the tag appended to the ciphertext and verifies it in
	// constant time before returning any plaintext.
	plaintext, err := aead.Open(nil, nonce, append(ciphertext, tag...), nil)
	if err != nil {
		return "", &cryptoDomain.DecryptionError{Err: err}
	}

	return string(plaintext), nil
}

// GenerateKey produces a fresh 32-byte key from crypto/rand, base64-encoded.
func (s *AESGCMService) GenerateKey() (string, error) {
	key := make([]byte, cryptoDomain.KeySize)
	if _, err := rand.Read(key); err != nil {
		return "", &cryptoDomain.EncryptionError{Err: err}
	}
	defer cryptoDomain.Zero(key)

	return base64.StdEncoding.EncodeToString(key), nil
}

// newAEAD resolves and decodes the key, then builds the GCM instance.
// The decoded key buffer is zeroed before newAEAD returns: once the cipher is
// expanded the raw key is no longer needed, and on failure it must not linger.
func (s *AESGCMService) newAEAD(key string) (cipher.AEAD, error) {
	resolved, err := s.resolver.Resolve(key)
	if err != nil {
		return nil, err
	}

	rawKey, err := base64.StdEncoding.DecodeString(resolved)
	if err != nil {
		return nil, &cryptoDomain.InvalidBase64Error{Field: "key", Err: err}
	}
	defer cryptoDomain.Zero(rawKey)

	if len(rawKey) != cryptoDomain.KeySize {
		return nil, &cryptoDomain.InvalidKeyLengthError{
			Expected: cryptoDomain.KeySize,
			Actual:   len(rawKey),
		}
	}

	block, err := aes.NewCipher(rawKey)
	if err != nil {
		return nil, &cryptoDomain.EncryptionError{Err: err}
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, &cryptoDomain.EncryptionError{Err: err}
	}

	return aead, nil
}
