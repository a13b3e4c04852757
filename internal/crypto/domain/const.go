package domain

// Sizes for the AES-256-GCM envelope format.
//
// The module supports exactly one construction: AES-256-GCM with a random
// 96-bit nonce and a 128-bit authentication tag. All sizes are fixed and
// validated before any cryptographic operation is attempted.
const (
	// KeySize is the required key length in bytes (AES-256 requires 256-bit keys).
	KeySize = 32

	// NonceSize is the GCM nonce length in bytes (96 bits, the GCM standard size).
	NonceSize = 12

	// TagSize is the GCM authentication tag length in bytes (128 bits).
	TagSize = 16

	// MaxPlaintextSize is the maximum plaintext length in bytes accepted by
	// Encrypt. Credentials (OAuth tokens, API keys) are small; the ceiling
	// keeps a misbehaving caller from feeding arbitrarily large payloads
	// through the cipher.
	MaxPlaintextSize = 65536
)
