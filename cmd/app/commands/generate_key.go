package commands

import (
	"fmt"
	"io"

	cryptoService "github.com/allisson/credvault/internal/crypto/service"
)

// RunGenerateKey generates a fresh base64-encoded 256-bit encryption key and
// prints it as an environment variable assignment ready for a .env file.
func RunGenerateKey(encryptor cryptoService.Encryptor, writer io.Writer) error {
	key, err := encryptor.GenerateKey()
	if err != nil {
		return fmt.Errorf("failed to generate encryption key: %w", err)
	}

	fmt.Fprintln(writer, "# Encryption Key Configuration")
	fmt.Fprintln(writer, "# Copy this environment variable to your .env file or secrets manager")
	fmt.Fprintln(writer)
	fmt.Fprintf(writer, "%s=\"%s\"\n", cryptoService.EncryptionKeyEnvVar, key)

	return nil
}
