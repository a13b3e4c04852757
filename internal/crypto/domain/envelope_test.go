package domain

import (
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validEnvelope builds an envelope whose fields are well-formed base64 with
// correct decoded lengths. The content is not a real ciphertext; Validate
// never performs cryptographic checks.
func validEnvelope() *Envelope {
	return &Envelope{
		Ciphertext: base64.StdEncoding.EncodeToString([]byte("some ciphertext bytes")),
		IV:         base64.StdEncoding.EncodeToString(make([]byte, NonceSize)),
		Tag:        base64.StdEncoding.EncodeToString(make([]byte, TagSize)),
	}
}

func TestEnvelope_Validate(t *testing.T) {
	t.Run("valid envelope", func(t *testing.T) {
		assert.NoError(t, validEnvelope().Validate())
	})

	t.Run("empty ciphertext is valid base64", func(t *testing.T) {
		envelope := validEnvelope()
		envelope.Ciphertext = ""
		assert.NoError(t, envelope.Validate())
	})

	t.Run("iv with invalid base64", func(t *testing.T) {
		envelope := validEnvelope()
		envelope.IV = "not-valid-base64!!!"

		err := envelope.Validate()
		require.Error(t, err)

		var b64Err *InvalidBase64Error
		require.ErrorAs(t, err, &b64Err)
		assert.Equal(t, "iv", b64Err.Field)
	})

	t.Run("iv with wrong decoded length", func(t *testing.T) {
		envelope := validEnvelope()
		envelope.IV = base64.StdEncoding.EncodeToString(make([]byte, 8))

		err := envelope.Validate()
		require.Error(t, err)

		var ivErr *InvalidIVLengthError
		require.ErrorAs(t, err, &ivErr)
		assert.Equal(t, NonceSize, ivErr.Expected)
		assert.Equal(t, 8, ivErr.Actual)
	})

	t.Run("tag with invalid base64", func(t *testing.T) {
		envelope := validEnvelope()
		envelope.Tag = "%%%"

		err := envelope.Validate()
		require.Error(t, err)

		var b64Err *InvalidBase64Error
		require.ErrorAs(t, err, &b64Err)
		assert.Equal(t, "tag", b64Err.Field)
	})

	t.Run("tag with wrong decoded length", func(t *testing.T) {
		envelope := validEnvelope()
		envelope.Tag = base64.StdEncoding.EncodeToString(make([]byte, 24))

		err := envelope.Validate()
		require.Error(t, err)

		var tagErr *InvalidAuthTagLengthError
		require.ErrorAs(t, err, &tagErr)
		assert.Equal(t, TagSize, tagErr.Expected)
		assert.Equal(t, 24, tagErr.Actual)
	})

	t.Run("ciphertext with invalid base64", func(t *testing.T) {
		envelope := validEnvelope()
		envelope.Ciphertext = "@@invalid@@"

		err := envelope.Validate()
		require.Error(t, err)

		var b64Err *InvalidBase64Error
		require.ErrorAs(t, err, &b64Err)
		assert.Equal(t, "ciphertext", b64Err.Field)
	})

	t.Run("iv is checked before tag and ciphertext", func(t *testing.T) {
		envelope := &Envelope{
			Ciphertext: "@@invalid@@",
			IV:         base64.StdEncoding.EncodeToString(make([]byte, 8)),
			Tag:        "%%%",
		}

		err := envelope.Validate()
		require.Error(t, err)

		var ivErr *InvalidIVLengthError
		assert.True(t, errors.As(err, &ivErr))
	})

	t.Run("tag is checked before ciphertext", func(t *testing.T) {
		envelope := validEnvelope()
		envelope.Ciphertext = "@@invalid@@"
		envelope.Tag = base64.StdEncoding.EncodeToString(make([]byte, 1))

		err := envelope.Validate()
		require.Error(t, err)

		var tagErr *InvalidAuthTagLengthError
		assert.True(t, errors.As(err, &tagErr))
	})
}
