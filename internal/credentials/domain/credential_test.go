package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/credvault/internal/errors"
)

func TestType_IsValid(t *testing.T) {
	tests := []struct {
		value Type
		valid bool
	}{
		{TypeOAuthToken, true},
		{TypeAPIKey, true},
		{Type("password"), false},
		{Type(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.value), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.value.IsValid())
		})
	}
}

func TestErrors(t *testing.T) {
	assert.True(t, apperrors.Is(ErrCredentialNotFound, apperrors.ErrNotFound))
	assert.True(t, apperrors.Is(ErrUnsupportedCredentialType, apperrors.ErrInvalidInput))
}
