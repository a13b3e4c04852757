// Package mocks provides mock implementations for testing encryptor consumers.
package mocks

import (
	"github.com/stretchr/testify/mock"

	cryptoDomain "github.com/allisson/credvault/internal/crypto/domain"
)

// MockEncryptor is a mock implementation of service.Encryptor for testing.
type MockEncryptor struct {
	mock.Mock
}

// Encrypt mocks the Encrypt method of Encryptor.
func (m *MockEncryptor) Encrypt(plaintext, key string) (*cryptoDomain.Envelope, error) {
	args := m.Called(plaintext, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cryptoDomain.Envelope), args.Error(1)
}

// Decrypt mocks the Decrypt method of Encryptor.
func (m *MockEncryptor) Decrypt(envelope *cryptoDomain.Envelope, key string) (string, error) {
	args := m.Called(envelope, key)
	return args.String(0), args.Error(1)
}

// EncryptJSON mocks the EncryptJSON method of Encryptor.
func (m *MockEncryptor) EncryptJSON(value any, key string) (*cryptoDomain.Envelope, error) {
	args := m.Called(value, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cryptoDomain.Envelope), args.Error(1)
}

// DecryptJSON mocks the DecryptJSON method of Encryptor.
func (m *MockEncryptor) DecryptJSON(envelope *cryptoDomain.Envelope, key string) (any, error) {
	args := m.Called(envelope, key)
	return args.Get(0), args.Error(1)
}

// GenerateKey mocks the GenerateKey method of Encryptor.
func (m *MockEncryptor) GenerateKey() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}
