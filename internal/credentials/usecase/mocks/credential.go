// Package mocks provides mock implementations for testing credential use cases
// and their consumers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	credentialsDomain "github.com/allisson/credvault/internal/credentials/domain"
)

// MockCredentialRepository is a mock implementation of CredentialRepository for testing.
type MockCredentialRepository struct {
	mock.Mock
}

// Upsert mocks the Upsert method of CredentialRepository.
func (m *MockCredentialRepository) Upsert(
	ctx context.Context,
	credential *credentialsDomain.Credential,
) error {
	args := m.Called(ctx, credential)
	return args.Error(0)
}

// GetByProviderAndType mocks the GetByProviderAndType method of CredentialRepository.
func (m *MockCredentialRepository) GetByProviderAndType(
	ctx context.Context,
	provider string,
	credentialType credentialsDomain.Type,
) (*credentialsDomain.Credential, error) {
	args := m.Called(ctx, provider, credentialType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credentialsDomain.Credential), args.Error(1)
}

// List mocks the List method of CredentialRepository.
func (m *MockCredentialRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*credentialsDomain.Credential, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*credentialsDomain.Credential), args.Error(1)
}

// Delete mocks the Delete method of CredentialRepository.
func (m *MockCredentialRepository) Delete(
	ctx context.Context,
	provider string,
	credentialType credentialsDomain.Type,
) error {
	args := m.Called(ctx, provider, credentialType)
	return args.Error(0)
}

// MockCredentialUseCase is a mock implementation of CredentialUseCase for testing.
type MockCredentialUseCase struct {
	mock.Mock
}

// Store mocks the Store method of CredentialUseCase.
func (m *MockCredentialUseCase) Store(
	ctx context.Context,
	provider string,
	credentialType credentialsDomain.Type,
	plaintext string,
	key string,
) (*credentialsDomain.Credential, error) {
	args := m.Called(ctx, provider, credentialType, plaintext, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credentialsDomain.Credential), args.Error(1)
}

// StoreJSON mocks the StoreJSON method of CredentialUseCase.
func (m *MockCredentialUseCase) StoreJSON(
	ctx context.Context,
	provider string,
	credentialType credentialsDomain.Type,
	value any,
	key string,
) (*credentialsDomain.Credential, error) {
	args := m.Called(ctx, provider, credentialType, value, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credentialsDomain.Credential), args.Error(1)
}

// Reveal mocks the Reveal method of CredentialUseCase.
func (m *MockCredentialUseCase) Reveal(
	ctx context.Context,
	provider string,
	credentialType credentialsDomain.Type,
	key string,
) (string, error) {
	args := m.Called(ctx, provider, credentialType, key)
	return args.String(0), args.Error(1)
}

// RevealJSON mocks the RevealJSON method of CredentialUseCase.
func (m *MockCredentialUseCase) RevealJSON(
	ctx context.Context,
	provider string,
	credentialType credentialsDomain.Type,
	key string,
) (any, error) {
	args := m.Called(ctx, provider, credentialType, key)
	return args.Get(0), args.Error(1)
}

// List mocks the List method of CredentialUseCase.
func (m *MockCredentialUseCase) List(
	ctx context.Context,
	offset, limit int,
) ([]*credentialsDomain.Credential, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*credentialsDomain.Credential), args.Error(1)
}

// Delete mocks the Delete method of CredentialUseCase.
func (m *MockCredentialUseCase) Delete(
	ctx context.Context,
	provider string,
	credentialType credentialsDomain.Type,
) error {
	args := m.Called(ctx, provider, credentialType)
	return args.Error(0)
}
