// Package mocks provides mock implementations for testing the OAuth flow.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"golang.org/x/oauth2"

	credentialsDomain "github.com/allisson/credvault/internal/credentials/domain"
	oauthDomain "github.com/allisson/credvault/internal/oauth/domain"
)

// MockOAuthUseCase is a mock implementation of OAuthUseCase for testing.
type MockOAuthUseCase struct {
	mock.Mock
}

// Start mocks the Start method of OAuthUseCase.
func (m *MockOAuthUseCase) Start(ctx context.Context, provider string) (string, error) {
	args := m.Called(ctx, provider)
	return args.String(0), args.Error(1)
}

// Callback mocks the Callback method of OAuthUseCase.
func (m *MockOAuthUseCase) Callback(
	ctx context.Context,
	provider, state, code string,
) (*credentialsDomain.Credential, error) {
	args := m.Called(ctx, provider, state, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credentialsDomain.Credential), args.Error(1)
}

// MockExchanger is a mock implementation of Exchanger for testing.
type MockExchanger struct {
	mock.Mock
}

// Exchange mocks the Exchange method of Exchanger.
func (m *MockExchanger) Exchange(
	ctx context.Context,
	provider *oauthDomain.Provider,
	code string,
) (*oauth2.Token, error) {
	args := m.Called(ctx, provider, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oauth2.Token), args.Error(1)
}
