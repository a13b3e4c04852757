package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"golang.org/x/oauth2"

	credentialsDomain "github.com/allisson/credvault/internal/credentials/domain"
	credentialsUseCase "github.com/allisson/credvault/internal/credentials/usecase"
	apperrors "github.com/allisson/credvault/internal/errors"
	oauthDomain "github.com/allisson/credvault/internal/oauth/domain"
)

// stateSize is the number of random bytes in a state value (hex-encoded on the wire).
const stateSize = 16

// oauthUseCase implements the OAuthUseCase interface.
type oauthUseCase struct {
	registry          *oauthDomain.Registry
	states            StateStore
	exchanger         Exchanger
	credentialUseCase credentialsUseCase.CredentialUseCase
	redirectBaseURL   string
}

// NewOAuthUseCase creates an OAuth use case instance with the provided dependencies.
func NewOAuthUseCase(
	registry *oauthDomain.Registry,
	states StateStore,
	exchanger Exchanger,
	credentialUseCase credentialsUseCase.CredentialUseCase,
	redirectBaseURL string,
) OAuthUseCase {
	return &oauthUseCase{
		registry:          registry,
		states:            states,
		exchanger:         exchanger,
		credentialUseCase: credentialUseCase,
		redirectBaseURL:   redirectBaseURL,
	}
}

// Start begins the authorization flow and returns the provider authorization URL.
func (o *oauthUseCase) Start(ctx context.Context, provider string) (string, error) {
	p, ok := o.registry.Get(provider)
	if !ok {
		return "", oauthDomain.ErrProviderNotFound
	}

	stateBytes := make([]byte, stateSize)
	if _, err := rand.Read(stateBytes); err != nil {
		return "", apperrors.Wrap(err, "failed to generate oauth state")
	}
	state := hex.EncodeToString(stateBytes)

	o.states.Put(state, provider)

	config := p.OAuth2Config(o.redirectBaseURL)
	return config.AuthCodeURL(state, oauth2.AccessTypeOffline), nil
}

// Callback validates the state, exchanges the code, and stores the token.
func (o *oauthUseCase) Callback(
	ctx context.Context,
	provider, state, code string,
) (*credentialsDomain.Credential, error) {
	p, ok := o.registry.Get(provider)
	if !ok {
		return nil, oauthDomain.ErrProviderNotFound
	}

	issuedFor, ok := o.states.Consume(state)
	if !ok || issuedFor != provider {
		return nil, oauthDomain.ErrInvalidState
	}

	token, err := o.exchanger.Exchange(ctx, p, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", oauthDomain.ErrExchangeFailed, err)
	}

	// The full token payload (access token, refresh token, expiry) is stored
	// as encrypted JSON under the process-wide key.
	return o.credentialUseCase.StoreJSON(
		ctx, provider, credentialsDomain.TypeOAuthToken, token, "",
	)
}

// configExchanger is the production Exchanger backed by the oauth2 package.
type configExchanger struct {
	redirectBaseURL string
}

// NewExchanger creates the production code-for-token exchanger.
func NewExchanger(redirectBaseURL string) Exchanger {
	return &configExchanger{redirectBaseURL: redirectBaseURL}
}

// Exchange trades an authorization code for a token at the provider's token endpoint.
func (e *configExchanger) Exchange(
	ctx context.Context,
	provider *oauthDomain.Provider,
	code string,
) (*oauth2.Token, error) {
	return provider.OAuth2Config(e.redirectBaseURL).Exchange(ctx, code)
}
