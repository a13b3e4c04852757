// Package usecase implements the OAuth authorization code flow used to
// capture third-party tokens and store them as encrypted credentials.
package usecase

import (
	"context"

	"golang.org/x/oauth2"

	credentialsDomain "github.com/allisson/credvault/internal/credentials/domain"
	oauthDomain "github.com/allisson/credvault/internal/oauth/domain"
)

// OAuthUseCase defines the business logic for the OAuth capture flow.
type OAuthUseCase interface {
	// Start begins the authorization flow for a configured provider and
	// returns the URL the user must visit. The generated state value is
	// tracked until the callback or until it expires.
	Start(ctx context.Context, provider string) (authURL string, err error)

	// Callback completes the flow: it validates the state, exchanges the
	// authorization code for a token, and stores the token as an encrypted
	// oauth_token credential under the provider's name.
	Callback(ctx context.Context, provider, state, code string) (*credentialsDomain.Credential, error)
}

// Exchanger performs the code-for-token exchange with the provider. It exists
// as a seam so the network call can be substituted in tests.
type Exchanger interface {
	Exchange(ctx context.Context, provider *oauthDomain.Provider, code string) (*oauth2.Token, error)
}
