// Package domain defines the OAuth provider configuration model used for
// capturing third-party tokens through the authorization code flow.
package domain

import (
	"encoding/json"
	"fmt"

	"golang.org/x/oauth2"

	apperrors "github.com/allisson/credvault/internal/errors"
)

// Provider describes one configured OAuth provider.
type Provider struct {
	// Name identifies the provider and doubles as the credential provider
	// slug (e.g., "github", "google").
	Name string `json:"name"`
	// ClientID is the OAuth client identifier issued by the provider.
	ClientID string `json:"client_id"`
	// ClientSecret is the OAuth client secret issued by the provider.
	ClientSecret string `json:"client_secret"`
	// AuthURL is the provider's authorization endpoint.
	AuthURL string `json:"auth_url"`
	// TokenURL is the provider's token endpoint.
	TokenURL string `json:"token_url"`
	// Scopes lists the access scopes requested during authorization.
	Scopes []string `json:"scopes"`
}

// OAuth2Config builds the oauth2 configuration for this provider. The
// redirect URL is derived from the externally reachable base URL and the
// provider name.
func (p *Provider) OAuth2Config(redirectBaseURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     p.ClientID,
		ClientSecret: p.ClientSecret,
		Scopes:       p.Scopes,
		RedirectURL:  fmt.Sprintf("%s/v1/oauth/%s/callback", redirectBaseURL, p.Name),
		Endpoint: oauth2.Endpoint{
			AuthURL:  p.AuthURL,
			TokenURL: p.TokenURL,
		},
	}
}

// Validate checks that the provider configuration is complete.
func (p *Provider) Validate() error {
	if p.Name == "" || p.ClientID == "" || p.ClientSecret == "" ||
		p.AuthURL == "" || p.TokenURL == "" {
		return apperrors.Wrap(
			apperrors.ErrMisconfigured,
			fmt.Sprintf("oauth provider %q is missing required fields", p.Name),
		)
	}
	return nil
}

// Registry holds the configured OAuth providers indexed by name.
type Registry struct {
	providers map[string]*Provider
}

// ParseRegistry parses the OAUTH_PROVIDERS JSON document into a registry.
// An empty document yields an empty registry: the OAuth capture endpoints
// stay mounted but reject every provider.
func ParseRegistry(raw string) (*Registry, error) {
	registry := &Registry{providers: make(map[string]*Provider)}
	if raw == "" {
		return registry, nil
	}

	var providers []*Provider
	if err := json.Unmarshal([]byte(raw), &providers); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrMisconfigured, "invalid oauth providers configuration")
	}

	for _, provider := range providers {
		if err := provider.Validate(); err != nil {
			return nil, err
		}
		if _, exists := registry.providers[provider.Name]; exists {
			return nil, apperrors.Wrap(
				apperrors.ErrMisconfigured,
				fmt.Sprintf("duplicate oauth provider %q", provider.Name),
			)
		}
		registry.providers[provider.Name] = provider
	}

	return registry, nil
}

// Get returns the provider with the given name.
func (r *Registry) Get(name string) (*Provider, bool) {
	provider, ok := r.providers[name]
	return provider, ok
}

// Names returns the configured provider names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	return names
}
