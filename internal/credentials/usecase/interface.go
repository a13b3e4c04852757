// Package usecase defines the interfaces and implementations for credential
// management use cases. Use cases orchestrate operations between the encryptor
// and the repositories to store, reveal, list, and delete encrypted
// third-party credentials.
package usecase

import (
	"context"

	credentialsDomain "github.com/allisson/credvault/internal/credentials/domain"
)

// CredentialRepository defines the interface for credential persistence operations.
type CredentialRepository interface {
	Upsert(ctx context.Context, credential *credentialsDomain.Credential) error
	GetByProviderAndType(
		ctx context.Context,
		provider string,
		credentialType credentialsDomain.Type,
	) (*credentialsDomain.Credential, error)
	List(ctx context.Context, offset, limit int) ([]*credentialsDomain.Credential, error)
	Delete(ctx context.Context, provider string, credentialType credentialsDomain.Type) error
}

// CredentialUseCase defines the interface for credential management business logic.
//
// Store and StoreJSON encrypt before persisting; Reveal and RevealJSON decrypt
// after loading. The key argument on each method is an optional explicit
// base64-encoded key; pass the empty string to use the process-wide key.
type CredentialUseCase interface {
	// Store encrypts a plaintext secret and upserts it under (provider, type).
	Store(
		ctx context.Context,
		provider string,
		credentialType credentialsDomain.Type,
		plaintext string,
		key string,
	) (*credentialsDomain.Credential, error)

	// StoreJSON serializes a value to JSON, encrypts it, and upserts it under
	// (provider, type).
	StoreJSON(
		ctx context.Context,
		provider string,
		credentialType credentialsDomain.Type,
		value any,
		key string,
	) (*credentialsDomain.Credential, error)

	// Reveal loads a credential and decrypts its payload.
	Reveal(
		ctx context.Context,
		provider string,
		credentialType credentialsDomain.Type,
		key string,
	) (string, error)

	// RevealJSON loads a credential, decrypts its payload, and parses it as JSON.
	RevealJSON(
		ctx context.Context,
		provider string,
		credentialType credentialsDomain.Type,
		key string,
	) (any, error)

	// List retrieves credential metadata ordered by provider and type. The
	// returned credentials keep their envelopes; no decryption happens here.
	List(ctx context.Context, offset, limit int) ([]*credentialsDomain.Credential, error)

	// Delete removes a credential by provider and type.
	Delete(ctx context.Context, provider string, credentialType credentialsDomain.Type) error
}
