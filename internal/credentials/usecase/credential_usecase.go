package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	credentialsDomain "github.com/allisson/credvault/internal/credentials/domain"
	cryptoDomain "github.com/allisson/credvault/internal/crypto/domain"
	cryptoService "github.com/allisson/credvault/internal/crypto/service"
	"github.com/allisson/credvault/internal/database"
	apperrors "github.com/allisson/credvault/internal/errors"
)

// credentialUseCase implements the CredentialUseCase interface.
type credentialUseCase struct {
	txManager      database.TxManager
	credentialRepo CredentialRepository
	encryptor      cryptoService.Encryptor
}

// NewCredentialUseCase creates a new credential use case instance with the
// provided dependencies.
func NewCredentialUseCase(
	txManager database.TxManager,
	credentialRepo CredentialRepository,
	encryptor cryptoService.Encryptor,
) CredentialUseCase {
	return &credentialUseCase{
		txManager:      txManager,
		credentialRepo: credentialRepo,
		encryptor:      encryptor,
	}
}

// Store encrypts a plaintext secret and upserts it under (provider, type).
func (c *credentialUseCase) Store(
	ctx context.Context,
	provider string,
	credentialType credentialsDomain.Type,
	plaintext string,
	key string,
) (*credentialsDomain.Credential, error) {
	if !credentialType.IsValid() {
		return nil, credentialsDomain.ErrUnsupportedCredentialType
	}

	envelope, err := c.encryptor.Encrypt(plaintext, key)
	if err != nil {
		return nil, err
	}

	return c.persist(ctx, provider, credentialType, envelope)
}

// StoreJSON serializes a value to JSON, encrypts it, and upserts it under
// (provider, type).
func (c *credentialUseCase) StoreJSON(
	ctx context.Context,
	provider string,
	credentialType credentialsDomain.Type,
	value any,
	key string,
) (*credentialsDomain.Credential, error) {
	if !credentialType.IsValid() {
		return nil, credentialsDomain.ErrUnsupportedCredentialType
	}

	envelope, err := c.encryptor.EncryptJSON(value, key)
	if err != nil {
		return nil, err
	}

	return c.persist(ctx, provider, credentialType, envelope)
}

// persist upserts the envelope under (provider, type) inside a transaction.
// An existing credential keeps its ID and CreatedAt; only the envelope and
// UpdatedAt change.
func (c *credentialUseCase) persist(
	ctx context.Context,
	provider string,
	credentialType credentialsDomain.Type,
	envelope *cryptoDomain.Envelope,
) (*credentialsDomain.Credential, error) {
	now := time.Now().UTC()

	credential := &credentialsDomain.Credential{
		ID:        uuid.Must(uuid.NewV7()),
		Provider:  provider,
		Type:      credentialType,
		Envelope:  *envelope,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := c.txManager.WithTx(ctx, func(txCtx context.Context) error {
		existing, err := c.credentialRepo.GetByProviderAndType(txCtx, provider, credentialType)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		if existing != nil {
			credential.ID = existing.ID
			credential.CreatedAt = existing.CreatedAt
		}

		return c.credentialRepo.Upsert(txCtx, credential)
	})
	if err != nil {
		return nil, err
	}

	return credential, nil
}

// Reveal loads a credential and decrypts its payload.
func (c *credentialUseCase) Reveal(
	ctx context.Context,
	provider string,
	credentialType credentialsDomain.Type,
	key string,
) (string, error) {
	credential, err := c.credentialRepo.GetByProviderAndType(ctx, provider, credentialType)
	if err != nil {
		return "", err
	}

	return c.encryptor.Decrypt(&credential.Envelope, key)
}

// RevealJSON loads a credential, decrypts its payload, and parses it as JSON.
func (c *credentialUseCase) RevealJSON(
	ctx context.Context,
	provider string,
	credentialType credentialsDomain.Type,
	key string,
) (any, error) {
	credential, err := c.credentialRepo.GetByProviderAndType(ctx, provider, credentialType)
	if err != nil {
		return nil, err
	}

	return c.encryptor.DecryptJSON(&credential.Envelope, key)
}

// List retrieves credential metadata ordered by provider and type.
func (c *credentialUseCase) List(
	ctx context.Context,
	offset, limit int,
) ([]*credentialsDomain.Credential, error) {
	return c.credentialRepo.List(ctx, offset, limit)
}

// Delete removes a credential by provider and type.
func (c *credentialUseCase) Delete(
	ctx context.Context,
	provider string,
	credentialType credentialsDomain.Type,
) error {
	return c.credentialRepo.Delete(ctx, provider, credentialType)
}
