package usecase

import (
	"context"
	"time"

	credentialsDomain "github.com/allisson/credvault/internal/credentials/domain"
	"github.com/allisson/credvault/internal/metrics"
)

// credentialUseCaseWithMetrics decorates CredentialUseCase with metrics instrumentation.
type credentialUseCaseWithMetrics struct {
	next    CredentialUseCase
	metrics metrics.BusinessMetrics
}

// NewCredentialUseCaseWithMetrics wraps a CredentialUseCase with metrics recording.
func NewCredentialUseCaseWithMetrics(
	useCase CredentialUseCase,
	m metrics.BusinessMetrics,
) CredentialUseCase {
	return &credentialUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Store records metrics for credential store operations.
func (c *credentialUseCaseWithMetrics) Store(
	ctx context.Context,
	provider string,
	credentialType credentialsDomain.Type,
	plaintext string,
	key string,
) (*credentialsDomain.Credential, error) {
	start := time.Now()
	credential, err := c.next.Store(ctx, provider, credentialType, plaintext, key)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "credentials", "credential_store", status)
	c.metrics.RecordDuration(ctx, "credentials", "credential_store", time.Since(start), status)

	return credential, err
}

// StoreJSON records metrics for JSON credential store operations.
func (c *credentialUseCaseWithMetrics) StoreJSON(
	ctx context.Context,
	provider string,
	credentialType credentialsDomain.Type,
	value any,
	key string,
) (*credentialsDomain.Credential, error) {
	start := time.Now()
	credential, err := c.next.StoreJSON(ctx, provider, credentialType, value, key)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "credentials", "credential_store_json", status)
	c.metrics.RecordDuration(ctx, "credentials", "credential_store_json", time.Since(start), status)

	return credential, err
}

// Reveal records metrics for credential reveal operations.
func (c *credentialUseCaseWithMetrics) Reveal(
	ctx context.Context,
	provider string,
	credentialType credentialsDomain.Type,
	key string,
) (string, error) {
	start := time.Now()
	plaintext, err := c.next.Reveal(ctx, provider, credentialType, key)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "credentials", "credential_reveal", status)
	c.metrics.RecordDuration(ctx, "credentials", "credential_reveal", time.Since(start), status)

	return plaintext, err
}

// RevealJSON records metrics for JSON credential reveal operations.
func (c *credentialUseCaseWithMetrics) RevealJSON(
	ctx context.Context,
	provider string,
	credentialType credentialsDomain.Type,
	key string,
) (any, error) {
	start := time.Now()
	value, err := c.next.RevealJSON(ctx, provider, credentialType, key)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "credentials", "credential_reveal_json", status)
	c.metrics.RecordDuration(ctx, "credentials", "credential_reveal_json", time.Since(start), status)

	return value, err
}

// List records metrics for credential list operations.
func (c *credentialUseCaseWithMetrics) List(
	ctx context.Context,
	offset, limit int,
) ([]*credentialsDomain.Credential, error) {
	start := time.Now()
	credentials, err := c.next.List(ctx, offset, limit)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "credentials", "credential_list", status)
	c.metrics.RecordDuration(ctx, "credentials", "credential_list", time.Since(start), status)

	return credentials, err
}

// Delete records metrics for credential delete operations.
func (c *credentialUseCaseWithMetrics) Delete(
	ctx context.Context,
	provider string,
	credentialType credentialsDomain.Type,
) error {
	start := time.Now()
	err := c.next.Delete(ctx, provider, credentialType)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "credentials", "credential_delete", status)
	c.metrics.RecordDuration(ctx, "credentials", "credential_delete", time.Since(start), status)

	return err
}
