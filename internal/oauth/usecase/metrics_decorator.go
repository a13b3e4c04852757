package usecase

import (
	"context"
	"time"

	credentialsDomain "github.com/allisson/credvault/internal/credentials/domain"
	"github.com/allisson/credvault/internal/metrics"
)

// oauthUseCaseWithMetrics decorates OAuthUseCase with metrics instrumentation.
type oauthUseCaseWithMetrics struct {
	next    OAuthUseCase
	metrics metrics.BusinessMetrics
}

// NewOAuthUseCaseWithMetrics wraps an OAuthUseCase with metrics recording.
func NewOAuthUseCaseWithMetrics(useCase OAuthUseCase, m metrics.BusinessMetrics) OAuthUseCase {
	return &oauthUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Start records metrics for flow start operations.
func (o *oauthUseCaseWithMetrics) Start(ctx context.Context, provider string) (string, error) {
	start := time.Now()
	authURL, err := o.next.Start(ctx, provider)

	status := "success"
	if err != nil {
		status = "error"
	}

	o.metrics.RecordOperation(ctx, "oauth", "oauth_start", status)
	o.metrics.RecordDuration(ctx, "oauth", "oauth_start", time.Since(start), status)

	return authURL, err
}

// Callback records metrics for callback operations.
func (o *oauthUseCaseWithMetrics) Callback(
	ctx context.Context,
	provider, state, code string,
) (*credentialsDomain.Credential, error) {
	start := time.Now()
	credential, err := o.next.Callback(ctx, provider, state, code)

	status := "success"
	if err != nil {
		status = "error"
	}

	o.metrics.RecordOperation(ctx, "oauth", "oauth_callback", status)
	o.metrics.RecordDuration(ctx, "oauth", "oauth_callback", time.Since(start), status)

	return credential, err
}
