// Package mocks provides mock implementations for testing database consumers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockTxManager is a mock implementation of database.TxManager for testing.
type MockTxManager struct {
	mock.Mock
}

// WithTx mocks the WithTx method. When configured with RunFn (via Run), the
// transactional function is executed against the same context so repository
// expectations inside the closure still fire.
func (m *MockTxManager) WithTx(ctx context.Context, fn func(context.Context) error) error {
	args := m.Called(ctx, fn)
	return args.Error(0)
}

// PassthroughTxManager runs the transactional function directly without a
// database, for tests that only care about the business logic inside.
type PassthroughTxManager struct{}

// WithTx executes fn with the given context.
func (p *PassthroughTxManager) WithTx(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}
