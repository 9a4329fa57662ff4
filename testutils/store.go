// Package testutils provides shared testing utilities across the application.
package testutils

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/matwasilewski/data-vortex/internal/domain"
)

// MockStore is a mock implementation of the crawler store interface.
type MockStore struct {
	mock.Mock
}

// ExistingIDs mocks the bulk existence lookup.
func (m *MockStore) ExistingIDs(ctx context.Context, ids []string) (map[string]bool, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	existing, ok := args.Get(0).(map[string]bool)
	if !ok {
		return nil, ErrInvalidResult
	}
	return existing, args.Error(1)
}

// SaveAll mocks the atomic batch write.
func (m *MockStore) SaveAll(ctx context.Context, listings []*domain.Listing) error {
	args := m.Called(ctx, listings)
	return args.Error(0)
}
