// Package testutils provides shared testing utilities across the application.
package testutils

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/matwasilewski/data-vortex/internal/fetcher"
)

// MockFetcher is a mock implementation of the fetcher client interface.
type MockFetcher struct {
	mock.Mock
}

// Fetch mocks the fetch method.
func (m *MockFetcher) Fetch(ctx context.Context, spec fetcher.RequestSpec) (*fetcher.Response, error) {
	args := m.Called(ctx, spec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	resp, ok := args.Get(0).(*fetcher.Response)
	if !ok {
		return nil, ErrInvalidResult
	}
	return resp, args.Error(1)
}
