package database

import (
	"context"
	"errors"

	"github.com/matwasilewski/data-vortex/internal/domain"
)

// ListingStore adapts the repository to domain-level listings, converting
// between the record and its persisted shape at the boundary.
type ListingStore struct {
	repo *ListingRepository
}

// NewListingStore creates a store over the given repository.
func NewListingStore(repo *ListingRepository) *ListingStore {
	return &ListingStore{repo: repo}
}

// Get retrieves one listing, or nil when absent.
func (s *ListingStore) Get(ctx context.Context, id string) (*domain.Listing, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return row.ToListing()
}

// ExistingIDs returns which of the given ids already have stored rows.
func (s *ListingStore) ExistingIDs(ctx context.Context, ids []string) (map[string]bool, error) {
	return s.repo.ExistingIDs(ctx, ids)
}

// Save upserts a single listing.
func (s *ListingStore) Save(ctx context.Context, listing *domain.Listing) error {
	return s.repo.Upsert(ctx, RowFromListing(listing))
}

// SaveAll upserts a batch of listings atomically.
func (s *ListingStore) SaveAll(ctx context.Context, listings []*domain.Listing) error {
	rows := make([]ListingRow, 0, len(listings))
	for _, listing := range listings {
		rows = append(rows, RowFromListing(listing))
	}
	return s.repo.BulkUpsert(ctx, rows)
}
