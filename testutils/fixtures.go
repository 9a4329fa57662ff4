// Package testutils provides shared testing utilities across the application.
package testutils

import (
	"time"

	"github.com/matwasilewski/data-vortex/internal/domain"
)

// NewTestListing returns a valid listing for the given property id, suitable
// as a baseline fixture. Fields can be adjusted by the caller afterwards.
func NewTestListing(id string) *domain.Listing {
	return &domain.Listing{
		ID:          id,
		ImageURL:    "https://media.example.com/" + id + "/main.jpg",
		Description: "Flat to rent in Islington",
		Price: domain.Money{
			Amount:   1127,
			Currency: domain.CurrencyGBP,
			Period:   domain.PerMonth,
		},
		AddedDate:   time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
		Address:     "Liverpool Road, London, N1 1AA",
		Postcode:    "N1 1AA",
		CreatedDate: time.Date(2024, 2, 11, 9, 30, 0, 0, time.UTC),
	}
}
