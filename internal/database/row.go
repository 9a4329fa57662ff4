package database

import (
	"time"

	"github.com/matwasilewski/data-vortex/internal/domain"
)

// ListingRow is the persisted shape of a listing: the domain record with
// Money flattened into amount/currency/period columns. Conversion between
// the two shapes is lossless; an unknown currency or period is stored as the
// explicit "UNKNOWN" marker, never coerced to a default.
type ListingRow struct {
	PropertyID    string    `db:"property_id"`
	ImageURL      string    `db:"image_url"`
	Description   string    `db:"description"`
	PriceAmount   int       `db:"price_amount"`
	PriceCurrency string    `db:"price_currency"`
	PricePer      string    `db:"price_per"`
	AddedDate     time.Time `db:"added_date"`
	Address       string    `db:"address"`
	Postcode      string    `db:"postcode"`
	CreatedDate   time.Time `db:"created_date"`
}

// RowFromListing converts a domain listing to its persisted shape.
func RowFromListing(listing *domain.Listing) ListingRow {
	return ListingRow{
		PropertyID:    listing.ID,
		ImageURL:      listing.ImageURL,
		Description:   listing.Description,
		PriceAmount:   listing.Price.Amount,
		PriceCurrency: string(listing.Price.Currency),
		PricePer:      string(listing.Price.Period),
		AddedDate:     listing.AddedDate,
		Address:       listing.Address,
		Postcode:      listing.Postcode,
		CreatedDate:   listing.CreatedDate,
	}
}

// ToListing converts a persisted row back into a validated domain listing.
// The record invariants are re-checked on every store read; the stored
// CreatedDate is preserved, never recomputed.
func (r ListingRow) ToListing() (*domain.Listing, error) {
	price := domain.Money{
		Amount:   r.PriceAmount,
		Currency: domain.Currency(r.PriceCurrency),
		Period:   domain.Period(r.PricePer),
	}
	addedDate := r.AddedDate

	return domain.NewListing(domain.RawListing{
		ID:          r.PropertyID,
		ImageURL:    r.ImageURL,
		Description: r.Description,
		Price:       &price,
		AddedDate:   &addedDate,
		Address:     r.Address,
		Postcode:    r.Postcode,
		CreatedDate: r.CreatedDate,
	})
}
