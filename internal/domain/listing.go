package domain

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// zeroSentinelID is the id the source site assigns to empty listing slots.
const zeroSentinelID = "0"

// Listing is the validated record for one advertised rental property.
// A Listing is constructed once per extraction or per store read and is
// immutable afterwards; updates produce a new record.
type Listing struct {
	// ID is the externally assigned identifier of the physical listing.
	ID string `json:"id"`
	// ImageURL is the absolute URL of the primary photo, if any.
	ImageURL string `json:"image_url,omitempty"`
	// Description is the free-text listing summary, possibly empty.
	Description string `json:"description"`
	// Price is the parsed listing price.
	Price Money `json:"price"`
	// AddedDate is the calendar date the listing was first published.
	AddedDate time.Time `json:"added_date"`
	// Address is the free-text address line, if any.
	Address string `json:"address,omitempty"`
	// Postcode is the UK postcode derived from the address, if any.
	Postcode string `json:"postcode,omitempty"`
	// CreatedDate is the timestamp of first local observation, assigned at
	// construction time and never recomputed.
	CreatedDate time.Time `json:"created_date"`
}

// RawListing carries the unvalidated fields scraped from one listing
// fragment. Price and AddedDate accept either the free-text form or an
// already-structured value; a structured value passes through without
// re-parsing.
type RawListing struct {
	ID            string
	ImageURL      string
	Description   string
	PriceText     string
	Price         *Money
	AddedDateText string
	AddedDate     *time.Time
	Address       string
	Postcode      string
	CreatedDate   time.Time
}

// NewListing runs the field-level parsers over raw and assembles a validated
// Listing. It fails with a *ValidationError carrying the originating field
// name; callers doing bulk extraction catch this per fragment and continue.
func NewListing(raw RawListing) (*Listing, error) {
	if raw.ID == "" || raw.ID == zeroSentinelID {
		return nil, newValidationError("id", ErrZeroSentinelID)
	}

	price, err := resolvePrice(raw)
	if err != nil {
		return nil, newValidationError("price", err)
	}

	addedDate, err := resolveAddedDate(raw)
	if err != nil {
		return nil, newValidationError("added_date", err)
	}

	if raw.ImageURL != "" {
		if err := validateImageURL(raw.ImageURL); err != nil {
			return nil, newValidationError("image_url", err)
		}
	}

	// Cross-field invariant: a mismatching postcode is a validation failure,
	// not something to correct.
	if raw.Address != "" && raw.Postcode != "" && !strings.Contains(raw.Address, raw.Postcode) {
		return nil, newValidationError("postcode", ErrPostcodeMismatch)
	}

	createdDate := raw.CreatedDate
	if createdDate.IsZero() {
		createdDate = time.Now()
	}

	return &Listing{
		ID:          raw.ID,
		ImageURL:    raw.ImageURL,
		Description: raw.Description,
		Price:       price,
		AddedDate:   addedDate,
		Address:     raw.Address,
		Postcode:    raw.Postcode,
		CreatedDate: createdDate,
	}, nil
}

// resolvePrice returns the structured price when present, otherwise parses
// the free-text fragment.
func resolvePrice(raw RawListing) (Money, error) {
	if raw.Price != nil {
		return *raw.Price, nil
	}
	return ParsePrice(raw.PriceText)
}

// resolveAddedDate returns the structured date truncated to its calendar
// component when present, otherwise parses the free-text fragment.
func resolveAddedDate(raw RawListing) (time.Time, error) {
	if raw.AddedDate != nil {
		return DateOf(*raw.AddedDate), nil
	}
	return ParseDate(raw.AddedDateText)
}

// validateImageURL checks that the image reference is a well-formed absolute
// URL.
func validateImageURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidImageURL, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("%w: %q is not absolute", ErrInvalidImageURL, rawURL)
	}
	return nil
}
