package domain

import (
	"errors"
	"fmt"
)

// Error types for the domain package.
var (
	// ErrInvalidPrice is returned when no integer amount can be recovered
	// from a price fragment.
	ErrInvalidPrice = errors.New("invalid price")

	// ErrInvalidDate is returned when a date fragment matches no known format.
	ErrInvalidDate = errors.New("invalid date")

	// ErrPostcodeNotFound is returned when an address contains no UK postcode.
	ErrPostcodeNotFound = errors.New("postcode not found")

	// ErrZeroSentinelID is returned when a listing carries the placeholder id
	// the source site uses for empty listing slots.
	ErrZeroSentinelID = errors.New("listing id is the zero sentinel")

	// ErrPostcodeMismatch is returned when a postcode is not a substring of
	// the listing address.
	ErrPostcodeMismatch = errors.New("address must contain postcode")

	// ErrInvalidImageURL is returned when an image reference is not a
	// well-formed absolute URL.
	ErrInvalidImageURL = errors.New("invalid image URL")
)

// ValidationError reports a construction-time failure on a single listing
// field. It carries the originating field name so callers can log which part
// of a fragment was malformed.
type ValidationError struct {
	Field string
	Err   error
}

// Error returns the error message.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on field %q: %v", e.Field, e.Err)
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// newValidationError wraps err with the field it originated from.
func newValidationError(field string, err error) *ValidationError {
	return &ValidationError{Field: field, Err: err}
}
