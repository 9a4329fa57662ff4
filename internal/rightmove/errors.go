package rightmove

import (
	"errors"
	"fmt"

	"github.com/matwasilewski/data-vortex/internal/domain"
)

// Error types for the rightmove package.
var (
	// ErrMissingIdentifier is returned when a detail page carries no
	// canonical listing id in its metadata.
	ErrMissingIdentifier = errors.New("listing identifier not found in page metadata")

	// ErrPriceNotFound is returned when a detail page contains no
	// price-bearing fragment.
	ErrPriceNotFound = errors.New("no price found on detail page")

	// ErrMissingAddress is returned when a detail page carries no address
	// heading. Detail pages are expected to always have a full address.
	ErrMissingAddress = errors.New("no address found on detail page")
)

// AmbiguousPriceError is returned when a detail page advertises more than
// one distinct amount for the same billing period.
type AmbiguousPriceError struct {
	Period  domain.Period
	Amounts []int
}

// Error returns the error message.
func (e *AmbiguousPriceError) Error() string {
	return fmt.Sprintf("ambiguous price: %d distinct amounts for period %s", len(e.Amounts), e.Period)
}
