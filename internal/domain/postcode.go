package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// postcodeRegex implements the UK postcode grammar: an outward code of one or
// two letters followed by a digit and an optional alphanumeric, an optional
// space, and an inward code of a digit plus two letters. "GIR 0AA" is the
// historical special case.
var postcodeRegex = regexp.MustCompile(`(?i)\b(?:[A-Z]{1,2}\d[A-Z\d]? ?\d[A-Z]{2}|GIR ?0AA)\b`)

// ExtractPostcode derives a UK postcode from a free-text address line. The
// matched substring is returned upper-cased. Callers decide whether a missing
// postcode is fatal: it is on a detail page, it is not in bulk search results
// where address data is often partial.
func ExtractPostcode(address string) (string, error) {
	match := postcodeRegex.FindString(address)
	if match == "" {
		return "", fmt.Errorf("%w in %q", ErrPostcodeNotFound, address)
	}
	return strings.ToUpper(match), nil
}
