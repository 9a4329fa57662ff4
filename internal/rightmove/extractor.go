package rightmove

import (
	"errors"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/matwasilewski/data-vortex/internal/domain"
	"github.com/matwasilewski/data-vortex/internal/logger"
)

// Selectors for the search-results page layout family. A changed layout is a
// hard extraction failure, not something to tolerate silently.
const (
	listingSelector     = "div.l-searchResult"
	descriptionSelector = "span[itemprop=description]"
	priceSelector       = "span.propertyCard-priceValue"
	addedDateSelector   = "span.propertyCard-branchSummary-addedOrReduced"
	addressSelector     = "address.propertyCard-address span"
)

// Extractor walks parsed Rightmove pages and assembles validated listings.
type Extractor struct {
	log logger.Interface
}

// NewExtractor creates a new extractor.
func NewExtractor(log logger.Interface) *Extractor {
	return &Extractor{log: log}
}

// Listings extracts every listing fragment from a search-results page, in
// document order. Malformed fragments are logged and skipped; the page as a
// whole never fails.
func (e *Extractor) Listings(doc *goquery.Document) []*domain.Listing {
	var listings []*domain.Listing

	doc.Find(listingSelector).Each(func(_ int, fragment *goquery.Selection) {
		listing, err := e.extractFragment(fragment)
		if err != nil {
			var vErr *domain.ValidationError
			if errors.As(err, &vErr) {
				e.log.Error("skipping malformed listing fragment",
					"field", vErr.Field, "error", vErr.Err)
			} else {
				e.log.Error("skipping listing fragment", "error", err)
			}
			return
		}
		if listing == nil {
			// Empty placeholder slot.
			return
		}
		listings = append(listings, listing)
	})

	return listings
}

// extractFragment extracts one listing summary. A nil listing with nil error
// means the fragment was an empty placeholder slot.
func (e *Extractor) extractFragment(fragment *goquery.Selection) (*domain.Listing, error) {
	id := fragmentID(fragment)
	if id == "" || id == "0" {
		e.log.Warn("found empty property slot")
		return nil, nil
	}

	imageURL := e.primaryImage(fragment, id)
	address := strings.TrimSpace(fragment.Find(addressSelector).First().Text())

	// Partial addresses are common on search results; a missing postcode is
	// tolerated here.
	postcode, err := domain.ExtractPostcode(address)
	if err != nil {
		postcode = ""
	}

	return domain.NewListing(domain.RawListing{
		ID:            id,
		ImageURL:      imageURL,
		Description:   strings.TrimSpace(fragment.Find(descriptionSelector).First().Text()),
		PriceText:     strings.TrimSpace(fragment.Find(priceSelector).First().Text()),
		AddedDateText: strings.TrimSpace(fragment.Find(addedDateSelector).First().Text()),
		Address:       address,
		Postcode:      postcode,
	})
}

// fragmentID derives the listing id from the fragment identifier attribute,
// taking the token after the last separator (e.g. "property-144595010").
func fragmentID(fragment *goquery.Selection) string {
	attr, ok := fragment.Attr("id")
	if !ok {
		return ""
	}
	parts := strings.Split(attr, "-")
	return parts[len(parts)-1]
}

// primaryImage picks the first valid image URL in the fragment. Invalid
// candidates are dropped silently; finding more than one valid candidate is
// worth a warning since the layout is expected to carry a single photo.
func (e *Extractor) primaryImage(fragment *goquery.Selection, id string) string {
	var valid []string
	fragment.Find("img").Each(func(_ int, img *goquery.Selection) {
		src, ok := img.Attr("src")
		if !ok {
			return
		}
		if u, err := url.Parse(src); err == nil && u.IsAbs() && u.Host != "" {
			valid = append(valid, src)
		}
	})

	if len(valid) == 0 {
		return ""
	}
	if len(valid) > 1 {
		e.log.Warn("found multiple images for property", "property_id", id, "count", len(valid))
	}
	return valid[0]
}
