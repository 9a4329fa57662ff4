package rightmove

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/matwasilewski/data-vortex/internal/domain"
)

var (
	// propertyIDRegex extracts the canonical listing id from the og:url
	// metadata field.
	propertyIDRegex = regexp.MustCompile(`/properties/(\d+)`)

	// detailPriceRegex is the secondary price grammar: every price-bearing
	// fragment on a detail page carries a currency symbol, an amount and a
	// period token.
	detailPriceRegex = regexp.MustCompile(`£[\d,]+\s*(?:pcm|pw)`)
)

// Detail extracts the single listing from its full detail page. Unlike bulk
// extraction, failures here propagate: a detail page is expected to be
// well-formed, with a full address and at least one price.
func (e *Extractor) Detail(doc *goquery.Document) (*domain.Listing, error) {
	id, err := detailID(doc)
	if err != nil {
		return nil, err
	}

	address := strings.TrimSpace(doc.Find("h1").First().Text())
	if address == "" {
		return nil, ErrMissingAddress
	}

	// A detail page always carries a full address, so the postcode is
	// mandatory here.
	postcode, err := domain.ExtractPostcode(address)
	if err != nil {
		return nil, err
	}

	price, err := e.detailPrice(doc, id)
	if err != nil {
		return nil, err
	}

	addedDate := detailAddedDate(doc)

	description, _ := doc.Find("meta[property='og:description']").Attr("content")

	return domain.NewListing(domain.RawListing{
		ID:          id,
		Description: strings.TrimSpace(description),
		Price:       &price,
		AddedDate:   &addedDate,
		Address:     address,
		Postcode:    postcode,
	})
}

// detailID locates the canonical listing id in the og:url metadata field.
func detailID(doc *goquery.Document) (string, error) {
	content, ok := doc.Find("meta[property='og:url']").Attr("content")
	if !ok {
		return "", ErrMissingIdentifier
	}
	match := propertyIDRegex.FindStringSubmatch(content)
	if match == nil {
		return "", fmt.Errorf("%w: %q", ErrMissingIdentifier, content)
	}
	return match[1], nil
}

// detailPrice scans all price-bearing fragments on the page, deduplicates by
// period, and returns the monthly price when both periods are advertised.
func (e *Extractor) detailPrice(doc *goquery.Document, id string) (domain.Money, error) {
	amounts := map[domain.Period]map[int]struct{}{}

	for _, fragment := range detailPriceRegex.FindAllString(doc.Text(), -1) {
		price, err := domain.ParsePrice(fragment)
		if err != nil {
			continue
		}
		if amounts[price.Period] == nil {
			amounts[price.Period] = map[int]struct{}{}
		}
		amounts[price.Period][price.Amount] = struct{}{}
	}

	if len(amounts) == 0 {
		return domain.Money{}, ErrPriceNotFound
	}

	for period, distinct := range amounts {
		if len(distinct) > 1 {
			return domain.Money{}, &AmbiguousPriceError{
				Period:  period,
				Amounts: sortedAmounts(distinct),
			}
		}
	}

	monthly, hasMonthly := singleAmount(amounts[domain.PerMonth])
	weekly, hasWeekly := singleAmount(amounts[domain.PerWeek])

	if hasMonthly {
		if hasWeekly {
			// The weekly figure is dropped when both periods are present.
			// If a listing is genuinely advertised both ways this loses
			// data, so surface it.
			e.log.Warn("discarding weekly price in favour of monthly",
				"property_id", id, "weekly_amount", weekly)
		}
		return domain.Money{Amount: monthly, Currency: domain.CurrencyGBP, Period: domain.PerMonth}, nil
	}
	return domain.Money{Amount: weekly, Currency: domain.CurrencyGBP, Period: domain.PerWeek}, nil
}

// addedDateRegex finds the added-or-reduced line anywhere in the page text.
var addedDateRegex = regexp.MustCompile(`(?:Added|Reduced) (?:on \d{2}/\d{2}/\d{4}|today|yesterday)`)

// detailAddedDate reads the added-or-reduced line from the detail page,
// falling back to the current date when the page does not show one.
func detailAddedDate(doc *goquery.Document) time.Time {
	if fragment := addedDateRegex.FindString(doc.Text()); fragment != "" {
		if date, err := domain.ParseDate(fragment); err == nil {
			return date
		}
	}
	return domain.DateOf(time.Now())
}

func singleAmount(distinct map[int]struct{}) (int, bool) {
	for amount := range distinct {
		return amount, true
	}
	return 0, false
}

func sortedAmounts(distinct map[int]struct{}) []int {
	amounts := make([]int, 0, len(distinct))
	for amount := range distinct {
		amounts = append(amounts, amount)
	}
	sort.Ints(amounts)
	return amounts
}
