package rightmove_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matwasilewski/data-vortex/internal/domain"
	"github.com/matwasilewski/data-vortex/internal/logger"
	"github.com/matwasilewski/data-vortex/internal/rightmove"
)

func TestDetail(t *testing.T) {
	doc := loadDocument(t, "detail_page.html")
	extractor := rightmove.NewExtractor(logger.NewNoOp())

	listing, err := extractor.Detail(doc)
	require.NoError(t, err)

	assert.Equal(t, "127188272", listing.ID)
	assert.Equal(t, "Liverpool Road, London, N1 1AA", listing.Address)
	assert.Equal(t, "N1 1AA", listing.Postcode)
	assert.Equal(t, "A bright one bedroom flat moments from Upper Street.", listing.Description)
	// The page advertises both a monthly and a weekly figure; the monthly
	// one wins.
	assert.Equal(t, domain.Money{
		Amount:   1127,
		Currency: domain.CurrencyGBP,
		Period:   domain.PerMonth,
	}, listing.Price)
	assert.Equal(t, time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), listing.AddedDate)
}

func TestDetailMissingIdentifier(t *testing.T) {
	doc := parseDocument(t, `<html><head></head><body><h1>Somewhere, N1 1AA</h1></body></html>`)
	extractor := rightmove.NewExtractor(logger.NewNoOp())

	_, err := extractor.Detail(doc)
	assert.ErrorIs(t, err, rightmove.ErrMissingIdentifier)
}

func TestDetailMissingAddress(t *testing.T) {
	doc := parseDocument(t, `<html><head>
		<meta property="og:url" content="https://www.rightmove.co.uk/properties/127188272#/">
	</head><body></body></html>`)
	extractor := rightmove.NewExtractor(logger.NewNoOp())

	_, err := extractor.Detail(doc)
	assert.ErrorIs(t, err, rightmove.ErrMissingAddress)
}

func TestDetailMissingPostcode(t *testing.T) {
	doc := parseDocument(t, `<html><head>
		<meta property="og:url" content="https://www.rightmove.co.uk/properties/127188272#/">
	</head><body><h1>Liverpool Road, London</h1></body></html>`)
	extractor := rightmove.NewExtractor(logger.NewNoOp())

	_, err := extractor.Detail(doc)
	assert.ErrorIs(t, err, domain.ErrPostcodeNotFound)
}

func TestDetailMissingPrice(t *testing.T) {
	doc := parseDocument(t, `<html><head>
		<meta property="og:url" content="https://www.rightmove.co.uk/properties/127188272#/">
	</head><body><h1>Liverpool Road, London, N1 1AA</h1></body></html>`)
	extractor := rightmove.NewExtractor(logger.NewNoOp())

	_, err := extractor.Detail(doc)
	assert.ErrorIs(t, err, rightmove.ErrPriceNotFound)
}

func TestDetailAmbiguousPrice(t *testing.T) {
	doc := parseDocument(t, `<html><head>
		<meta property="og:url" content="https://www.rightmove.co.uk/properties/127188272#/">
	</head><body>
		<h1>Liverpool Road, London, N1 1AA</h1>
		<span>£1,127 pcm</span>
		<span>£1,500 pcm</span>
	</body></html>`)
	extractor := rightmove.NewExtractor(logger.NewNoOp())

	_, err := extractor.Detail(doc)
	require.Error(t, err)

	var ambErr *rightmove.AmbiguousPriceError
	require.ErrorAs(t, err, &ambErr)
	assert.Equal(t, domain.PerMonth, ambErr.Period)
	assert.Equal(t, []int{1127, 1500}, ambErr.Amounts)
}

func TestDetailWeeklyOnly(t *testing.T) {
	doc := parseDocument(t, `<html><head>
		<meta property="og:url" content="https://www.rightmove.co.uk/properties/127188272#/">
	</head><body>
		<h1>Liverpool Road, London, N1 1AA</h1>
		<span>£260 pw</span>
	</body></html>`)
	extractor := rightmove.NewExtractor(logger.NewNoOp())

	listing, err := extractor.Detail(doc)
	require.NoError(t, err)
	assert.Equal(t, domain.Money{
		Amount:   260,
		Currency: domain.CurrencyGBP,
		Period:   domain.PerWeek,
	}, listing.Price)
	// No added-or-reduced line on the page: today's date is assumed.
	assert.Equal(t, domain.DateOf(time.Now()), listing.AddedDate)
}
