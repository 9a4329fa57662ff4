package rightmove_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matwasilewski/data-vortex/internal/domain"
	"github.com/matwasilewski/data-vortex/internal/logger"
	"github.com/matwasilewski/data-vortex/internal/rightmove"
)

func loadDocument(t *testing.T, name string) *goquery.Document {
	t.Helper()

	f, err := os.Open(filepath.Join("testdata", name))
	require.NoError(t, err)
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	require.NoError(t, err)
	return doc
}

func parseDocument(t *testing.T, html string) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestListings(t *testing.T) {
	doc := loadDocument(t, "search_results.html")
	extractor := rightmove.NewExtractor(logger.NewNoOp())

	listings := extractor.Listings(doc)

	// Four fragments on the page: one complete, one empty placeholder slot,
	// one with an unparseable price, one complete without a postcode. The
	// placeholder and the malformed fragment are skipped.
	require.Len(t, listings, 2)

	first := listings[0]
	assert.Equal(t, "127188272", first.ID)
	assert.Equal(t, "https://media.example.com/127188272/main.jpg", first.ImageURL)
	assert.Equal(t, "A bright one bedroom flat moments from Upper Street.", first.Description)
	assert.Equal(t, domain.Money{
		Amount:   1127,
		Currency: domain.CurrencyGBP,
		Period:   domain.PerMonth,
	}, first.Price)
	assert.Equal(t, time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), first.AddedDate)
	assert.Equal(t, "Liverpool Road, London, N1 1AA", first.Address)
	assert.Equal(t, "N1 1AA", first.Postcode)

	second := listings[1]
	assert.Equal(t, "98210344", second.ID)
	// Relative image URLs are dropped, partial addresses keep an empty
	// postcode.
	assert.Empty(t, second.ImageURL)
	assert.Empty(t, second.Postcode)
	assert.Equal(t, domain.Money{
		Amount:   260,
		Currency: domain.CurrencyGBP,
		Period:   domain.PerWeek,
	}, second.Price)
	assert.Equal(t, domain.DateOf(time.Now().AddDate(0, 0, -1)), second.AddedDate)
}

func TestListingsEmptyPage(t *testing.T) {
	doc := parseDocument(t, `<html><body><div class="l-searchResults"></div></body></html>`)
	extractor := rightmove.NewExtractor(logger.NewNoOp())

	assert.Empty(t, extractor.Listings(doc))
}
