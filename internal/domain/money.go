// Package domain provides domain models used across the application.
package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Currency identifies the currency of a listing price.
type Currency string

// Known currencies. CurrencyUnknown is stored explicitly rather than being
// coerced to a default, so a missing currency survives a round-trip through
// the store.
const (
	CurrencyGBP     Currency = "GBP"
	CurrencyUSD     Currency = "USD"
	CurrencyPLN     Currency = "PLN"
	CurrencyUnknown Currency = "UNKNOWN"
)

// Period identifies the billing period of a listing price.
type Period string

// Known billing periods.
const (
	PerWeek       Period = "PER_WEEK"
	PerMonth      Period = "PER_MONTH"
	PerYear       Period = "PER_YEAR"
	OneOff        Period = "ONE_OFF"
	PeriodUnknown Period = "UNKNOWN"
)

// Money is an immutable price value. Equality is structural.
type Money struct {
	Amount   int      `json:"amount"`
	Currency Currency `json:"currency"`
	Period   Period   `json:"period"`
}

// currencyToken maps a source-markup token to its currency. Order matters:
// the first token found anywhere in the fragment wins.
type currencyToken struct {
	token    string
	currency Currency
}

var currencyTokens = []currencyToken{
	{"£", CurrencyGBP},
	{"$", CurrencyUSD},
	{"zl", CurrencyPLN},
}

// ParsePrice parses a free-text price fragment such as "£1,127 pcm" into a
// Money value. The currency token is stripped before the period token, which
// is stripped before the numeric parse; a token left in place could corrupt
// the numeric remainder.
func ParsePrice(raw string) (Money, error) {
	v := raw
	currency := CurrencyUnknown
	period := PeriodUnknown

	for _, ct := range currencyTokens {
		if strings.Contains(v, ct.token) {
			currency = ct.currency
			v = strings.ReplaceAll(v, ct.token, "")
			break
		}
	}

	switch {
	case strings.Contains(v, "pcm"):
		period = PerMonth
		v = strings.ReplaceAll(v, "pcm", "")
	case strings.Contains(v, "pw"):
		period = PerWeek
		v = strings.ReplaceAll(v, "pw", "")
	}

	v = strings.TrimSpace(strings.ReplaceAll(v, ",", ""))
	amount, err := strconv.Atoi(v)
	if err != nil || amount < 0 {
		return Money{}, fmt.Errorf("%w: no amount in %q", ErrInvalidPrice, raw)
	}

	return Money{Amount: amount, Currency: currency, Period: period}, nil
}
