package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateFormats(t *testing.T) {
	want := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		raw  string
	}{
		{name: "iso with dashes", raw: "2024-02-10"},
		{name: "day first with dashes", raw: "10-02-2024"},
		{name: "day first with slashes", raw: "10/02/2024"},
		{name: "year first with slashes", raw: "2024/02/10"},
		{name: "added prefix", raw: "Added on 10/02/2024"},
		{name: "reduced prefix", raw: "Reduced on 10/02/2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestParseDateRelative(t *testing.T) {
	now := time.Date(2024, 2, 11, 15, 4, 5, 0, time.UTC)

	tests := []struct {
		name string
		raw  string
		want time.Time
	}{
		{
			name: "added today",
			raw:  "Added today",
			want: time.Date(2024, 2, 11, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "reduced today",
			raw:  "Reduced today",
			want: time.Date(2024, 2, 11, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "added yesterday",
			raw:  "Added yesterday",
			want: time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "reduced yesterday",
			raw:  "Reduced yesterday",
			want: time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDateAt(tt.raw, now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDateInvalid(t *testing.T) {
	_, err := ParseDate("sometime in spring")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestDateOf(t *testing.T) {
	in := time.Date(2024, 2, 10, 23, 59, 59, 999, time.UTC)
	assert.Equal(t, time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), DateOf(in))
}
