package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matwasilewski/data-vortex/internal/domain"
)

func TestExtractPostcode(t *testing.T) {
	tests := []struct {
		name    string
		address string
		want    string
	}{
		{
			name:    "trailing postcode",
			address: "Liverpool Road, London, N1 1AA",
			want:    "N1 1AA",
		},
		{
			name:    "two letter area",
			address: "High Street, Birmingham, SW1A 2AA",
			want:    "SW1A 2AA",
		},
		{
			name:    "no space between halves",
			address: "Flat 2, Brighton BN11AE",
			want:    "BN11AE",
		},
		{
			name:    "lower case input",
			address: "somewhere in london n1 1aa",
			want:    "N1 1AA",
		},
		{
			name:    "historical special case",
			address: "National Girobank, GIR 0AA",
			want:    "GIR 0AA",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ExtractPostcode(tt.address)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractPostcodeNotFound(t *testing.T) {
	_, err := domain.ExtractPostcode("Liverpool Road, London")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPostcodeNotFound)
}
