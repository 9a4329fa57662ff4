package rightmove_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matwasilewski/data-vortex/internal/rightmove"
)

func TestRentParamsValues(t *testing.T) {
	params := rightmove.NewRentParams()
	values := params.Values()

	assert.Equal(t, "RENT", values.Get("searchType"))
	assert.Equal(t, "REGION^87490", values.Get("locationIdentifier"))
	assert.Equal(t, "1", values.Get("insId"))
	assert.Equal(t, "0", values.Get("index"))
	assert.Equal(t, "0.0", values.Get("radius"))

	// Every key is present even when its filter is unset; the site does not
	// treat an omitted key and an empty one as equivalent.
	require.Len(t, values, 19)
	require.Contains(t, values, "minPrice")
	assert.Equal(t, "", values.Get("minPrice"))
	require.Contains(t, values, "letFurnishType")
	assert.Equal(t, "", values.Get("letFurnishType"))
}

func TestRentParamsWithIndex(t *testing.T) {
	params := rightmove.NewRentParams()
	paged := params.WithIndex(rightmove.PageSize)

	assert.Equal(t, "24", paged.Values().Get("index"))
	// The receiver is unchanged.
	assert.Equal(t, "0", params.Values().Get("index"))
}

func TestHeaders(t *testing.T) {
	headers := rightmove.Headers()
	assert.Equal(t, "curl/7.64.1", headers["User-Agent"])
}
