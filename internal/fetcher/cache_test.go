package fetcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheHit(t *testing.T) {
	cache := NewCache(10 * time.Minute)
	spec := RequestSpec{URL: "https://example.com/find", Params: map[string]string{"index": "0"}}
	resp := &Response{Status: 200, Body: []byte("page")}

	cache.Put(spec, resp)

	got, ok := cache.Get(spec)
	require.True(t, ok)
	assert.Equal(t, resp, got)
}

func TestCacheMissOnDifferentSpec(t *testing.T) {
	cache := NewCache(10 * time.Minute)
	cache.Put(RequestSpec{URL: "https://example.com/find", Params: map[string]string{"index": "0"}},
		&Response{Status: 200})

	_, ok := cache.Get(RequestSpec{URL: "https://example.com/find", Params: map[string]string{"index": "24"}})
	assert.False(t, ok)
}

func TestCacheExpiry(t *testing.T) {
	cache := NewCache(10 * time.Minute)
	spec := RequestSpec{URL: "https://example.com/find"}

	base := time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return base }
	cache.Put(spec, &Response{Status: 200})

	cache.now = func() time.Time { return base.Add(9 * time.Minute) }
	_, ok := cache.Get(spec)
	assert.True(t, ok)

	cache.now = func() time.Time { return base.Add(11 * time.Minute) }
	_, ok = cache.Get(spec)
	assert.False(t, ok)

	// The expired entry is evicted, not merely hidden.
	cache.now = func() time.Time { return base }
	_, ok = cache.Get(spec)
	assert.False(t, ok)
}
