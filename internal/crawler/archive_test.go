package crawler_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matwasilewski/data-vortex/internal/crawler"
	"github.com/matwasilewski/data-vortex/internal/domain"
	"github.com/matwasilewski/data-vortex/testutils"
)

func TestArchiveSaveAndLoad(t *testing.T) {
	archive, err := crawler.NewArchive(t.TempDir())
	require.NoError(t, err)

	listing := testutils.NewTestListing("127188272")
	require.NoError(t, archive.SaveAll(context.Background(), []*domain.Listing{listing}))

	assert.True(t, archive.Has("127188272"))
	assert.False(t, archive.Has("999"))

	got, err := archive.LoadListing("127188272")
	require.NoError(t, err)
	assert.Equal(t, listing, got)
}

func TestArchiveExistingIDs(t *testing.T) {
	archive, err := crawler.NewArchive(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, archive.SaveListing(testutils.NewTestListing("111")))

	existing, err := archive.ExistingIDs(context.Background(), []string{"111", "222"})
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"111": true}, existing)
}

func TestArchiveSaveRaw(t *testing.T) {
	dir := t.TempDir()
	archive, err := crawler.NewArchive(dir)
	require.NoError(t, err)

	require.NoError(t, archive.SaveRaw("111", []byte("<html></html>")))

	data, err := os.ReadFile(filepath.Join(dir, "raw", "111.html"))
	require.NoError(t, err)
	assert.Equal(t, []byte("<html></html>"), data)
}
