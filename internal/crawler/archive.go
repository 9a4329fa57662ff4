package crawler

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/matwasilewski/data-vortex/internal/domain"
)

// Archive is the file-based sink: one file per listing id. When used in
// place of the database store, the existence of a listing's file is the
// "already seen" signal for the crawl loop's stopping policy.
type Archive struct {
	dir string
}

// dirPermissions is the mode for created archive directories.
const dirPermissions = 0o755

// filePermissions is the mode for archived files.
const filePermissions = 0o644

// NewArchive creates an archive rooted at dir, creating the listing and raw
// page subdirectories as needed.
func NewArchive(dir string) (*Archive, error) {
	for _, sub := range []string{"listings", "raw"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), dirPermissions); err != nil {
			return nil, fmt.Errorf("creating archive directory: %w", err)
		}
	}
	return &Archive{dir: dir}, nil
}

// listingPath is the JSON record file for one listing id.
func (a *Archive) listingPath(id string) string {
	return filepath.Join(a.dir, "listings", id+".json")
}

// rawPath is the raw HTML file for one listing id.
func (a *Archive) rawPath(id string) string {
	return filepath.Join(a.dir, "raw", id+".html")
}

// Has reports whether a record file exists for the given id.
func (a *Archive) Has(id string) bool {
	_, err := os.Stat(a.listingPath(id))
	return err == nil
}

// ExistingIDs reports which ids already have record files. It satisfies the
// crawl loop's Store contract so the archive can serve as the sink.
func (a *Archive) ExistingIDs(_ context.Context, ids []string) (map[string]bool, error) {
	existing := make(map[string]bool, len(ids))
	for _, id := range ids {
		if a.Has(id) {
			existing[id] = true
		}
	}
	return existing, nil
}

// SaveAll writes one JSON record file per listing.
func (a *Archive) SaveAll(_ context.Context, listings []*domain.Listing) error {
	for _, listing := range listings {
		if err := a.SaveListing(listing); err != nil {
			return err
		}
	}
	return nil
}

// SaveListing writes the JSON-serialized record for one listing.
func (a *Archive) SaveListing(listing *domain.Listing) error {
	data, err := json.MarshalIndent(listing, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding listing %s: %w", listing.ID, err)
	}
	if err := os.WriteFile(a.listingPath(listing.ID), data, filePermissions); err != nil {
		return fmt.Errorf("writing listing %s: %w", listing.ID, err)
	}
	return nil
}

// LoadListing reads one archived record back.
func (a *Archive) LoadListing(id string) (*domain.Listing, error) {
	data, err := os.ReadFile(a.listingPath(id))
	if err != nil {
		return nil, fmt.Errorf("reading listing %s: %w", id, err)
	}
	var listing domain.Listing
	if err := json.Unmarshal(data, &listing); err != nil {
		return nil, fmt.Errorf("decoding listing %s: %w", id, err)
	}
	return &listing, nil
}

// SaveRaw writes the raw HTML of one listing's detail page.
func (a *Archive) SaveRaw(id string, body []byte) error {
	if err := os.WriteFile(a.rawPath(id), body, filePermissions); err != nil {
		return fmt.Errorf("writing raw page %s: %w", id, err)
	}
	return nil
}
