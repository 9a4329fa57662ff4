// Package crawler implements the paginated crawl loop over search results.
package crawler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	"github.com/matwasilewski/data-vortex/internal/domain"
	"github.com/matwasilewski/data-vortex/internal/fetcher"
	"github.com/matwasilewski/data-vortex/internal/logger"
	"github.com/matwasilewski/data-vortex/internal/rightmove"
)

// State identifies where the crawl loop is in its cycle.
type State string

// Crawl loop states. The only backward transition is Deciding back to
// Querying at the next pagination offset.
const (
	StateQuerying   State = "querying"
	StateExtracting State = "extracting"
	StateDeciding   State = "deciding"
	StateStopped    State = "stopped"
)

// Store is the persistence contract the crawl loop needs: one bulk
// existence lookup and one atomic batch write.
type Store interface {
	ExistingIDs(ctx context.Context, ids []string) (map[string]bool, error)
	SaveAll(ctx context.Context, listings []*domain.Listing) error
}

// Options control one crawl run.
type Options struct {
	// ContinueSearch keeps paginating even when a whole page of listings
	// was already stored.
	ContinueSearch bool
	// DownloadRaw archives the raw detail page of every newly seen listing.
	DownloadRaw bool
	// WaitTime is the courtesy pause between consecutive page fetches and
	// between consecutive detail-page downloads.
	WaitTime time.Duration
	// UseCache consults the TTL response cache before fetching.
	UseCache bool
}

// Crawler pages through search results, extracts listings and persists the
// ones not seen before. One page is fetched, fully extracted and fully
// reconciled before the next page is requested.
type Crawler struct {
	client    fetcher.Client
	cache     *fetcher.Cache
	extractor *rightmove.Extractor
	store     Store
	archive   *Archive
	log       logger.Interface
}

// New creates a crawler. cache and archive may be nil when response caching
// and raw-page archival are not wanted.
func New(
	client fetcher.Client,
	cache *fetcher.Cache,
	extractor *rightmove.Extractor,
	store Store,
	archive *Archive,
	log logger.Interface,
) *Crawler {
	return &Crawler{
		client:    client,
		cache:     cache,
		extractor: extractor,
		store:     store,
		archive:   archive,
		log:       log,
	}
}

// Run executes one crawl over the given search parameters, starting at
// offset zero and advancing by the page size until the stopping policy
// fires. Transport failures terminate the run with a log line rather than
// an error; store failures propagate.
func (c *Crawler) Run(ctx context.Context, params rightmove.RentParams, opts Options) error {
	log := c.log.With("run_id", uuid.NewString())

	offset := 0
	state := StateQuerying

	for state != StateStopped {
		if err := ctx.Err(); err != nil {
			return err
		}

		listings, err := c.queryAndExtract(ctx, params.WithIndex(offset), opts, log)
		if err != nil {
			var respErr *fetcher.InvalidResponseError
			if errors.As(err, &respErr) || errors.Is(err, fetcher.ErrTransport) {
				log.Error("crawl terminated by fetch failure", "offset", offset, "error", err)
				return nil
			}
			return err
		}

		if len(listings) == 0 {
			log.Info("no listings on page, stopping", "offset", offset)
			state = StateStopped
			continue
		}

		state = StateDeciding
		done, err := c.decide(ctx, listings, opts, log)
		if err != nil {
			return err
		}
		if done {
			state = StateStopped
			continue
		}

		offset += rightmove.PageSize
		state = StateQuerying

		if opts.WaitTime > 0 {
			if err := sleep(ctx, opts.WaitTime); err != nil {
				return err
			}
		}
	}

	log.Info("crawl stopped", "final_offset", offset)
	return nil
}

// queryAndExtract performs the Querying and Extracting states for one page.
func (c *Crawler) queryAndExtract(
	ctx context.Context,
	params rightmove.RentParams,
	opts Options,
	log logger.Interface,
) ([]*domain.Listing, error) {
	spec := searchSpec(params)

	resp, err := c.fetch(ctx, spec, opts.UseCache)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, &fetcher.InvalidResponseError{Status: resp.Status, URL: spec.URL}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
	if err != nil {
		return nil, fmt.Errorf("parsing search page: %w", err)
	}

	listings := c.extractor.Listings(doc)
	log.Info("extracted listings", "offset", params.Index, "count", len(listings))
	return listings, nil
}

// decide persists the not-yet-seen listings from one page and reports
// whether the stopping policy fired.
func (c *Crawler) decide(
	ctx context.Context,
	listings []*domain.Listing,
	opts Options,
	log logger.Interface,
) (bool, error) {
	ids := make([]string, 0, len(listings))
	for _, listing := range listings {
		ids = append(ids, listing.ID)
	}

	existing, err := c.store.ExistingIDs(ctx, ids)
	if err != nil {
		return false, err
	}

	var unseen []*domain.Listing
	for _, listing := range listings {
		if !existing[listing.ID] {
			unseen = append(unseen, listing)
		}
	}

	if len(unseen) == 0 && !opts.ContinueSearch {
		log.Info("all listings already stored, stopping")
		return true, nil
	}

	if len(unseen) > 0 {
		if err := c.store.SaveAll(ctx, unseen); err != nil {
			return false, err
		}
		log.Info("persisted new listings", "count", len(unseen))

		if opts.DownloadRaw && c.archive != nil {
			if err := c.downloadRawPages(ctx, unseen, opts.WaitTime, log); err != nil {
				return false, err
			}
		}
	}

	return false, nil
}

// downloadRawPages fetches and archives the raw detail page of every newly
// seen listing, pacing consecutive fetches by wait.
func (c *Crawler) downloadRawPages(
	ctx context.Context,
	listings []*domain.Listing,
	wait time.Duration,
	log logger.Interface,
) error {
	for i, listing := range listings {
		if i > 0 && wait > 0 {
			if err := sleep(ctx, wait); err != nil {
				return err
			}
		}

		spec := detailSpec(listing.ID)
		resp, err := c.fetch(ctx, spec, false)
		if err != nil || !resp.OK() {
			log.Warn("failed to download raw listing page",
				"property_id", listing.ID, "error", err)
			continue
		}

		if err := c.archive.SaveRaw(listing.ID, resp.Body); err != nil {
			return fmt.Errorf("archiving raw page for %s: %w", listing.ID, err)
		}
	}
	return nil
}

// fetch retrieves one page, consulting and populating the TTL cache when the
// call site opted in.
func (c *Crawler) fetch(ctx context.Context, spec fetcher.RequestSpec, useCache bool) (*fetcher.Response, error) {
	if useCache && c.cache != nil {
		if resp, ok := c.cache.Get(spec); ok {
			return resp, nil
		}
	}

	resp, err := c.client.Fetch(ctx, spec)
	if err != nil {
		return nil, err
	}

	if useCache && c.cache != nil && resp.OK() {
		c.cache.Put(spec, resp)
	}
	return resp, nil
}

// searchSpec builds the request for one search-results page.
func searchSpec(params rightmove.RentParams) fetcher.RequestSpec {
	flat := make(map[string]string)
	for key, values := range params.Values() {
		if len(values) > 0 {
			flat[key] = values[0]
		}
	}
	return fetcher.RequestSpec{
		URL:     rightmove.SearchURL,
		Params:  flat,
		Headers: rightmove.Headers(),
	}
}

// detailSpec builds the request for one listing's detail page.
func detailSpec(id string) fetcher.RequestSpec {
	return fetcher.RequestSpec{
		URL:     rightmove.PropertyURL + id,
		Headers: rightmove.Headers(),
	}
}

// sleep pauses for d or until the context is cancelled.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
