// Package crawl implements the crawl command.
package crawl

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/matwasilewski/data-vortex/cmd/common"
	"github.com/matwasilewski/data-vortex/internal/crawler"
	"github.com/matwasilewski/data-vortex/internal/fetcher"
	"github.com/matwasilewski/data-vortex/internal/rightmove"
)

// flags holds the crawl command's flag values.
type flags struct {
	continueSearch bool
	downloadRaw    bool
	wait           time.Duration
	minBed         int
	maxBed         int
	minPrice       int
	maxPrice       int
	priceIncrement int
}

// Command returns the crawl command.
func Command() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "crawl",
		Short: "Crawl rental listings and store the new ones",
		Long: `Pages through rental search results, extracts listings and persists
the ones not seen before. The search is swept over bedroom counts and
price bands so that no single query exceeds the site's result cap.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), &f)
		},
	}

	cmd.Flags().BoolVar(&f.continueSearch, "continue-search", false,
		"keep paginating past pages of already-stored listings")
	cmd.Flags().BoolVar(&f.downloadRaw, "download-raw", false,
		"archive the raw detail page of every newly stored listing")
	cmd.Flags().DurationVar(&f.wait, "wait", 0,
		"pause between page fetches (overrides configuration when set)")
	cmd.Flags().IntVar(&f.minBed, "min-bed", 1, "minimum number of bedrooms")
	cmd.Flags().IntVar(&f.maxBed, "max-bed", 3, "maximum number of bedrooms")
	cmd.Flags().IntVar(&f.minPrice, "min-price", 0, "lower bound of the price sweep")
	cmd.Flags().IntVar(&f.maxPrice, "max-price", 5000, "upper bound of the price sweep")
	cmd.Flags().IntVar(&f.priceIncrement, "price-increment", 250,
		"width of each price band in the sweep")

	return cmd
}

func run(ctx context.Context, f *flags) error {
	deps, err := common.NewCommandDeps()
	if err != nil {
		return err
	}
	log := deps.Logger.WithComponent("crawl")

	if f.priceIncrement <= 0 {
		return fmt.Errorf("price increment must be positive, got %d", f.priceIncrement)
	}
	if f.minBed > f.maxBed {
		return fmt.Errorf("min-bed %d exceeds max-bed %d", f.minBed, f.maxBed)
	}

	store, db, err := deps.OpenStore()
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			log.Error("failed to close database", "error", closeErr)
		}
	}()

	search := deps.Config.Search

	var cache *fetcher.Cache
	if search.UseCache {
		cache = fetcher.NewCache(search.CacheTTL)
	}

	var archive *crawler.Archive
	if f.downloadRaw {
		archive, err = crawler.NewArchive(deps.Config.Archive.Dir)
		if err != nil {
			return fmt.Errorf("failed to open archive: %w", err)
		}
	}

	wait := search.WaitTime
	if f.wait > 0 {
		wait = f.wait
	}

	c := crawler.New(
		fetcher.NewHTTPClient(search.RequestTimeout, log),
		cache,
		rightmove.NewExtractor(log),
		store,
		archive,
		log,
	)

	opts := crawler.Options{
		ContinueSearch: f.continueSearch,
		DownloadRaw:    f.downloadRaw,
		WaitTime:       wait,
		UseCache:       search.UseCache,
	}

	// Sweep bedroom counts and price bands so that no single search hits
	// the site's result cap. Each cell of the sweep is an independent
	// crawl run with its own pagination.
	for bed := f.minBed; bed <= f.maxBed; bed++ {
		for price := f.minPrice; price < f.maxPrice; price += f.priceIncrement {
			params := rightmove.NewRentParams()
			params.MinBedrooms = strconv.Itoa(bed)
			params.MaxBedrooms = strconv.Itoa(bed)
			params.MinPrice = strconv.Itoa(price)
			params.MaxPrice = strconv.Itoa(price + f.priceIncrement)

			log.Info("starting sweep cell",
				"bedrooms", bed,
				"min_price", params.MinPrice,
				"max_price", params.MaxPrice)

			if err := c.Run(ctx, params, opts); err != nil {
				return fmt.Errorf("crawl failed for %d bedrooms, price %s-%s: %w",
					bed, params.MinPrice, params.MaxPrice, err)
			}
		}
	}

	log.Info("sweep complete")
	return nil
}
