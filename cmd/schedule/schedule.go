// Package schedule implements the schedule command, which runs crawls on a
// recurring cron schedule.
package schedule

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/matwasilewski/data-vortex/cmd/common"
	"github.com/matwasilewski/data-vortex/internal/crawler"
	"github.com/matwasilewski/data-vortex/internal/fetcher"
	"github.com/matwasilewski/data-vortex/internal/rightmove"
)

// Command returns the schedule command.
func Command() *cobra.Command {
	var (
		spec           string
		continueSearch bool
	)

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Run crawls on a recurring schedule",
		Long: `Starts a long-running process that crawls the default rental search
on a cron schedule. The process runs until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), spec, continueSearch)
		},
	}

	cmd.Flags().StringVar(&spec, "cron", "0 6 * * *",
		"cron expression for crawl runs")
	cmd.Flags().BoolVar(&continueSearch, "continue-search", false,
		"keep paginating past pages of already-stored listings")

	return cmd
}

func run(ctx context.Context, spec string, continueSearch bool) error {
	deps, err := common.NewCommandDeps()
	if err != nil {
		return err
	}
	log := deps.Logger.WithComponent("schedule")

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

	c := crawler.New(
		fetcher.NewHTTPClient(search.RequestTimeout, log),
		cache,
		rightmove.NewExtractor(log),
		store,
		nil,
		log,
	)

	opts := crawler.Options{
		ContinueSearch: continueSearch,
		WaitTime:       search.WaitTime,
		UseCache:       search.UseCache,
	}

	sched := cron.New()
	_, err = sched.AddFunc(spec, func() {
		log.Info("scheduled crawl starting")
		if runErr := c.Run(ctx, rightmove.NewRentParams(), opts); runErr != nil {
			log.Error("scheduled crawl failed", "error", runErr)
			return
		}
		log.Info("scheduled crawl complete")
	})
	if err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", spec, err)
	}

	sched.Start()
	log.Info("scheduler started", "cron", spec)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("received signal, shutting down", "signal", sig.String())
	case <-ctx.Done():
		log.Info("context cancelled, shutting down")
	}

	stopCtx := sched.Stop()
	<-stopCtx.Done()
	return nil
}
