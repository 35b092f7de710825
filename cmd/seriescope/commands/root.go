package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"seriescope/lib/pagecache"
	"seriescope/lib/serviceutil"
	"seriescope/services/showdash"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "seriescope",
	Short: "seriescope scrapes episode ratings for a tv show and reports on them.",
}

var cachePath *string

func init() {
	cachePath = rootCmd.PersistentFlags().String(
		"cache", "",
		"Path to a sqlite page cache. Repeated runs against the same show reuse fetched pages.",
	)
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func scrapeShow(ctx context.Context, rawURL string) showdash.Result {
	var cache pagecache.Cache
	if *cachePath != "" {
		sqlite, err := pagecache.OpenSqlite(*cachePath, time.Hour*24)
		if err != nil {
			serviceutil.Fatal("failed to open page cache", err)
		}
		cache = sqlite
	}

	service := showdash.NewService(showdash.Options{Cache: cache})

	t1 := time.Now()
	result, err := service.Scrape(ctx, rawURL)
	if err != nil {
		serviceutil.Fatal("failed to scrape show", err)
	}
	t2 := time.Now()

	slog.Info("scraping time", "seconds", t2.Sub(t1).Seconds())
	return result
}
