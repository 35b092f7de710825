package showdash

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"seriescope/lib/pagecache"
	"seriescope/lib/scrapers/imdb"
	"seriescope/lib/showtable"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type Options struct {
	// Cache is handed to every scrape client. Nil disables caching.
	Cache     pagecache.Cache
	UserAgent string
	Timeout   time.Duration
}

type Service struct {
	Options
}

func NewService(options Options) Service {
	return Service{Options: options}
}

// SeasonWarning records one season the scrape could not turn into
// episode rows. The rest of the result is still usable.
type SeasonWarning struct {
	Season  int    `json:"season"`
	Message string `json:"message"`
}

type Result struct {
	Show     imdb.Show
	Table    *showtable.Table
	Warnings []SeasonWarning
}

// Scrape pulls a whole show: the show-level pages first, then every
// season listing concurrently. A bad url or unrecognizable show page
// fails the scrape outright; individual season failures degrade to
// warnings. A scrape where no season produced a single episode fails
// with showtable.ErrEmptyResult.
func (s Service) Scrape(ctx context.Context, rawURL string) (Result, error) {
	ctx, span := tracer.Start(ctx, "service:Scrape")
	defer span.End()
	span.SetAttributes(attribute.String("url", rawURL))

	client, err := imdb.NewClient(ctx, imdb.ClientOptions{
		BaseURL:   rawURL,
		Cache:     s.Cache,
		UserAgent: s.UserAgent,
		Timeout:   s.Timeout,
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Result{}, err
	}

	show, err := client.Show(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Result{}, err
	}

	var seasons []showtable.SeasonEpisodes
	var warnings []SeasonWarning
	resultLock := sync.Mutex{}
	wg := sync.WaitGroup{}

	for _, season := range show.Seasons {
		wg.Add(1)
		go func() {
			defer wg.Done()

			episodes, err := s.scrapeSeason(ctx, client, season)

			resultLock.Lock()
			defer resultLock.Unlock()
			if err != nil {
				slog.WarnContext(ctx, "season scrape failed", "show", show.ID, "season", season, "err", err)
				warnings = append(warnings, SeasonWarning{
					Season:  season,
					Message: err.Error(),
				})
				return
			}
			seasons = append(seasons, showtable.SeasonEpisodes{
				Season:   season,
				Episodes: episodes,
			})
		}()
	}
	wg.Wait()

	slices.SortFunc(warnings, func(a, b SeasonWarning) int {
		return a.Season - b.Season
	})

	table, err := showtable.Build(seasons)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Result{}, err
	}

	return Result{Show: show, Table: table, Warnings: warnings}, nil
}

func (s Service) scrapeSeason(ctx context.Context, client *imdb.Client, season int) ([]showtable.EpisodeRecord, error) {
	ctx, span := tracer.Start(ctx, "service:scrapeSeason")
	defer span.End()
	span.SetAttributes(attribute.Int("season", season))

	page, err := client.SeasonPage(ctx, season)
	if err != nil {
		span.SetStatus(codes.Error, "fetch failed")
		return nil, err
	}
	episodes, err := imdb.ParseEpisodes(season, page)
	if err != nil {
		span.SetStatus(codes.Error, "parse failed")
		return nil, err
	}
	return episodes, nil
}
