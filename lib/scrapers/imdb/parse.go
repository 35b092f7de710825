package imdb

import (
	"log/slog"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"seriescope/lib/htmlutil"
	"seriescope/lib/showtable"

	"github.com/PuerkitoBio/goquery"
)

// "S3.E7" out of the "S3.E7 ∙ Title" episode heading
var episodeHeadingRegex = regexp.MustCompile(`^S(\d+)\.E(\d+)$`)

// first decimal in a combined rating-star text like "8.6 (1.2K)"
var ratingValueRegex = regexp.MustCompile(`(\d+(?:\.\d+)?)`)

// parenthesized vote count in a combined rating-star text
var voteCountRegex = regexp.MustCompile(`\(([^)]*)\)`)

// a lone compact count, the shape of the vote-count node in the title
// page's aggregate rating widget
var aggregateVotesRegex = regexp.MustCompile(`^[\d.,]+(?:\.\d+)?[KMB]?$`)

// air dates show up in a few locale-dependent shapes
var airDateLayouts = []string{
	"Mon, Jan 2, 2006",
	"Jan 2, 2006",
	"Mon, 2 Jan 2006",
	"2 Jan 2006",
}

func looksLikeEpisodeListing(doc *goquery.Document) bool {
	if doc.Find("section[data-testid=episodes-browse-episodes]").Length() > 0 {
		return true
	}
	if doc.Find("div[data-testid=episodes-browse-episodes]").Length() > 0 {
		return true
	}
	return doc.Find("li[data-testid=tab-season-entry]").Length() > 0
}

// parseShowIndex pulls the show name, season numbers and poster out of
// the episode index page. A page without any of the listing landmarks is
// not a show page: ErrInvalidSource.
func parseShowIndex(raw string) (Show, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return Show{}, ErrInvalidSource
	}
	if !looksLikeEpisodeListing(doc) {
		return Show{}, ErrInvalidSource
	}

	var show Show

	show.Name = htmlutil.CleanText(doc.Find("h2[data-testid=subtitle]").First().Text())
	if show.Name == "" {
		show.Name = htmlutil.CleanText(doc.Find("h2").First().Text())
	}

	doc.Find("li[data-testid=tab-season-entry]").Each(func(_ int, tab *goquery.Selection) {
		season, err := strconv.Atoi(htmlutil.CleanText(tab.Text()))
		if err != nil {
			// "Unknown" and year tabs show up for some shows
			return
		}
		if !slices.Contains(show.Seasons, season) {
			show.Seasons = append(show.Seasons, season)
		}
	})
	slices.Sort(show.Seasons)
	if len(show.Seasons) == 0 {
		// single-season shows may render no tab strip at all
		show.Seasons = []int{1}
	}

	show.PosterURL = doc.Find("img.ipc-image").First().AttrOr("src", "")

	return show, nil
}

// parseAggregateRating extracts the series-wide rating and vote count
// from the title page, best effort: both degrade to absent.
func parseAggregateRating(raw string) (showtable.Rating, showtable.Votes) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return showtable.Rating{}, showtable.Votes{}
	}

	widget := doc.Find("div[data-testid=hero-rating-bar__aggregate-rating]").First()
	score := widget.Find("div[data-testid=hero-rating-bar__aggregate-rating__score] span").First()
	rating := showtable.CoerceRating(htmlutil.CleanText(score.Text()))

	// the vote count node carries no stable marker of its own, so look
	// for the div whose entire text is a lone compact count
	var votes showtable.Votes
	widget.Find("div").Each(func(_ int, div *goquery.Selection) {
		text := htmlutil.CleanText(div.Text())
		if aggregateVotesRegex.MatchString(text) {
			votes = showtable.CoerceVotes(text)
		}
	})

	return rating, votes
}

// ParseEpisodes extracts one record per episode block found in a season
// page's markup. An episode with no rating yields a record with an
// absent rating, not a dropped record. Malformed blocks are skipped with
// a warning. A page that is structurally valid but holds zero episode
// blocks is a valid empty season. A page that is not recognizable as an
// episode listing at all yields *ParseError.
func ParseEpisodes(season int, raw string) ([]showtable.EpisodeRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return nil, &ParseError{Season: season, Reason: "markup is not parseable html"}
	}

	blocks := doc.Find("article.episode-item-wrapper")
	if blocks.Length() == 0 {
		if !looksLikeEpisodeListing(doc) {
			return nil, &ParseError{Season: season, Reason: "page is not an episode listing"}
		}
		return nil, nil
	}

	var records []showtable.EpisodeRecord
	blocks.Each(func(i int, block *goquery.Selection) {
		rec, ok := parseEpisodeBlock(season, i, block)
		if !ok {
			return
		}
		records = append(records, rec)
	})

	return records, nil
}

func parseEpisodeBlock(season, idx int, block *goquery.Selection) (showtable.EpisodeRecord, bool) {
	heading := htmlutil.CleanText(block.Find("div.ipc-title__text").First().Text())
	if heading == "" {
		slog.Warn("skipping episode block without a heading", "season", season, "block", idx)
		return showtable.EpisodeRecord{}, false
	}

	marker, title, found := strings.Cut(heading, " ∙ ")
	if !found {
		marker = heading
	}
	groups := episodeHeadingRegex.FindStringSubmatch(strings.TrimSpace(marker))
	if len(groups) < 3 {
		slog.Warn(
			"skipping episode block with unrecognizable heading",
			"season", season, "block", idx, "heading", heading,
		)
		return showtable.EpisodeRecord{}, false
	}
	episode, err := strconv.Atoi(groups[2])
	if err != nil {
		slog.Warn("skipping episode block with non-numeric episode", "season", season, "heading", heading)
		return showtable.EpisodeRecord{}, false
	}
	if title == "" {
		title = marker
	}

	rec := showtable.EpisodeRecord{
		Season:  season,
		Episode: episode,
		Title:   strings.TrimSpace(title),
	}

	rec.Rating, rec.Votes = parseEpisodeRating(block)

	// the air date span carries no stable marker, so probe every span
	// for a date-shaped text
	block.Find("span").EachWithBreak(func(_ int, span *goquery.Selection) bool {
		date := showtable.CoerceAirDate(htmlutil.CleanText(span.Text()), airDateLayouts...)
		if date.Valid {
			rec.AirDate = date
			return false
		}
		return true
	})

	return rec, true
}

func parseEpisodeRating(block *goquery.Selection) (showtable.Rating, showtable.Votes) {
	rating := showtable.CoerceRating(
		htmlutil.CleanText(block.Find("span.ipc-rating-star--rating").First().Text()),
	)
	votes := showtable.CoerceVotes(
		htmlutil.CleanText(block.Find("span.ipc-rating-star--voteCount").First().Text()),
	)
	if rating.Valid || votes.Valid {
		return rating, votes
	}

	// older markup renders one combined "8.6 (1.2K)" star span
	combined := htmlutil.CleanText(block.Find("span.ipc-rating-star").First().Text())
	if combined == "" {
		return rating, votes
	}
	if groups := ratingValueRegex.FindStringSubmatch(combined); len(groups) >= 2 {
		rating = showtable.CoerceRating(groups[1])
	}
	if groups := voteCountRegex.FindStringSubmatch(combined); len(groups) >= 2 {
		votes = showtable.CoerceVotes(groups[1])
	}
	return rating, votes
}
