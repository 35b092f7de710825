package imdb

import (
	"context"
	"fmt"
	"net/http/cookiejar"
	"net/url"
	"regexp"
	"strings"
	"time"

	"seriescope/lib/pagecache"
	"seriescope/lib/restyutil"
	"seriescope/lib/showtable"
	"seriescope/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"github.com/mazen160/go-random"
	"go.opentelemetry.io/otel/codes"
)

var titlePathRegex = regexp.MustCompile(`^/title/(tt\d+)/?$`)

// ValidateTitleURL checks that `raw` looks like a show's title url
// (scheme + `/title/tt<digits>/` path) and returns the normalized base
// url (trailing slash) along with the title id. The host is deliberately
// not pinned so fixtures and mirrors can stand in for the real site.
func ValidateTitleURL(raw string) (string, string, error) {
	link, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", "", ErrInvalidSource
	}
	if (link.Scheme != "http" && link.Scheme != "https") || link.Host == "" {
		return "", "", ErrInvalidSource
	}
	groups := titlePathRegex.FindStringSubmatch(link.Path)
	if len(groups) < 2 {
		return "", "", ErrInvalidSource
	}

	base := fmt.Sprintf("%s://%s/title/%s/", link.Scheme, link.Host, groups[1])
	return base, groups[1], nil
}

// Show is the show-level data scraped from the title and episode index
// pages. Rating and Votes are the series-wide aggregate, not episode
// values, and may be absent.
type Show struct {
	ID        string
	Name      string
	PosterURL string
	Rating    showtable.Rating
	Votes     showtable.Votes
	Seasons   []int
}

type ClientOptions struct {
	BaseURL string
	// Cache, when non-nil, is consulted before any network request and
	// fed every fetched page. Keys are "<title id>/season/<n>" and
	// "<title id>/<page>".
	Cache     pagecache.Cache
	UserAgent string
	Timeout   time.Duration
}

type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client

	titleID string
	cache   pagecache.Cache
}

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

func NewClient(ctx context.Context, opts ClientOptions) (*Client, error) {
	base, titleID, err := ValidateTitleURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}
	baseUrl, err := url.Parse(base)
	if err != nil {
		return nil, ErrInvalidSource
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = time.Second * 30
	}

	client := resty.New()
	client.SetBaseURL(base)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("user-agent", userAgent)
	client.SetHeader("accept-language", "en-US,en;q=0.9")
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	client.SetTimeout(timeout)

	telemetry.InstrumentResty(client, "seriescope.lib.scrapers.imdb.http")
	restyutil.DumpExchanges(client, restyDebugOutput)

	return &Client{
		BaseUrl: baseUrl,
		Http:    client,
		titleID: titleID,
		cache:   orNoopCache(opts.Cache),
	}, nil
}

type noopCache struct{}

func (noopCache) Get(ctx context.Context, key string) (string, bool) { return "", false }
func (noopCache) Put(ctx context.Context, key string, page string)   {}

func orNoopCache(c pagecache.Cache) pagecache.Cache {
	if c == nil {
		return noopCache{}
	}
	return c
}

func retryable(res *resty.Response, err error) bool {
	if err != nil {
		return true
	}
	return res.StatusCode() == 429 || res.StatusCode() >= 500
}

// getPage fetches one page through the cache, with a single jittered
// retry on transient failures.
func (c *Client) getPage(ctx context.Context, key, path string) (string, error) {
	ctx, span := tracer.Start(ctx, "client:getPage")
	defer span.End()

	cacheKey := c.titleID + "/" + key
	if page, hit := c.cache.Get(ctx, cacheKey); hit {
		return page, nil
	}

	res, err := c.Http.R().SetContext(ctx).Get(path)
	if retryable(res, err) {
		jitter, _ := random.IntRange(50, 500)
		select {
		case <-time.After(time.Duration(jitter) * time.Millisecond):
		case <-ctx.Done():
			return "", ctx.Err()
		}
		res, err = c.Http.R().SetContext(ctx).Get(path)
	}
	if err != nil {
		span.SetStatus(codes.Error, "request failed")
		return "", err
	}
	if res.StatusCode() < 200 || res.StatusCode() >= 300 {
		span.SetStatus(codes.Error, "unexpected status")
		return "", fmt.Errorf("unexpected status: %s", res.Status())
	}

	page := res.String()
	c.cache.Put(ctx, cacheKey, page)
	return page, nil
}

// Show fetches the title and episode index pages and extracts the
// show-level details plus the season numbers to scrape. An index page
// that is not recognizable as an episode listing yields ErrInvalidSource.
func (c *Client) Show(ctx context.Context) (Show, error) {
	ctx, span := tracer.Start(ctx, "client:Show")
	defer span.End()

	index, err := c.getPage(ctx, "episodes", "episodes/")
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch episode index")
		return Show{}, fmt.Errorf("fetch episode index: %w", err)
	}

	show, err := parseShowIndex(index)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Show{}, err
	}
	show.ID = c.titleID

	// series-wide rating lives on the title page; losing it is not
	// worth failing the scrape over
	title, err := c.getPage(ctx, "title", "")
	if err == nil {
		show.Rating, show.Votes = parseAggregateRating(title)
	}

	return show, nil
}

// SeasonPage returns the raw markup of one season's episode listing.
// Failures come back as *FetchError so the caller can treat them as
// per-season warnings.
func (c *Client) SeasonPage(ctx context.Context, season int) (string, error) {
	ctx, span := tracer.Start(ctx, "client:SeasonPage")
	defer span.End()

	page, err := c.getPage(
		ctx,
		fmt.Sprintf("season/%d", season),
		fmt.Sprintf("episodes/?season=%d", season),
	)
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch season page")
		return "", &FetchError{Season: season, Err: err}
	}
	return page, nil
}
