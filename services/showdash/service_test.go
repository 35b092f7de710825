package showdash

import (
	"context"
	"embed"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"seriescope/lib/pagecache"
	"seriescope/lib/scrapers/imdb"
	"seriescope/lib/showtable"
	"seriescope/lib/telemetry"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

//go:embed testdata/*.html
var fixtures embed.FS

func fixture(t *testing.T, name string) []byte {
	contents, err := fixtures.ReadFile("testdata/" + name)
	require.NoError(t, err)
	return contents
}

// fakeShowServer serves the show fixtures, returning 500 for any season
// number listed in failSeasons.
func fakeShowServer(t *testing.T, failSeasons ...string) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/title/tt0000001/episodes/", func(w http.ResponseWriter, r *http.Request) {
		season := r.URL.Query().Get("season")
		for _, fail := range failSeasons {
			if season == fail {
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}
		}
		switch season {
		case "":
			w.Write(fixture(t, "episode_index.html"))
		case "1":
			w.Write(fixture(t, "season_1.html"))
		case "2":
			w.Write(fixture(t, "season_2.html"))
		default:
			http.Error(w, "not found", http.StatusNotFound)
		}
	})
	mux.HandleFunc("/title/tt0000001/", func(w http.ResponseWriter, r *http.Request) {
		w.Write(fixture(t, "title.html"))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestScrape(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "showdash_test")
	defer cleanup()

	server := fakeShowServer(t)
	service := NewService(Options{})

	result, err := service.Scrape(context.Background(), server.URL+"/title/tt0000001/")
	require.NoError(t, err)

	require.Equal(t, "Test Show", result.Show.Name)
	require.Equal(t, "tt0000001", result.Show.ID)
	require.Equal(t, []int{1, 2}, result.Show.Seasons)
	require.Equal(t, 8.2, result.Show.Rating.Float64)
	require.Empty(t, result.Warnings)
	require.Equal(t, 5, result.Table.Len())
	require.Equal(t, []int{1, 2}, result.Table.Seasons())

	// the unrated episode survives as a row
	second := result.Table.Records()[1]
	require.Equal(t, "Second Wind", second.Title)
	require.False(t, second.Rating.Valid)
}

func TestScrapeIsDeterministic(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "showdash_test")
	defer cleanup()

	server := fakeShowServer(t)
	service := NewService(Options{Cache: pagecache.NewMemory(16, 0)})

	first, err := service.Scrape(context.Background(), server.URL+"/title/tt0000001/")
	require.NoError(t, err)

	// second pass runs entirely off the cache
	server.Close()
	second, err := service.Scrape(context.Background(), server.URL+"/title/tt0000001/")
	require.NoError(t, err)

	require.Empty(t, cmp.Diff(first.Show, second.Show))
	require.Empty(t, cmp.Diff(first.Table.Records(), second.Table.Records()))
	require.Empty(t, cmp.Diff(first.Warnings, second.Warnings))
}

func TestScrapePartialFailure(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "showdash_test")
	defer cleanup()

	server := fakeShowServer(t, "2")
	service := NewService(Options{})

	result, err := service.Scrape(context.Background(), server.URL+"/title/tt0000001/")
	require.NoError(t, err)

	require.Equal(t, []int{1}, result.Table.Seasons())
	require.Len(t, result.Warnings, 1)
	require.Equal(t, 2, result.Warnings[0].Season)
}

func TestScrapeAllSeasonsFail(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "showdash_test")
	defer cleanup()

	server := fakeShowServer(t, "1", "2")
	service := NewService(Options{})

	_, err := service.Scrape(context.Background(), server.URL+"/title/tt0000001/")
	require.ErrorIs(t, err, showtable.ErrEmptyResult)
}

func TestScrapeInvalidURL(t *testing.T) {
	service := NewService(Options{})
	_, err := service.Scrape(context.Background(), "https://example.com/not-a-show")
	require.ErrorIs(t, err, imdb.ErrInvalidSource)
}

func TestHandlers(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "showdash_test")
	defer cleanup()

	upstream := fakeShowServer(t)
	mux := http.NewServeMux()
	NewService(Options{}).RegisterRoutes(mux)
	api := httptest.NewServer(mux)
	t.Cleanup(api.Close)

	showURL := upstream.URL + "/title/tt0000001/"

	t.Run("index", func(t *testing.T) {
		res, err := http.Get(api.URL + "/")
		require.NoError(t, err)
		defer res.Body.Close()
		require.Equal(t, http.StatusOK, res.StatusCode)
		require.Contains(t, res.Header.Get("Content-Type"), "text/html")
	})

	t.Run("show", func(t *testing.T) {
		res, err := http.Get(api.URL + "/api/show?url=" + showURL)
		require.NoError(t, err)
		defer res.Body.Close()
		require.Equal(t, http.StatusOK, res.StatusCode)

		var data DashboardData
		require.NoError(t, json.NewDecoder(res.Body).Decode(&data))
		require.Equal(t, "Test Show", data.Show.Name)
		require.Len(t, data.Episodes, 5)
		require.Equal(t, 4, data.Summary.Rated)
		require.Len(t, data.SeasonAverages, 2)
	})

	t.Run("missing url", func(t *testing.T) {
		res, err := http.Get(api.URL + "/api/show")
		require.NoError(t, err)
		defer res.Body.Close()
		require.Equal(t, http.StatusBadRequest, res.StatusCode)
	})

	t.Run("invalid url", func(t *testing.T) {
		res, err := http.Get(api.URL + "/api/show?url=https://example.com/not-a-show")
		require.NoError(t, err)
		defer res.Body.Close()
		require.Equal(t, http.StatusBadRequest, res.StatusCode)
	})

	t.Run("export", func(t *testing.T) {
		res, err := http.Get(api.URL + "/api/show/export?url=" + showURL)
		require.NoError(t, err)
		defer res.Body.Close()
		require.Equal(t, http.StatusOK, res.StatusCode)
		require.Contains(t, res.Header.Get("Content-Type"), "text/csv")
		require.Contains(t, res.Header.Get("Content-Disposition"), "tt0000001_episodes.csv")

		body, err := io.ReadAll(res.Body)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(string(body)), "\n")
		require.Len(t, lines, 6)
		require.Equal(t, "season,episode,title,air_date,rating,votes", lines[0])
	})
}
