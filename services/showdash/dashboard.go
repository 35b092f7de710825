package showdash

import (
	"time"

	"seriescope/lib/showtable"
)

// ShowInfo is the show-level header of a dashboard payload.
type ShowInfo struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	PosterURL string           `json:"poster_url,omitempty"`
	Rating    showtable.Rating `json:"rating"`
	Votes     showtable.Votes  `json:"votes"`
	Seasons   []int            `json:"seasons"`
}

// DashboardData is everything the dashboard page needs in one payload:
// the show header, the analytics set and the raw episode rows.
type DashboardData struct {
	Show           ShowInfo                  `json:"show"`
	Summary        Summary                   `json:"summary"`
	SeasonAverages []SeasonAverage           `json:"season_averages"`
	Histogram      []HistogramBin            `json:"histogram"`
	Trend          Trend                     `json:"trend"`
	Heatmap        Heatmap                   `json:"heatmap"`
	Top            []showtable.EpisodeRecord `json:"top"`
	Bottom         []showtable.EpisodeRecord `json:"bottom"`
	Episodes       []showtable.EpisodeRecord `json:"episodes"`
	Warnings       []SeasonWarning           `json:"warnings"`
	ScrapedAt      time.Time                 `json:"scraped_at"`
}

const rankingSize = 10

func BuildDashboard(result Result) DashboardData {
	return DashboardData{
		Show: ShowInfo{
			ID:        result.Show.ID,
			Name:      result.Show.Name,
			PosterURL: result.Show.PosterURL,
			Rating:    result.Show.Rating,
			Votes:     result.Show.Votes,
			Seasons:   result.Show.Seasons,
		},
		Summary:        Summarize(result.Table),
		SeasonAverages: SeasonAverages(result.Table),
		Histogram:      Histogram(result.Table),
		Trend:          RatingTrend(result.Table),
		Heatmap:        RatingHeatmap(result.Table),
		Top:            TopEpisodes(result.Table, rankingSize),
		Bottom:         BottomEpisodes(result.Table, rankingSize),
		Episodes:       result.Table.Records(),
		Warnings:       result.Warnings,
		ScrapedAt:      time.Now().UTC(),
	}
}
