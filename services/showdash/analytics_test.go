package showdash

import (
	"math"
	"testing"

	"seriescope/lib/showtable"

	"github.com/stretchr/testify/require"
)

func rated(season, episode int, rating float64) showtable.EpisodeRecord {
	return showtable.EpisodeRecord{
		Season:  season,
		Episode: episode,
		Title:   "episode",
		Rating:  showtable.Rating{Float64: rating, Valid: true},
	}
}

func unrated(season, episode int) showtable.EpisodeRecord {
	return showtable.EpisodeRecord{Season: season, Episode: episode, Title: "episode"}
}

func buildTable(t *testing.T, seasons ...showtable.SeasonEpisodes) *showtable.Table {
	table, err := showtable.Build(seasons)
	require.NoError(t, err)
	return table
}

func TestSeasonAveragesExcludeUnrated(t *testing.T) {
	table := buildTable(t,
		showtable.SeasonEpisodes{Season: 1, Episodes: []showtable.EpisodeRecord{
			rated(1, 1, 8), unrated(1, 2), rated(1, 3, 6),
		}},
		showtable.SeasonEpisodes{Season: 2, Episodes: []showtable.EpisodeRecord{
			unrated(2, 1),
		}},
	)

	averages := SeasonAverages(table)
	require.Len(t, averages, 2)

	require.Equal(t, 1, averages[0].Season)
	require.Equal(t, 3, averages[0].Episodes)
	require.Equal(t, 2, averages[0].Rated)
	require.True(t, averages[0].Mean.Valid)
	require.Equal(t, 7.0, averages[0].Mean.Float64)

	// a season with no rated episodes keeps an absent mean, not a zero
	require.Equal(t, 0, averages[1].Rated)
	require.False(t, averages[1].Mean.Valid)
}

func TestHistogram(t *testing.T) {
	table := buildTable(t, showtable.SeasonEpisodes{Season: 1, Episodes: []showtable.EpisodeRecord{
		rated(1, 1, 7.6), rated(1, 2, 7.9), rated(1, 3, 10), unrated(1, 4),
	}})

	bins := Histogram(table)
	require.Len(t, bins, 20)

	counts := map[float64]int{}
	for _, bin := range bins {
		counts[bin.From] = bin.Count
	}
	require.Equal(t, 2, counts[7.5])
	// a perfect ten lands in the last bin instead of falling off the end
	require.Equal(t, 1, counts[9.5])

	total := 0
	for _, bin := range bins {
		total += bin.Count
	}
	require.Equal(t, 3, total)
}

func TestRatingTrend(t *testing.T) {
	table := buildTable(t, showtable.SeasonEpisodes{Season: 1, Episodes: []showtable.EpisodeRecord{
		rated(1, 1, 8), unrated(1, 2), rated(1, 3, 6),
	}})

	trend := RatingTrend(table)
	require.Len(t, trend.Points, 2)
	require.Equal(t, "S1.E1", trend.Points[0].Label)
	require.Equal(t, "S1.E3", trend.Points[1].Label)
	require.Equal(t, 6.0, trend.Min)
	require.Equal(t, 8.0, trend.Max)
	require.Equal(t, 7.0, trend.Mean)
}

func TestRatingHeatmap(t *testing.T) {
	table := buildTable(t,
		showtable.SeasonEpisodes{Season: 1, Episodes: []showtable.EpisodeRecord{
			rated(1, 1, 8), rated(1, 3, 6),
		}},
		showtable.SeasonEpisodes{Season: 2, Episodes: []showtable.EpisodeRecord{
			unrated(2, 1), rated(2, 2, 9),
		}},
	)

	heatmap := RatingHeatmap(table)
	require.Equal(t, []int{1, 2, 3}, heatmap.Episodes)
	require.Len(t, heatmap.Rows, 2)

	s1 := heatmap.Rows[0]
	require.Equal(t, 8.0, *s1.Cells[0])
	require.Nil(t, s1.Cells[1])
	require.Equal(t, 6.0, *s1.Cells[2])

	s2 := heatmap.Rows[1]
	require.Nil(t, s2.Cells[0], "unrated episode serializes as null")
	require.Equal(t, 9.0, *s2.Cells[1])
	require.Nil(t, s2.Cells[2])
}

func TestTopAndBottomEpisodes(t *testing.T) {
	table := buildTable(t, showtable.SeasonEpisodes{Season: 1, Episodes: []showtable.EpisodeRecord{
		rated(1, 1, 7), rated(1, 2, 9), rated(1, 3, 5), unrated(1, 4), rated(1, 5, 8),
	}})

	top := TopEpisodes(table, 2)
	require.Len(t, top, 2)
	require.Equal(t, 9.0, top[0].Rating.Float64)
	require.Equal(t, 8.0, top[1].Rating.Float64)

	bottom := BottomEpisodes(table, 2)
	require.Len(t, bottom, 2)
	require.Equal(t, 5.0, bottom[0].Rating.Float64)
	require.Equal(t, 7.0, bottom[1].Rating.Float64)

	// asking for more than exists returns everything rated
	require.Len(t, TopEpisodes(table, 10), 4)
}

func TestSummarize(t *testing.T) {
	table := buildTable(t, showtable.SeasonEpisodes{Season: 1, Episodes: []showtable.EpisodeRecord{
		{
			Season: 1, Episode: 1, Title: "a",
			Rating: showtable.Rating{Float64: 8, Valid: true},
			Votes:  showtable.Votes{Int64: 1200, Valid: true},
		},
		{
			Season: 1, Episode: 2, Title: "b",
			Rating: showtable.Rating{Float64: 6, Valid: true},
			Votes:  showtable.Votes{Int64: 800, Valid: true},
		},
		unrated(1, 3),
	}})

	summary := Summarize(table)
	require.Equal(t, 3, summary.Episodes)
	require.Equal(t, 2, summary.Rated)
	require.Equal(t, 7.0, summary.Mean)
	require.Equal(t, 7.0, summary.Median)
	require.Equal(t, 6.0, summary.Min)
	require.Equal(t, 8.0, summary.Max)
	require.Equal(t, int64(2000), summary.Votes.Total)
	require.Equal(t, 2, summary.Votes.Counted)
	require.Equal(t, 1000.0, summary.Votes.Mean)
	require.Equal(t, 1000.0, summary.Votes.Median)
	require.Equal(t, int64(800), summary.Votes.Min)
	require.Equal(t, int64(1200), summary.Votes.Max)
	require.InDelta(t, math.Sqrt2, summary.StdDev, 1e-9)
}

func TestSummarizeSingleRating(t *testing.T) {
	table := buildTable(t, showtable.SeasonEpisodes{Season: 1, Episodes: []showtable.EpisodeRecord{
		rated(1, 1, 8),
	}})

	summary := Summarize(table)
	require.Equal(t, 8.0, summary.Mean)
	require.Equal(t, 0.0, summary.StdDev)
}
