package showdash

import (
	"fmt"
	"math"
	"slices"

	"seriescope/lib/showtable"
)

// SeasonAverage is the mean rating of one season's rated episodes.
// Seasons where no episode carries a rating have an absent Mean.
type SeasonAverage struct {
	Season   int             `json:"season"`
	Episodes int             `json:"episodes"`
	Rated    int             `json:"rated"`
	Mean     showtable.Rating `json:"mean"`
}

func SeasonAverages(table *showtable.Table) []SeasonAverage {
	var averages []SeasonAverage
	for _, season := range table.Seasons() {
		episodes := table.Season(season)
		avg := SeasonAverage{Season: season, Episodes: len(episodes)}

		var sum float64
		for _, rec := range episodes {
			if !rec.Rating.Valid {
				continue
			}
			sum += rec.Rating.Float64
			avg.Rated++
		}
		if avg.Rated > 0 {
			avg.Mean = showtable.Rating{
				Float64: sum / float64(avg.Rated),
				Valid:   true,
			}
		}
		averages = append(averages, avg)
	}
	return averages
}

// HistogramBin counts rated episodes with From <= rating < To. The last
// bin is closed on both ends so a perfect 10 still lands somewhere.
type HistogramBin struct {
	From  float64 `json:"from"`
	To    float64 `json:"to"`
	Count int     `json:"count"`
}

const histogramBinWidth = 0.5

func Histogram(table *showtable.Table) []HistogramBin {
	bins := make([]HistogramBin, 0, 20)
	for edge := 0.0; edge < 10; edge += histogramBinWidth {
		bins = append(bins, HistogramBin{From: edge, To: edge + histogramBinWidth})
	}
	for _, rec := range table.Records() {
		if !rec.Rating.Valid {
			continue
		}
		idx := int(rec.Rating.Float64 / histogramBinWidth)
		if idx >= len(bins) {
			idx = len(bins) - 1
		}
		bins[idx].Count++
	}
	return bins
}

// TrendPoint is one rated episode on the series-long timeline. Index is
// the episode's position in broadcast order across all seasons, so the
// x axis keeps moving between seasons.
type TrendPoint struct {
	Index   int     `json:"index"`
	Label   string  `json:"label"`
	Season  int     `json:"season"`
	Episode int     `json:"episode"`
	Rating  float64 `json:"rating"`
}

type Trend struct {
	Points []TrendPoint `json:"points"`
	Min    float64      `json:"min"`
	Max    float64      `json:"max"`
	Mean   float64      `json:"mean"`
}

func RatingTrend(table *showtable.Table) Trend {
	var trend Trend
	var sum float64
	for i, rec := range table.Records() {
		if !rec.Rating.Valid {
			continue
		}
		trend.Points = append(trend.Points, TrendPoint{
			Index:   i,
			Label:   fmt.Sprintf("S%d.E%d", rec.Season, rec.Episode),
			Season:  rec.Season,
			Episode: rec.Episode,
			Rating:  rec.Rating.Float64,
		})
		sum += rec.Rating.Float64
	}
	if len(trend.Points) == 0 {
		return trend
	}

	trend.Min = trend.Points[0].Rating
	trend.Max = trend.Points[0].Rating
	for _, p := range trend.Points[1:] {
		trend.Min = math.Min(trend.Min, p.Rating)
		trend.Max = math.Max(trend.Max, p.Rating)
	}
	trend.Mean = sum / float64(len(trend.Points))
	return trend
}

// Heatmap is the season-by-episode rating grid. Cells are nil where the
// episode does not exist or carries no rating, which serializes to json
// null so the client can render a gap instead of a zero.
type Heatmap struct {
	Episodes []int        `json:"episodes"`
	Rows     []HeatmapRow `json:"rows"`
}

type HeatmapRow struct {
	Season int        `json:"season"`
	Cells  []*float64 `json:"cells"`
}

func RatingHeatmap(table *showtable.Table) Heatmap {
	maxEpisode := 0
	for _, rec := range table.Records() {
		maxEpisode = max(maxEpisode, rec.Episode)
	}

	var heatmap Heatmap
	for e := 1; e <= maxEpisode; e++ {
		heatmap.Episodes = append(heatmap.Episodes, e)
	}
	for _, season := range table.Seasons() {
		row := HeatmapRow{Season: season, Cells: make([]*float64, maxEpisode)}
		for _, rec := range table.Season(season) {
			if !rec.Rating.Valid || rec.Episode < 1 || rec.Episode > maxEpisode {
				continue
			}
			rating := rec.Rating.Float64
			row.Cells[rec.Episode-1] = &rating
		}
		heatmap.Rows = append(heatmap.Rows, row)
	}
	return heatmap
}

// RankedEpisodes returns the rated episodes ordered best first. Ties
// fall back to broadcast order so the ranking is deterministic.
func RankedEpisodes(table *showtable.Table) []showtable.EpisodeRecord {
	var rated []showtable.EpisodeRecord
	for _, rec := range table.Records() {
		if rec.Rating.Valid {
			rated = append(rated, rec)
		}
	}
	slices.SortStableFunc(rated, func(a, b showtable.EpisodeRecord) int {
		switch {
		case a.Rating.Float64 > b.Rating.Float64:
			return -1
		case a.Rating.Float64 < b.Rating.Float64:
			return 1
		}
		return 0
	})
	return rated
}

func TopEpisodes(table *showtable.Table, n int) []showtable.EpisodeRecord {
	ranked := RankedEpisodes(table)
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func BottomEpisodes(table *showtable.Table, n int) []showtable.EpisodeRecord {
	ranked := RankedEpisodes(table)
	if len(ranked) > n {
		ranked = ranked[len(ranked)-n:]
	}
	// worst first
	slices.Reverse(ranked)
	return ranked
}

// Summary mirrors the usual describe() numbers over the rated episodes,
// for ratings and vote counts alike. StdDev is the sample standard
// deviation, not the population one.
type Summary struct {
	Episodes int        `json:"episodes"`
	Rated    int        `json:"rated"`
	Mean     float64    `json:"mean"`
	Median   float64    `json:"median"`
	StdDev   float64    `json:"std_dev"`
	Min      float64    `json:"min"`
	Max      float64    `json:"max"`
	Votes    VoteCounts `json:"votes"`
}

type VoteCounts struct {
	Counted int     `json:"counted"`
	Total   int64   `json:"total"`
	Mean    float64 `json:"mean"`
	Median  float64 `json:"median"`
	StdDev  float64 `json:"std_dev"`
	Min     int64   `json:"min"`
	Max     int64   `json:"max"`
}

func Summarize(table *showtable.Table) Summary {
	summary := Summary{Episodes: table.Len()}

	var ratings []float64
	var votes []float64
	for _, rec := range table.Records() {
		if rec.Rating.Valid {
			ratings = append(ratings, rec.Rating.Float64)
		}
		if rec.Votes.Valid {
			votes = append(votes, float64(rec.Votes.Int64))
			summary.Votes.Total += rec.Votes.Int64
		}
	}

	summary.Votes.Counted = len(votes)
	if len(votes) > 0 {
		slices.Sort(votes)
		summary.Votes.Min = int64(votes[0])
		summary.Votes.Max = int64(votes[len(votes)-1])
		summary.Votes.Mean = mean(votes)
		summary.Votes.Median = median(votes)
		summary.Votes.StdDev = sampleStdDev(votes, summary.Votes.Mean)
	}

	summary.Rated = len(ratings)
	if summary.Rated == 0 {
		return summary
	}

	slices.Sort(ratings)
	summary.Min = ratings[0]
	summary.Max = ratings[len(ratings)-1]
	summary.Mean = mean(ratings)
	summary.Median = median(ratings)
	summary.StdDev = sampleStdDev(ratings, summary.Mean)
	return summary
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// median expects sorted input
func median(sorted []float64) float64 {
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

func sampleStdDev(values []float64, mean float64) float64 {
	if len(values) < 2 {
		return 0
	}
	var sum float64
	for _, v := range values {
		diff := v - mean
		sum += diff * diff
	}
	return math.Sqrt(sum / float64(len(values)-1))
}
