package showtable

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func rated(season, episode int, title string, rating float64) EpisodeRecord {
	return EpisodeRecord{
		Season:  season,
		Episode: episode,
		Title:   title,
		Rating:  Rating{Float64: rating, Valid: true},
	}
}

func TestBuildSortsAndMerges(t *testing.T) {
	table, err := Build([]SeasonEpisodes{
		{Season: 2, Episodes: []EpisodeRecord{
			rated(2, 2, "Grilled", 9.2),
			rated(2, 1, "Seven Thirty-Seven", 8.5),
		}},
		{Season: 1, Episodes: []EpisodeRecord{
			rated(1, 2, "Cat's in the Bag...", 8.1),
			rated(1, 1, "Pilot", 8.9),
		}},
	})
	require.NoError(t, err)
	require.Equal(t, 4, table.Len())

	records := table.Records()
	for i := 1; i < len(records); i++ {
		prev, cur := records[i-1], records[i]
		ordered := prev.Season < cur.Season ||
			(prev.Season == cur.Season && prev.Episode < cur.Episode)
		require.True(t, ordered, "records must be sorted by (season, episode)")
	}
	require.Equal(t, []int{1, 2}, table.Seasons())
	require.Len(t, table.Season(2), 2)
}

func TestBuildDedupeLaterWins(t *testing.T) {
	table, err := Build([]SeasonEpisodes{
		{Season: 1, Episodes: []EpisodeRecord{rated(1, 1, "Pilot (stale)", 7.0)}},
		{Season: 1, Episodes: []EpisodeRecord{rated(1, 1, "Pilot", 8.9)}},
	})
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())
	require.Equal(t, "Pilot", table.Records()[0].Title)
	require.Equal(t, 8.9, table.Records()[0].Rating.Float64)
}

func TestBuildEmpty(t *testing.T) {
	_, err := Build(nil)
	require.ErrorIs(t, err, ErrEmptyResult)

	_, err = Build([]SeasonEpisodes{{Season: 1}, {Season: 2}})
	require.ErrorIs(t, err, ErrEmptyResult)
}

func TestBuildDegradesOutOfRangeRating(t *testing.T) {
	table, err := Build([]SeasonEpisodes{
		{Season: 1, Episodes: []EpisodeRecord{rated(1, 1, "Pilot", 88.9)}},
	})
	require.NoError(t, err)
	require.False(t, table.Records()[0].Rating.Valid)
}

func TestBuildSkipsNonPositiveIdentity(t *testing.T) {
	_, err := Build([]SeasonEpisodes{
		{Season: 0, Episodes: []EpisodeRecord{rated(0, 1, "broken", 5)}},
	})
	require.ErrorIs(t, err, ErrEmptyResult)
}

func TestCoercion(t *testing.T) {
	require.Equal(t, Rating{Float64: 8.6, Valid: true}, CoerceRating("8.6"))
	require.Equal(t, Rating{Float64: 9, Valid: true}, CoerceRating("9"))
	require.False(t, CoerceRating("").Valid)
	require.False(t, CoerceRating("TBD").Valid)

	require.Equal(t, Votes{Int64: 1200, Valid: true}, CoerceVotes("(1.2K)"))
	require.Equal(t, Votes{Int64: 847, Valid: true}, CoerceVotes("847"))
	require.False(t, CoerceVotes("").Valid)

	date := CoerceAirDate("Sun, Jan 20, 2008", "Mon, Jan 2, 2006", "Jan 2, 2006")
	require.True(t, date.Valid)
	require.Equal(t, time.Date(2008, 1, 20, 0, 0, 0, 0, time.UTC), date.Time)

	require.True(t, CoerceAirDate("Jan 20, 2008", "Mon, Jan 2, 2006", "Jan 2, 2006").Valid)
	require.False(t, CoerceAirDate("someday", "Jan 2, 2006").Valid)
}

func TestWriteCSV(t *testing.T) {
	table, err := Build([]SeasonEpisodes{
		{Season: 1, Episodes: []EpisodeRecord{
			{
				Season:  1,
				Episode: 1,
				Title:   "Pilot",
				AirDate: AirDate{Time: time.Date(2008, 1, 20, 0, 0, 0, 0, time.UTC), Valid: true},
				Rating:  Rating{Float64: 8.9, Valid: true},
				Votes:   Votes{Int64: 1200, Valid: true},
			},
			{Season: 1, Episode: 2, Title: "Unaired"},
		}},
	})
	require.NoError(t, err)

	var buf strings.Builder
	require.NoError(t, table.WriteCSV(&buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "season,episode,title,air_date,rating,votes", lines[0])
	require.Equal(t, "1,1,Pilot,2008-01-20,8.9,1200", lines[1])
	require.Equal(t, "1,2,Unaired,,,", lines[2])
}
