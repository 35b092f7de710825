package showtable

import (
	"encoding/csv"
	"io"
	"strconv"
)

// WriteCSV renders the raw table as delimited text for download. Absent
// fields become empty cells, not zeros.
func (t *Table) WriteCSV(w io.Writer) error {
	out := csv.NewWriter(w)

	err := out.Write([]string{"season", "episode", "title", "air_date", "rating", "votes"})
	if err != nil {
		return err
	}

	for _, rec := range t.records {
		airDate := ""
		if rec.AirDate.Valid {
			airDate = rec.AirDate.Time.Format("2006-01-02")
		}
		rating := ""
		if rec.Rating.Valid {
			rating = strconv.FormatFloat(rec.Rating.Float64, 'f', -1, 64)
		}
		votes := ""
		if rec.Votes.Valid {
			votes = strconv.FormatInt(rec.Votes.Int64, 10)
		}

		err = out.Write([]string{
			strconv.Itoa(rec.Season),
			strconv.Itoa(rec.Episode),
			rec.Title,
			airDate,
			rating,
			votes,
		})
		if err != nil {
			return err
		}
	}

	out.Flush()
	return out.Error()
}
