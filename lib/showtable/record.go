package showtable

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"seriescope/lib/textutil"
)

// Optional fields carry an explicit Valid flag, in the manner of
// database/sql's Null types. A missing rating is "absent", never zero,
// so downstream means don't get silently dragged down.

type Rating struct {
	Float64 float64
	Valid   bool
}

func (r Rating) MarshalJSON() ([]byte, error) {
	if !r.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(r.Float64)
}

func (r *Rating) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = Rating{}
		return nil
	}
	err := json.Unmarshal(data, &r.Float64)
	if err != nil {
		return err
	}
	r.Valid = true
	return nil
}

type Votes struct {
	Int64 int64
	Valid bool
}

func (v Votes) MarshalJSON() ([]byte, error) {
	if !v.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(v.Int64)
}

func (v *Votes) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = Votes{}
		return nil
	}
	err := json.Unmarshal(data, &v.Int64)
	if err != nil {
		return err
	}
	v.Valid = true
	return nil
}

type AirDate struct {
	Time  time.Time
	Valid bool
}

func (d AirDate) MarshalJSON() ([]byte, error) {
	if !d.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(d.Time.Format("2006-01-02"))
}

func (d *AirDate) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = AirDate{}
		return nil
	}
	var s string
	err := json.Unmarshal(data, &s)
	if err != nil {
		return err
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return err
	}
	*d = AirDate{Time: t, Valid: true}
	return nil
}

// EpisodeRecord is one scraped episode. Identity is (Season, Episode).
type EpisodeRecord struct {
	Season  int     `json:"season"`
	Episode int     `json:"episode"`
	Title   string  `json:"title"`
	AirDate AirDate `json:"air_date"`
	Rating  Rating  `json:"rating"`
	Votes   Votes   `json:"votes"`
}

// CoerceRating turns a scraped rating string into a Rating, degrading to
// absent on anything unparseable.
func CoerceRating(s string) Rating {
	s = strings.TrimSpace(s)
	if s == "" {
		return Rating{}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Rating{}
	}
	return Rating{Float64: f, Valid: true}
}

// CoerceVotes turns a scraped vote-count string (possibly in compact
// "1.2K" form) into a Votes, degrading to absent on failure.
func CoerceVotes(s string) Votes {
	s = strings.Trim(strings.TrimSpace(s), "()")
	if s == "" {
		return Votes{}
	}
	n, err := textutil.ParseCompactCount(s)
	if err != nil {
		return Votes{}
	}
	return Votes{Int64: n, Valid: true}
}

// CoerceAirDate tries each layout in order and degrades to absent when
// none matches.
func CoerceAirDate(s string, layouts ...string) AirDate {
	s = strings.TrimSpace(s)
	if s == "" {
		return AirDate{}
	}
	for _, layout := range layouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return AirDate{Time: t, Valid: true}
		}
	}
	return AirDate{}
}
