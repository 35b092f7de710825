package showtable

import (
	"fmt"
	"slices"
)

var ErrEmptyResult = fmt.Errorf("no episodes survived merging")

// SeasonEpisodes is one season's worth of parsed records, the unit the
// scrape layer hands to Build.
type SeasonEpisodes struct {
	Season   int
	Episodes []EpisodeRecord
}

// Table is the merged, deduplicated dataset for one show, sorted
// ascending by (season, episode). Built once per scrape; not mutated
// afterwards.
type Table struct {
	records []EpisodeRecord
}

// Build merges per-season record sequences into one table. When the same
// (season, episode) identity appears more than once the later record
// wins. Ratings outside [0, 10] are degraded to absent rather than kept
// as corrupt values. Returns ErrEmptyResult when nothing survives.
func Build(seasons []SeasonEpisodes) (*Table, error) {
	type identity struct {
		season  int
		episode int
	}

	byIdentity := map[identity]EpisodeRecord{}
	for _, season := range seasons {
		for _, rec := range season.Episodes {
			if rec.Season <= 0 || rec.Episode <= 0 {
				continue
			}
			if rec.Rating.Valid && (rec.Rating.Float64 < 0 || rec.Rating.Float64 > 10) {
				rec.Rating = Rating{}
			}
			byIdentity[identity{rec.Season, rec.Episode}] = rec
		}
	}

	if len(byIdentity) == 0 {
		return nil, ErrEmptyResult
	}

	records := make([]EpisodeRecord, 0, len(byIdentity))
	for _, rec := range byIdentity {
		records = append(records, rec)
	}
	slices.SortFunc(records, func(a, b EpisodeRecord) int {
		if a.Season != b.Season {
			return a.Season - b.Season
		}
		return a.Episode - b.Episode
	})

	return &Table{records: records}, nil
}

func (t *Table) Len() int {
	return len(t.records)
}

// Records returns the table contents in (season, episode) order. Callers
// must not mutate the returned slice.
func (t *Table) Records() []EpisodeRecord {
	return t.records
}

// Seasons returns the distinct season numbers present, ascending.
func (t *Table) Seasons() []int {
	var seasons []int
	for _, rec := range t.records {
		if len(seasons) == 0 || seasons[len(seasons)-1] != rec.Season {
			seasons = append(seasons, rec.Season)
		}
	}
	return seasons
}

// Season returns the records of one season, in episode order.
func (t *Table) Season(n int) []EpisodeRecord {
	var out []EpisodeRecord
	for _, rec := range t.records {
		if rec.Season == n {
			out = append(out, rec)
		}
	}
	return out
}
