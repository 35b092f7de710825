package commands

import (
	"fmt"
	"log/slog"
	"os"

	"seriescope/lib/textutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape <show url>",
	Short: "Scrapes a show's episode ratings and prints them as a table.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		result := scrapeShow(cmd.Context(), args[0])

		for _, warning := range result.Warnings {
			slog.Warn("season could not be scraped", "season", warning.Season, "err", warning.Message)
		}

		fmt.Printf("%s (%d seasons, %d episodes)\n",
			result.Show.Name, len(result.Show.Seasons), result.Table.Len())

		t := table.NewWriter()
		t.SetStyle(table.StyleRounded)
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Episode", "Title", "Air date", "Rating", "Votes"})

		for _, rec := range result.Table.Records() {
			airDate := ""
			if rec.AirDate.Valid {
				airDate = rec.AirDate.Time.Format("2006-01-02")
			}
			rating := ""
			if rec.Rating.Valid {
				rating = fmt.Sprintf("%.1f", rec.Rating.Float64)
			}
			votes := ""
			if rec.Votes.Valid {
				votes = textutil.FormatCount(rec.Votes.Int64)
			}
			t.AppendRow(table.Row{
				fmt.Sprintf("S%d.E%d", rec.Season, rec.Episode),
				rec.Title,
				airDate,
				rating,
				votes,
			})
		}
		t.Render()
	},
}
