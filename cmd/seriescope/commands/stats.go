package commands

import (
	"fmt"
	"os"

	"seriescope/lib/showtable"
	"seriescope/lib/textutil"
	"seriescope/services/showdash"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats <show url>",
	Short: "Scrapes a show and prints rating statistics and rankings.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		result := scrapeShow(cmd.Context(), args[0])
		summary := showdash.Summarize(result.Table)

		fmt.Println(result.Show.Name)

		t := table.NewWriter()
		t.SetStyle(table.StyleRounded)
		t.SetOutputMirror(os.Stdout)
		t.AppendRows([]table.Row{
			{"Episodes", summary.Episodes},
			{"Rated", summary.Rated},
			{"Mean", fmt.Sprintf("%.2f", summary.Mean)},
			{"Median", fmt.Sprintf("%.2f", summary.Median)},
			{"Std dev", fmt.Sprintf("%.2f", summary.StdDev)},
			{"Range", fmt.Sprintf("%.1f - %.1f", summary.Min, summary.Max)},
			{"Total votes", textutil.FormatCount(summary.Votes.Total)},
			{"Median votes", textutil.FormatCount(int64(summary.Votes.Median))},
		})
		t.Render()

		printRanking("Best episodes", showdash.TopEpisodes(result.Table, 10))
		printRanking("Worst episodes", showdash.BottomEpisodes(result.Table, 10))

		seasons := table.NewWriter()
		seasons.SetStyle(table.StyleRounded)
		seasons.SetOutputMirror(os.Stdout)
		seasons.AppendHeader(table.Row{"Season", "Episodes", "Rated", "Mean"})
		for _, avg := range showdash.SeasonAverages(result.Table) {
			mean := ""
			if avg.Mean.Valid {
				mean = fmt.Sprintf("%.2f", avg.Mean.Float64)
			}
			seasons.AppendRow(table.Row{avg.Season, avg.Episodes, avg.Rated, mean})
		}
		fmt.Println("Season averages")
		seasons.Render()
	},
}

func printRanking(title string, records []showtable.EpisodeRecord) {
	fmt.Println(title)

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Episode", "Title", "Rating", "Votes"})
	for _, rec := range records {
		votes := ""
		if rec.Votes.Valid {
			votes = textutil.FormatCount(rec.Votes.Int64)
		}
		t.AppendRow(table.Row{
			fmt.Sprintf("S%d.E%d", rec.Season, rec.Episode),
			rec.Title,
			fmt.Sprintf("%.1f", rec.Rating.Float64),
			votes,
		})
	}
	t.Render()
}
