package commands

import (
	"log/slog"
	"os"

	"seriescope/lib/serviceutil"

	"github.com/spf13/cobra"
)

var exportOut *string

func init() {
	exportOut = exportCmd.Flags().String("out", "", "File to write the csv to. Defaults to stdout.")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export <show url> [--out <path/to/output.csv>]",
	Short: "Scrapes a show and exports the episode table as csv.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		result := scrapeShow(cmd.Context(), args[0])

		for _, warning := range result.Warnings {
			slog.Warn("season could not be scraped", "season", warning.Season, "err", warning.Message)
		}

		out := os.Stdout
		if *exportOut != "" {
			file, err := os.Create(*exportOut)
			if err != nil {
				serviceutil.Fatal("failed to create output file", err)
			}
			defer file.Close()
			out = file
		}

		err := result.Table.WriteCSV(out)
		if err != nil {
			serviceutil.Fatal("failed to write csv", err)
		}
	},
}
