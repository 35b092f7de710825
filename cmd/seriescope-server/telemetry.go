package main

import (
	"context"

	"seriescope/lib/restyutil"
	"seriescope/lib/scrapers/imdb"
	"seriescope/lib/serviceutil"
	"seriescope/lib/telemetry"
)

func InitTelemetry(ctx context.Context, verbose bool) {
	err := telemetry.SetupFromEnv(ctx, "seriescope-server")
	if err != nil {
		serviceutil.Fatal("setup telemetry", err)
	}
	telemetry.InstrumentPerfStats(ctx)
	telemetry.InitSlog(verbose)

	if verbose {
		imdb.SetRestyDebugOutput(restyutil.NewFilesystemOutput(".dev/resty/imdb"))
	}
}
