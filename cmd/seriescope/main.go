package main

import (
	"context"

	"seriescope/cmd/seriescope/commands"
	"seriescope/lib/telemetry"
)

func main() {
	telemetry.SetupFromEnv(context.Background(), "seriescope-cli")
	telemetry.InitSlog(true)
	commands.ExecuteContext(context.Background())
}
