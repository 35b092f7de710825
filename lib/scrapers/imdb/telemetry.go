package imdb

import (
	"seriescope/lib/restyutil"
	"seriescope/lib/telemetry"
)

var tracer = telemetry.Tracer("seriescope.lib.scrapers.imdb")
var restyDebugOutput restyutil.Output

func SetRestyDebugOutput(out restyutil.Output) {
	restyDebugOutput = out
}
