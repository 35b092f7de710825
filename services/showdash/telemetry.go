package showdash

import "seriescope/lib/telemetry"

var tracer = telemetry.Tracer("seriescope.services.showdash")
