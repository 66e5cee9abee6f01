package aurion

import (
	"aurion-client/lib/restyutil"
	"aurion-client/lib/telemetry"
)

var tracer = telemetry.Tracer("scrapers/aurion")

// SetRestyInstrumentOutput dumps every http exchange of this session to
// the given output for offline inspection.
func (c *Client) SetRestyInstrumentOutput(out restyutil.InstrumentOutput) {
	restyutil.InstrumentClient(c.Http, tracer, out)
}
