package restyutil

import (
	"strconv"
	"sync/atomic"

	"github.com/go-resty/resty/v2"
)

// DumpExchanges writes every request/response pair that goes through the
// client to `out`, for offline inspection of scraped pages. A nil output
// is a no-op.
func DumpExchanges(client *resty.Client, out Output) {
	if out == nil {
		return
	}
	var idcounter uint64
	client.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		id := strconv.FormatUint(atomic.AddUint64(&idcounter, 1), 10)
		out.Write(id, FormatExchange(res))
		return nil
	})
}
