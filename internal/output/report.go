package output

import (
	"fmt"
	"io"
	"time"

	"github.com/kylehensman/loadster/internal/metrics"
)

// PrintReport writes the human-readable summary of a finished run.
// The latency block is omitted when the run produced no samples.
func PrintReport(w io.Writer, s metrics.Summary) {
	fmt.Fprintln(w, "\nResults:")
	fmt.Fprintln(w, "========")
	fmt.Fprintf(w, "Total time: %.2fs\n", s.WallTime.Seconds())
	fmt.Fprintf(w, "Successful: %d\n", s.Succeeded)
	fmt.Fprintf(w, "Failed: %d\n", s.Failed)
	fmt.Fprintf(w, "Requests/sec: %.2f\n", s.RequestsPerSec)

	if s.Issued == 0 {
		return
	}

	fmt.Fprintln(w, "\nLatency:")
	fmt.Fprintf(w, "  Min: %.2fms\n", millis(s.Latency.Min))
	fmt.Fprintf(w, "  Avg: %.2fms\n", millis(s.Latency.Mean))
	fmt.Fprintf(w, "  p50: %.2fms\n", millis(s.Latency.P50))
	fmt.Fprintf(w, "  p95: %.2fms\n", millis(s.Latency.P95))
	fmt.Fprintf(w, "  p99: %.2fms\n", millis(s.Latency.P99))
	fmt.Fprintf(w, "  Max: %.2fms\n", millis(s.Latency.Max))
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
