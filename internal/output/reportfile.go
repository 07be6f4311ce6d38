package output

import (
	"encoding/json"
	"os"
	"time"

	"github.com/kylehensman/loadster/internal/metrics"
)

// Report is the persisted JSON form of a finished run.
type Report struct {
	URL               string        `json:"url"`
	Date              time.Time     `json:"date"`
	TotalRequests     int           `json:"total_requests"`
	Concurrency       int           `json:"concurrency"`
	TotalDurationSecs float64       `json:"total_duration_secs"`
	Successful        int           `json:"successful"`
	Failed            int           `json:"failed"`
	RequestsPerSec    float64       `json:"requests_per_sec"`
	Latency           ReportLatency `json:"latency"`
}

// ReportLatency carries the latency distribution in milliseconds.
// All fields are 0.0 when the run produced no samples.
type ReportLatency struct {
	AvgMs float64 `json:"avg_ms"`
	P50Ms float64 `json:"p50_ms"`
	P95Ms float64 `json:"p95_ms"`
	P99Ms float64 `json:"p99_ms"`
	MinMs float64 `json:"min_ms"`
	MaxMs float64 `json:"max_ms"`
}

// NewReport builds the persisted report for a summary. now is recorded
// as the report generation timestamp, normalized to UTC.
func NewReport(url string, totalRequests, concurrency int, s metrics.Summary, now time.Time) Report {
	return Report{
		URL:               url,
		Date:              now.UTC(),
		TotalRequests:     totalRequests,
		Concurrency:       concurrency,
		TotalDurationSecs: s.WallTime.Seconds(),
		Successful:        s.Succeeded,
		Failed:            s.Failed,
		RequestsPerSec:    s.RequestsPerSec,
		Latency: ReportLatency{
			AvgMs: millis(s.Latency.Mean),
			P50Ms: millis(s.Latency.P50),
			P95Ms: millis(s.Latency.P95),
			P99Ms: millis(s.Latency.P99),
			MinMs: millis(s.Latency.Min),
			MaxMs: millis(s.Latency.Max),
		},
	}
}

// WriteReport writes the report as pretty-printed JSON to path,
// overwriting any existing file.
func WriteReport(path string, r Report) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
