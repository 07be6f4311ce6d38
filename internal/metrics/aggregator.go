package metrics

import (
	"sort"
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"

	"github.com/kylehensman/loadster/internal/runner"
)

// Aggregator consumes request outcomes and reduces them into a final
// Summary. It has two states: collecting (Observe accepts outcomes)
// and finalized (after Summarize; late outcomes are dropped).
type Aggregator struct {
	mu        sync.Mutex
	succeeded int
	failed    int
	samples   []time.Duration
	hist      *hdrhistogram.Histogram
	finalized bool
}

// Summary is the terminal aggregate of one run, constructed once by
// Summarize and immutable thereafter.
type Summary struct {
	Issued         int
	Succeeded      int
	Failed         int
	WallTime       time.Duration
	RequestsPerSec float64
	Latency        LatencyStats
}

// LatencyStats describes the latency distribution of all issued
// attempts, failures included. Zero-valued when no samples exist.
type LatencyStats struct {
	Min  time.Duration
	Max  time.Duration
	Mean time.Duration
	P50  time.Duration
	P95  time.Duration
	P99  time.Duration
}

// Progress is a point-in-time view for live reporting. Its percentiles
// come from a streaming histogram and are approximate; the final
// Summary never uses them.
type Progress struct {
	Issued    int
	Succeeded int
	Failed    int
	P50       time.Duration
	P99       time.Duration
}

func NewAggregator() *Aggregator {
	// Track latencies from 1µs up to 60s with 3 significant figures.
	return &Aggregator{
		hist: hdrhistogram.New(1, 60_000_000, 3),
	}
}

// Observe records one outcome. Failed attempts contribute their
// elapsed time to the latency samples exactly as successes do. Safe
// for concurrent use; outcomes arriving after Summarize are dropped.
func (a *Aggregator) Observe(out runner.Outcome) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.finalized {
		return
	}

	if out.OK {
		a.succeeded++
	} else {
		a.failed++
	}
	a.samples = append(a.samples, out.Elapsed)

	us := out.Elapsed.Microseconds()
	if us < a.hist.LowestTrackableValue() {
		us = a.hist.LowestTrackableValue()
	}
	if us > a.hist.HighestTrackableValue() {
		us = a.hist.HighestTrackableValue()
	}
	_ = a.hist.RecordValue(us)
}

// Snapshot returns an interim view of the run, safe to call while
// outcomes are still being observed.
func (a *Aggregator) Snapshot() Progress {
	a.mu.Lock()
	defer a.mu.Unlock()

	p := Progress{
		Issued:    a.succeeded + a.failed,
		Succeeded: a.succeeded,
		Failed:    a.failed,
	}
	if a.hist.TotalCount() > 0 {
		p.P50 = time.Duration(a.hist.ValueAtQuantile(50)) * time.Microsecond
		p.P99 = time.Duration(a.hist.ValueAtQuantile(99)) * time.Microsecond
	}
	return p
}

// Summarize finalizes the aggregator and computes the run summary.
// total is the configured request count: requests per second divides
// total (not the completed count) by wall, reporting 0 for a zero wall
// time. Percentile p is the sorted sample at zero-based index
// floor(n*p/100), nearest-rank with no interpolation. With no samples
// the latency block is all zeros.
func (a *Aggregator) Summarize(total int, wall time.Duration) Summary {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.finalized = true

	s := Summary{
		Issued:    a.succeeded + a.failed,
		Succeeded: a.succeeded,
		Failed:    a.failed,
		WallTime:  wall,
	}
	if wall > 0 {
		s.RequestsPerSec = float64(total) / wall.Seconds()
	}
	if len(a.samples) == 0 {
		return s
	}

	sorted := append([]time.Duration(nil), a.samples...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var sum time.Duration
	for _, d := range sorted {
		sum += d
	}

	n := len(sorted)
	s.Latency = LatencyStats{
		Min:  sorted[0],
		Max:  sorted[n-1],
		Mean: sum / time.Duration(n),
		P50:  sorted[n*50/100],
		P95:  sorted[n*95/100],
		P99:  sorted[n*99/100],
	}
	return s
}
