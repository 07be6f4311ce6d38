package metrics_test

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/kylehensman/loadster/internal/metrics"
	"github.com/kylehensman/loadster/internal/runner"
)

func observeSamples(a *metrics.Aggregator, ok bool, samples ...time.Duration) {
	status := 200
	if !ok {
		status = 0
	}
	for _, d := range samples {
		a.Observe(runner.Outcome{OK: ok, StatusCode: status, Elapsed: d})
	}
}

func TestSummarizeFixedSamples(t *testing.T) {
	a := metrics.NewAggregator()

	// Deliberately out of order: arrival order must not matter.
	observeSamples(a, true,
		300*time.Millisecond,
		100*time.Millisecond,
		500*time.Millisecond,
		200*time.Millisecond,
		400*time.Millisecond,
	)

	s := a.Summarize(5, time.Second)

	if s.Issued != 5 || s.Succeeded != 5 || s.Failed != 0 {
		t.Fatalf("counts = %d/%d/%d, want 5/5/0", s.Issued, s.Succeeded, s.Failed)
	}
	if s.Latency.Min != 100*time.Millisecond {
		t.Errorf("min = %s, want 100ms", s.Latency.Min)
	}
	if s.Latency.Max != 500*time.Millisecond {
		t.Errorf("max = %s, want 500ms", s.Latency.Max)
	}
	if s.Latency.Mean != 300*time.Millisecond {
		t.Errorf("mean = %s, want 300ms", s.Latency.Mean)
	}
	// Nearest-rank on 5 samples: p50 at index 2, p95 and p99 at index 4.
	if s.Latency.P50 != 300*time.Millisecond {
		t.Errorf("p50 = %s, want 300ms", s.Latency.P50)
	}
	if s.Latency.P95 != 500*time.Millisecond {
		t.Errorf("p95 = %s, want 500ms", s.Latency.P95)
	}
	if s.Latency.P99 != 500*time.Millisecond {
		t.Errorf("p99 = %s, want 500ms", s.Latency.P99)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	a := metrics.NewAggregator()

	s := a.Summarize(0, 0)

	if s.Issued != 0 || s.Succeeded != 0 || s.Failed != 0 {
		t.Fatalf("counts = %d/%d/%d, want all zero", s.Issued, s.Succeeded, s.Failed)
	}
	if s.RequestsPerSec != 0 {
		t.Errorf("requests/sec = %f, want 0 for zero wall time", s.RequestsPerSec)
	}
	if s.Latency != (metrics.LatencyStats{}) {
		t.Errorf("latency = %+v, want zero value", s.Latency)
	}
}

func TestFailuresContributeLatencySamples(t *testing.T) {
	a := metrics.NewAggregator()

	observeSamples(a, false,
		5*time.Millisecond,
		15*time.Millisecond,
		10*time.Millisecond,
	)

	s := a.Summarize(3, time.Second)

	if s.Succeeded != 0 || s.Failed != 3 {
		t.Fatalf("counts = %d/%d, want 0 succeeded and 3 failed", s.Succeeded, s.Failed)
	}
	if s.Latency.Min != 5*time.Millisecond {
		t.Errorf("min = %s, want 5ms from failed attempts", s.Latency.Min)
	}
	if s.Latency.Max != 15*time.Millisecond {
		t.Errorf("max = %s, want 15ms from failed attempts", s.Latency.Max)
	}
	if s.Latency.Mean != 10*time.Millisecond {
		t.Errorf("mean = %s, want 10ms", s.Latency.Mean)
	}
}

func TestRequestsPerSecUsesConfiguredTotal(t *testing.T) {
	a := metrics.NewAggregator()

	// Only 40 of the configured 100 completed; RPS still divides the
	// configured total by wall time.
	for i := 0; i < 40; i++ {
		a.Observe(runner.Outcome{OK: true, StatusCode: 200, Elapsed: time.Millisecond})
	}

	s := a.Summarize(100, 2*time.Second)

	if math.Abs(s.RequestsPerSec-50.0) > 1e-9 {
		t.Fatalf("requests/sec = %f, want 50.0", s.RequestsPerSec)
	}
	if s.Issued != 40 {
		t.Fatalf("issued = %d, want 40", s.Issued)
	}
}

func TestObserveAfterSummarizeIsDropped(t *testing.T) {
	a := metrics.NewAggregator()
	observeSamples(a, true, 10*time.Millisecond)

	first := a.Summarize(1, time.Second)
	a.Observe(runner.Outcome{OK: true, StatusCode: 200, Elapsed: time.Hour})
	second := a.Summarize(1, time.Second)

	if second.Issued != first.Issued {
		t.Fatalf("issued changed after finalization: %d -> %d", first.Issued, second.Issued)
	}
	if second.Latency.Max != first.Latency.Max {
		t.Fatalf("latency changed after finalization: %s -> %s", first.Latency.Max, second.Latency.Max)
	}
}

func TestSnapshotWhileCollecting(t *testing.T) {
	a := metrics.NewAggregator()
	observeSamples(a, true, 20*time.Millisecond, 30*time.Millisecond)
	a.Observe(runner.Outcome{OK: false, Elapsed: 40 * time.Millisecond})

	p := a.Snapshot()

	if p.Issued != 3 || p.Succeeded != 2 || p.Failed != 1 {
		t.Fatalf("snapshot counts = %d/%d/%d, want 3/2/1", p.Issued, p.Succeeded, p.Failed)
	}
	if p.P50 <= 0 || p.P99 <= 0 {
		t.Fatalf("snapshot percentiles missing: p50=%s p99=%s", p.P50, p.P99)
	}
}

func TestObserveConcurrent(t *testing.T) {
	a := metrics.NewAggregator()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				a.Observe(runner.Outcome{OK: i%2 == 0, Elapsed: time.Millisecond})
			}
		}()
	}
	wg.Wait()

	s := a.Summarize(800, time.Second)
	if s.Issued != 800 {
		t.Fatalf("issued = %d, want 800", s.Issued)
	}
	if s.Succeeded+s.Failed != s.Issued {
		t.Fatalf("succeeded+failed = %d, want %d", s.Succeeded+s.Failed, s.Issued)
	}
}

func TestPercentileIndexing(t *testing.T) {
	a := metrics.NewAggregator()

	// 100 samples: 1ms..100ms. floor indexing gives p50 at index 50,
	// p95 at index 95, p99 at index 99.
	for i := 1; i <= 100; i++ {
		a.Observe(runner.Outcome{OK: true, Elapsed: time.Duration(i) * time.Millisecond})
	}

	s := a.Summarize(100, time.Second)

	if s.Latency.P50 != 51*time.Millisecond {
		t.Errorf("p50 = %s, want 51ms", s.Latency.P50)
	}
	if s.Latency.P95 != 96*time.Millisecond {
		t.Errorf("p95 = %s, want 96ms", s.Latency.P95)
	}
	if s.Latency.P99 != 100*time.Millisecond {
		t.Errorf("p99 = %s, want 100ms", s.Latency.P99)
	}
}
