package output

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/kylehensman/loadster/internal/metrics"
)

// ProgressReporter displays a live progress line while a run is in
// flight, driven by aggregator snapshots. Purely cosmetic; it never
// feeds back into the final statistics.
type ProgressReporter struct {
	agg      *metrics.Aggregator
	total    int
	ticker   *time.Ticker
	done     chan struct{}
	finished chan struct{}
	writer   io.Writer
	active   int32
}

// NewProgressReporter creates a progress reporter that rewrites its
// line at the given interval.
func NewProgressReporter(agg *metrics.Aggregator, total int, interval time.Duration, writer io.Writer) *ProgressReporter {
	if writer == nil {
		writer = io.Discard
	}
	return &ProgressReporter{
		agg:      agg,
		total:    total,
		ticker:   time.NewTicker(interval),
		done:     make(chan struct{}),
		finished: make(chan struct{}),
		writer:   writer,
	}
}

// Start begins displaying progress updates in a background goroutine.
func (p *ProgressReporter) Start() {
	if !atomic.CompareAndSwapInt32(&p.active, 0, 1) {
		return // already running
	}
	go p.run()
}

// Stop halts progress updates and waits for the display goroutine.
func (p *ProgressReporter) Stop() {
	if atomic.CompareAndSwapInt32(&p.active, 1, 0) {
		close(p.done)
		p.ticker.Stop()
		<-p.finished
	}
}

func (p *ProgressReporter) run() {
	defer close(p.finished)
	for {
		select {
		case <-p.ticker.C:
			snap := p.agg.Snapshot()
			line := fmt.Sprintf("\rRequests: %d/%d | OK: %d | Failed: %d",
				snap.Issued, p.total, snap.Succeeded, snap.Failed)
			if snap.P99 > 0 {
				line += fmt.Sprintf(" | p99: %.1fms", millis(snap.P99))
			}
			fmt.Fprint(p.writer, line)
		case <-p.done:
			return
		}
	}
}
