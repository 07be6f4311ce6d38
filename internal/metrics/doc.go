// Package metrics aggregates request outcomes into run statistics.
//
// The central [Aggregator] type consumes the runner's outcome stream:
//
//	agg := metrics.NewAggregator()
//	for out := range r.Run(ctx) {
//		agg.Observe(out)
//	}
//	summary := agg.Summarize(cfg.Requests, time.Since(start))
//
// Observe is safe for concurrent use. Summarize finalizes the
// aggregator; the returned [Summary] is immutable and outcomes
// observed afterwards are dropped.
//
// # Statistics
//
// Final percentiles are exact: the sample buffer is sorted ascending
// and percentile p is the element at zero-based index floor(n*p/100).
// Failed attempts contribute their elapsed time to the buffer just
// like successes, so latency reflects every issued attempt.
//
// [Aggregator.Snapshot] serves live progress display from a streaming
// HDR histogram; its percentiles are approximate and are never used
// for the final summary.
package metrics
