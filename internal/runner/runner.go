package runner

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Outcome records the resolution of one request attempt. OK reports
// whether a response was received at all; responses carrying error
// status codes still count as OK because they reached the server.
// StatusCode is 0 when the transport failed before a response arrived.
type Outcome struct {
	OK         bool
	StatusCode int
	Elapsed    time.Duration
}

// Runner issues a fixed number of request attempts while keeping the
// number of unresolved attempts at or below the concurrency cap.
type Runner struct {
	opt Options
}

func New(opt Options) *Runner {
	opt.normalize()
	return &Runner{opt: opt}
}

// Run starts the attempt workers and returns the outcome stream. The
// channel yields one Outcome per issued attempt, in completion order,
// and is closed once every issued attempt has resolved. Cancelling ctx
// stops admission of new attempts; attempts already admitted still
// resolve and are emitted, so the stream always terminates.
func (r *Runner) Run(ctx context.Context) <-chan Outcome {
	results := make(chan Outcome, r.opt.Concurrency)
	permits := make(chan struct{}, r.opt.Concurrency)

	var issued int64

	// Scheduler: admits one attempt per permit so workers only execute
	// allocated slots. Each worker holds at most one unresolved attempt,
	// which is what bounds the in-flight count at Concurrency.
	go func() {
		defer close(permits)
		for {
			if ctx.Err() != nil {
				return
			}
			if atomic.LoadInt64(&issued) >= int64(r.opt.TotalRequests) {
				return
			}
			atomic.AddInt64(&issued, 1)
			select {
			case permits <- struct{}{}:
			case <-ctx.Done():
				return
			}
		}
	}()

	var wg sync.WaitGroup
	wg.Add(r.opt.Concurrency)
	for i := 0; i < r.opt.Concurrency; i++ {
		go func() {
			defer wg.Done()
			for range permits {
				results <- r.attempt(ctx)
				if ctx.Err() != nil {
					return
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

func (r *Runner) attempt(ctx context.Context) Outcome {
	if r.opt.Requester == nil {
		return Outcome{}
	}
	start := time.Now()
	status, err := r.opt.Requester.Do(ctx)
	elapsed := time.Since(start)
	if err != nil {
		return Outcome{OK: false, StatusCode: 0, Elapsed: elapsed}
	}
	return Outcome{OK: true, StatusCode: status, Elapsed: elapsed}
}
