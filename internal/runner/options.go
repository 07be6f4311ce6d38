package runner

import "context"

// Requester abstracts executing a single GET attempt against the
// configured target. Implementations return the response status code,
// or a non-nil error when the transport failed before any response was
// received. Any per-attempt timeout is the Requester's responsibility;
// the Runner imposes none of its own.
type Requester interface {
	Do(ctx context.Context) (status int, err error)
}

// Options configure the Runner.
type Options struct {
	Concurrency   int       // max attempts in flight at once
	TotalRequests int       // total attempts to issue
	Requester     Requester // attempt executor (required)
}

func (o *Options) normalize() {
	if o.Concurrency <= 0 {
		o.Concurrency = 1
	}
	if o.TotalRequests < 0 {
		o.TotalRequests = 0
	}
}
