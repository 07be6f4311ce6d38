// Package runner provides the core load dispatch engine for loadster.
//
// The runner issues a fixed total of request attempts through an
// injected [Requester] and never lets more than the configured
// concurrency be unresolved at once. Admission is a pure
// concurrency-count throttle: there is no rate limiting, no retrying,
// and no per-attempt timeout.
//
// # Basic Usage
//
//	r := runner.New(runner.Options{
//		Concurrency:   10,
//		TotalRequests: 100,
//		Requester:     myRequester,
//	})
//	for outcome := range r.Run(ctx) {
//		// outcomes arrive in completion order, not issue order
//	}
//
// # Requester Interface
//
// The [Requester] interface defines what the runner executes:
//
//	type Requester interface {
//		Do(ctx context.Context) (status int, err error)
//	}
//
// A non-nil error means the transport failed before any response was
// received. A response with a 4xx or 5xx status is not an error here;
// the attempt reached the server and its status code is reported in
// the [Outcome].
package runner
