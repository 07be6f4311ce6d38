package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kylehensman/loadster/internal/config"
	"github.com/kylehensman/loadster/internal/httpclient"
	"github.com/kylehensman/loadster/internal/metrics"
	"github.com/kylehensman/loadster/internal/output"
	"github.com/kylehensman/loadster/internal/runner"
)

const progressInterval = time.Second

// httpRequester issues one GET attempt per call. Any received response
// counts as success regardless of status code; only transport-level
// errors (no response at all) are failures.
type httpRequester struct {
	client *http.Client
	url    string
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	loader := config.NewLoader()
	cfg, err := loader.Load(args)
	if err != nil {
		if errors.Is(err, config.ErrHelpRequested) || errors.Is(err, config.ErrVersionRequested) {
			return nil
		}
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	fmt.Printf("Load testing: %s\n", cfg.TargetURL)
	fmt.Printf("Total requests: %d\n", cfg.Requests)
	fmt.Printf("Concurrency: %d\n", cfg.Concurrency)

	requester := &httpRequester{
		client: httpclient.NewClient(cfg.Timeout),
		url:    cfg.TargetURL,
	}

	r := runner.New(runner.Options{
		Concurrency:   cfg.Concurrency,
		TotalRequests: cfg.Requests,
		Requester:     requester,
	})

	agg := metrics.NewAggregator()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var progress *output.ProgressReporter
	if !cfg.Quiet {
		progress = output.NewProgressReporter(agg, cfg.Requests, progressInterval, os.Stdout)
		progress.Start()
	}

	start := time.Now()
	for out := range r.Run(ctx) {
		agg.Observe(out)
	}
	wall := time.Since(start)

	if progress != nil {
		progress.Stop()
		fmt.Fprintln(os.Stdout)
	}

	summary := agg.Summarize(cfg.Requests, wall)
	output.PrintReport(os.Stdout, summary)

	if cfg.Output != "" {
		report := output.NewReport(cfg.TargetURL, cfg.Requests, cfg.Concurrency, summary, time.Now())
		if err := output.WriteReport(cfg.Output, report); err != nil {
			// Non-fatal: the console report above already ran.
			fmt.Fprintf(os.Stderr, "warning: failed to save report: %v\n", err)
		} else {
			fmt.Printf("\nReport saved to: %s\n", cfg.Output)
		}
	}

	return nil
}

func (r *httpRequester) Do(ctx context.Context) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, nil)
	if err != nil {
		return 0, err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	// Drain so the transport can reuse the connection.
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, nil
}
