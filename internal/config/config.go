package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Version is the loadster release version reported by --version.
const Version = "1.0.0"

// DefaultOutput is the report file path used when -o is not given.
const DefaultOutput = "loadster-report.json"

// Config holds one run's parameters. It is built once by the Loader
// and never mutated after validation.
type Config struct {
	TargetURL   string        `mapstructure:"target"`
	Requests    int           `mapstructure:"requests"`
	Concurrency int           `mapstructure:"concurrency"`
	Output      string        `mapstructure:"output"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Quiet       bool          `mapstructure:"quiet"`
	ConfigFile  string        `mapstructure:"-"`
}

type ValidationError struct {
	issues []string
}

func (e ValidationError) Error() string {
	if len(e.issues) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(e.issues, "; "))
}

func (e ValidationError) Issues() []string {
	return append([]string(nil), e.issues...)
}

// Validate checks the config before dispatch begins. The runner and
// aggregator never see an invalid config.
func (c Config) Validate() error {
	var issues []string

	target := strings.TrimSpace(c.TargetURL)
	if target == "" {
		issues = append(issues, "target URL is required (use --help for usage information)")
	} else {
		parsed, err := url.Parse(target)
		switch {
		case err != nil:
			issues = append(issues, fmt.Sprintf("target URL is invalid: %v", err))
		case parsed.Scheme != "http" && parsed.Scheme != "https":
			issues = append(issues, "target URL must include http:// or https://")
		case parsed.Host == "":
			issues = append(issues, "target URL is missing a host")
		}
	}

	if c.Requests < 1 {
		issues = append(issues, "requests must be at least 1")
	}
	if c.Concurrency < 1 {
		issues = append(issues, "concurrency must be at least 1")
	}
	if c.Timeout < 0 {
		issues = append(issues, "timeout cannot be negative")
	}

	if len(issues) > 0 {
		return ValidationError{issues: issues}
	}
	return nil
}
