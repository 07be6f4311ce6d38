package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// newFlagCommand creates a cobra command with all flags configured.
func newFlagCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "loadster <url>",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	cmd.SetOut(os.Stdout)
	configureFlags(cmd.Flags())
	return cmd
}

// configureFlags sets up all CLI flags on the provided flag set.
func configureFlags(flags *pflag.FlagSet) {
	flags.IntP("requests", "n", 100, "Total number of requests to send")
	flags.IntP("concurrency", "c", 10, "Number of requests to run concurrently")
	flags.StringP("output", "o", DefaultOutput, "Output file path for the JSON report (empty disables it)")
	flags.Duration("timeout", 0, "Per-request timeout (0 means none)")
	flags.Bool("quiet", false, "Suppress the live progress line")
	flags.String("config", "", "Path to configuration file (JSON or YAML)")
	flags.BoolP("version", "V", false, "Print version and exit")
}

// displayHelp prints the help message for a command.
func displayHelp(cmd *cobra.Command) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "A lightweight HTTP load testing tool that sends concurrent requests")
	fmt.Fprintln(out, "and reports latency statistics including p50, p95, and p99 percentiles.")
	fmt.Fprintf(out, "\nUsage: %s\n\nFlags:\n", cmd.UseLine())
	fs := cmd.Flags()
	fs.SetOutput(out)
	fs.PrintDefaults()
	fmt.Fprintln(out, "\nExample:\n  loadster https://example.com -n 200 -c 20")
}

// applyFlagOverrides applies command-line flag values to the config,
// overriding values from the config file.
func applyFlagOverrides(cfg *Config, fs *pflag.FlagSet) error {
	if fs.Changed("requests") {
		val, err := fs.GetInt("requests")
		if err != nil {
			return err
		}
		cfg.Requests = val
	}
	if fs.Changed("concurrency") {
		val, err := fs.GetInt("concurrency")
		if err != nil {
			return err
		}
		cfg.Concurrency = val
	}
	if fs.Changed("output") {
		val, err := fs.GetString("output")
		if err != nil {
			return err
		}
		cfg.Output = strings.TrimSpace(val)
	}
	if fs.Changed("timeout") {
		val, err := fs.GetDuration("timeout")
		if err != nil {
			return err
		}
		cfg.Timeout = val
	}
	if fs.Changed("quiet") {
		val, err := fs.GetBool("quiet")
		if err != nil {
			return err
		}
		cfg.Quiet = val
	}

	if args := fs.Args(); len(args) > 0 {
		cfg.TargetURL = strings.TrimSpace(args[0])
	}

	return nil
}
