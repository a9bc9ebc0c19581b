package main

import (
	"flag"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/comment-rank/internal/eval/runner"
)

type cliConfig struct {
	SpecPath      string
	Output        string
	PerSubmission bool
	K             int
	Workers       int
	LogLevel      string
	EnvPath       string
}

func parseFlags() cliConfig {
	cfg := cliConfig{}

	flag.StringVar(&cfg.SpecPath, "spec", "", "Path to evaluation spec YAML")
	flag.StringVar(&cfg.Output, "output", "", "Output path for the JSON report")
	flag.BoolVar(&cfg.PerSubmission, "per-submission", false, "Print per submission NDCG after the summary table")
	flag.IntVar(&cfg.K, "k", 0, "Override the maximum cutoff from the evaluation file")
	flag.IntVar(&cfg.Workers, "workers", 0, "Override the number of scoring goroutines")
	flag.StringVar(&cfg.LogLevel, "log-level", "info", "Log level: debug, info, warn or error")
	flag.StringVar(&cfg.EnvPath, "env", ".env", "Default .env file, ENV_PATH takes precedence")

	flag.Parse()
	return cfg
}

func (c cliConfig) validate() error {
	if c.SpecPath == "" {
		return fmt.Errorf("-spec is required")
	}
	if c.K < 0 {
		return fmt.Errorf("-k must be positive, got %d", c.K)
	}
	if c.Workers < 0 {
		return fmt.Errorf("-workers must be positive, got %d", c.Workers)
	}
	return nil
}

func (c cliConfig) logLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}

// apply lays the command line overrides over the run config of the evaluation file. A k
// override drops reported cutoffs above it and reports at k itself when
// none remain.
func (c cliConfig) apply(rc runner.Config) runner.Config {
	if c.Workers > 0 {
		rc.Workers = c.Workers
	}
	if c.K > 0 {
		rc.K = c.K
		kept := make([]int, 0, len(rc.KValues))
		for _, k := range rc.KValues {
			if k <= c.K {
				kept = append(kept, k)
			}
		}
		if len(kept) == 0 {
			kept = append(kept, c.K)
		}
		rc.KValues = kept
	}
	return rc
}
