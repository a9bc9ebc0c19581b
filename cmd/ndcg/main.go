package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/DjordjeVuckovic/comment-rank/internal/eval/report"
	"github.com/DjordjeVuckovic/comment-rank/internal/eval/runner"
	"github.com/DjordjeVuckovic/comment-rank/internal/eval/source"
	"github.com/DjordjeVuckovic/comment-rank/internal/eval/spec"
	"github.com/DjordjeVuckovic/comment-rank/pkg/config/env"
)

func main() {
	cfg := parseFlags()

	lvl, err := cfg.logLevel()
	if err != nil {
		slog.Error("Invalid flags", "error", err)
		os.Exit(1)
	}
	slog.SetLogLoggerLevel(lvl)

	if err := cfg.validate(); err != nil {
		slog.Error("Invalid flags", "error", err)
		os.Exit(1)
	}

	if err := env.LoadDotEnv(cfg.EnvPath); err != nil {
		slog.Error("Failed to load environment", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if failed := run(ctx, cfg); failed {
		os.Exit(1)
	}
}

// run returns true when the evaluation could not complete or any job failed.
func run(ctx context.Context, cfg cliConfig) bool {
	es, err := spec.LoadFromFile(cfg.SpecPath)
	if err != nil {
		slog.Error("Failed to load spec", "path", cfg.SpecPath, "error", err)
		return true
	}

	ds, err := source.Load(ctx, es)
	if err != nil {
		slog.Error("Failed to load dataset", "source", es.Dataset.Source, "error", err)
		return true
	}

	runCfg := cfg.apply(runner.ConfigFromSpec(es))
	result, err := runner.New(runCfg).Run(ctx, es, ds)
	if err != nil {
		slog.Error("Evaluation failed", "error", err)
		return true
	}

	rpt := report.Generate(result, report.DatasetInfo{
		Source:      es.Dataset.Source,
		Comments:    ds.Len(),
		Submissions: len(ds.Submissions()),
	})
	report.WriteTable(rpt, os.Stdout, cfg.PerSubmission)

	if cfg.Output != "" {
		if err := report.WriteJSON(rpt, cfg.Output); err != nil {
			slog.Error("Failed to write JSON report", "error", err)
			return true
		}
		slog.Info("Report written", "path", cfg.Output)
	}

	if n := result.Failed(); n > 0 {
		slog.Error("Some jobs failed", "failed", n, "total", len(result.Jobs))
		return true
	}
	return false
}
