package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/DjordjeVuckovic/comment-rank/internal/dataset"
	"github.com/DjordjeVuckovic/comment-rank/internal/eval/spec"
	"github.com/DjordjeVuckovic/comment-rank/internal/ranking"
)

type Runner struct {
	config Config
}

func New(cfg Config) *Runner {
	return &Runner{config: cfg}
}

// Run evaluates every job of s against ds. A failing job is recorded on its
// JobResult and the remaining jobs still run; only cancellation aborts.
func (r *Runner) Run(ctx context.Context, s *spec.EvalSpec, ds *dataset.Dataset) (*EvalResult, error) {
	er := &EvalResult{Name: s.Name, Config: r.config}

	for _, job := range s.Jobs {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("run job %q: %w", job.Name, err)
		}

		jr := r.RunJob(ctx, job, ds)
		er.Jobs = append(er.Jobs, jr)

		if jr.Error != nil {
			slog.Warn("job failed", "job", job.Name, "error", jr.Error)
			continue
		}
		slog.Info("job finished",
			"job", job.Name,
			"evaluated", jr.Result.Evaluated,
			"skipped", jr.Result.Skipped,
			"duration", jr.Duration,
		)
	}

	return er, nil
}

func (r *Runner) RunJob(ctx context.Context, job spec.Job, ds *dataset.Dataset) JobResult {
	jr := JobResult{
		JobName:     job.Name,
		Target:      job.Target,
		ResultLabel: job.ResultLabel,
	}

	fav, err := ranking.ByName(job.Favorability)
	if err != nil {
		jr.Error = err
		return jr
	}
	jr.Favorability = fav.Name()

	e, err := ranking.NewEvaluator(r.config.K,
		ranking.WithFavorability(fav),
		ranking.WithWorkers(r.config.Workers),
	)
	if err != nil {
		jr.Error = err
		return jr
	}

	start := time.Now()
	res, err := e.Evaluate(ctx, ds, job.Target, job.ResultLabel)
	jr.Duration = time.Since(start)
	if err != nil {
		jr.Error = fmt.Errorf("evaluate: %w", err)
		return jr
	}
	jr.Result = res

	return jr
}
