package report

import (
	"time"

	"github.com/DjordjeVuckovic/comment-rank/internal/eval/runner"
	"github.com/google/uuid"
)

func Generate(er *runner.EvalResult, ds DatasetInfo) *Report {
	r := &Report{
		Meta: EvalMeta{
			RunID:       uuid.New(),
			Name:        er.Name,
			Timestamp:   time.Now().UTC(),
			Dataset:     ds,
			Environment: NewEnvironmentInfo(),
		},
		Config: ReportConfig{
			K:       er.Config.K,
			KValues: er.Config.KValues,
			Workers: er.Config.Workers,
		},
	}

	for _, jr := range er.Jobs {
		r.Jobs = append(r.Jobs, jobReport(jr, er.Config.KValues))
	}

	return r
}

func jobReport(jr runner.JobResult, kValues []int) JobReport {
	entry := JobReport{
		JobName:      jr.JobName,
		Target:       jr.Target,
		ResultLabel:  jr.ResultLabel,
		Favorability: jr.Favorability,
		Duration:     jr.Duration,
	}
	if jr.Error != nil {
		entry.Error = jr.Error.Error()
		return entry
	}

	res := jr.Result
	entry.Scores = res.Scores
	entry.Submissions = res.Submissions
	entry.Evaluated = res.Evaluated
	entry.Skipped = res.Skipped
	entry.PerSubmission = res.PerSubmission

	entry.NDCG = make(map[int]float64, len(kValues))
	for _, k := range kValues {
		entry.NDCG[k] = res.At(k)
	}

	return entry
}
