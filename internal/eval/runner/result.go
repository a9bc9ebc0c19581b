package runner

import (
	"time"

	"github.com/DjordjeVuckovic/comment-rank/internal/ranking"
)

type JobResult struct {
	JobName      string
	Target       string
	ResultLabel  string
	Favorability string
	Result       *ranking.Result
	Duration     time.Duration
	Error        error
}

type EvalResult struct {
	Name   string
	Jobs   []JobResult
	Config Config
}

// Failed counts jobs that produced no result.
func (er *EvalResult) Failed() int {
	n := 0
	for _, jr := range er.Jobs {
		if jr.Error != nil {
			n++
		}
	}
	return n
}
