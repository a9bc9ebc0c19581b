package report

import (
	"runtime"
	"time"

	"github.com/DjordjeVuckovic/comment-rank/internal/ranking"
	"github.com/google/uuid"
)

type Report struct {
	Meta   EvalMeta     `json:"meta"`
	Jobs   []JobReport  `json:"jobs"`
	Config ReportConfig `json:"config"`
}

type EvalMeta struct {
	RunID       uuid.UUID       `json:"run_id"`
	Name        string          `json:"name,omitempty"`
	Timestamp   time.Time       `json:"timestamp"`
	Dataset     DatasetInfo     `json:"dataset"`
	Environment EnvironmentInfo `json:"environment"`
}

type DatasetInfo struct {
	Source      string `json:"source"`
	Comments    int    `json:"comments"`
	Submissions int    `json:"submissions"`
}

type EnvironmentInfo struct {
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
	NumCPU    int    `json:"num_cpu"`
}

func NewEnvironmentInfo() EnvironmentInfo {
	return EnvironmentInfo{
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		NumCPU:    runtime.NumCPU(),
	}
}

type ReportConfig struct {
	K       int   `json:"k"`
	KValues []int `json:"k_values"`
	Workers int   `json:"workers"`
}

type JobReport struct {
	JobName      string          `json:"job"`
	Target       string          `json:"target"`
	ResultLabel  string          `json:"result_label"`
	Favorability string          `json:"favorability,omitempty"`
	NDCG         map[int]float64 `json:"ndcg,omitempty"` // mean NDCG at each reported k
	Scores       []float64       `json:"scores,omitempty"`
	Submissions  int             `json:"submissions"`
	Evaluated    int             `json:"evaluated"`
	Skipped      int             `json:"skipped"`
	Duration     time.Duration   `json:"duration_ns"`
	Error        string          `json:"error,omitempty"`

	PerSubmission []ranking.SubmissionScore `json:"per_submission,omitempty"`
}
