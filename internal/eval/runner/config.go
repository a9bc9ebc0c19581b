package runner

import "github.com/DjordjeVuckovic/comment-rank/internal/eval/spec"

type Config struct {
	K       int
	KValues []int
	Workers int
}

func DefaultConfig() Config {
	return Config{
		K:       spec.DefaultK,
		KValues: []int{spec.DefaultK},
		Workers: spec.DefaultWorkers,
	}
}

// ConfigFromSpec takes the metrics block of an already validated spec.
func ConfigFromSpec(s *spec.EvalSpec) Config {
	return Config{
		K:       s.Metrics.K,
		KValues: s.Metrics.KValues,
		Workers: s.Metrics.Workers,
	}
}
