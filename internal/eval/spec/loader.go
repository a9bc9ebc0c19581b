package spec

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/DjordjeVuckovic/comment-rank/internal/ranking"
	"gopkg.in/yaml.v3"
)

func LoadFromFile(path string) (*EvalSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spec file: %w", err)
	}

	s, err := Parse(data)
	if err != nil {
		return nil, err
	}
	s.Dir = filepath.Dir(path)
	return s, nil
}

func Parse(data []byte) (*EvalSpec, error) {
	var s EvalSpec
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse spec YAML: %w", err)
	}
	if err := validate(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Resolve makes a dataset path absolute relative to the directory of the spec file.
func (s *EvalSpec) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || s.Dir == "" {
		return path
	}
	return filepath.Join(s.Dir, path)
}

var validSources = map[string]bool{
	SourceCSV:      true,
	SourcePostgres: true,
}

func validate(s *EvalSpec) error {
	if len(s.Jobs) == 0 {
		return fmt.Errorf("spec has no jobs")
	}

	names := make(map[string]bool, len(s.Jobs))
	for i, j := range s.Jobs {
		if j.Name == "" {
			return fmt.Errorf("job at index %d has no name", i)
		}
		if names[j.Name] {
			return fmt.Errorf("duplicate job name %q", j.Name)
		}
		names[j.Name] = true

		if j.Target == "" {
			return fmt.Errorf("job %q has no target", j.Name)
		}
		if j.ResultLabel == "" {
			return fmt.Errorf("job %q has no result_label", j.Name)
		}
		if _, err := ranking.ByName(j.Favorability); err != nil {
			return fmt.Errorf("job %q: %w", j.Name, err)
		}
	}

	if s.Dataset.Source == "" {
		s.Dataset.Source = SourceCSV
	}
	if !validSources[s.Dataset.Source] {
		return fmt.Errorf("dataset has invalid source %q", s.Dataset.Source)
	}
	if s.Dataset.Source == SourceCSV && s.Dataset.Comments == "" {
		return fmt.Errorf("csv dataset has no comments file")
	}

	if s.Metrics.K < 0 {
		return fmt.Errorf("metrics k must be positive, got %d", s.Metrics.K)
	}
	if s.Metrics.K == 0 {
		s.Metrics.K = DefaultK
	}
	if len(s.Metrics.KValues) == 0 {
		s.Metrics.KValues = []int{s.Metrics.K}
	}
	for _, k := range s.Metrics.KValues {
		if k < 1 || k > s.Metrics.K {
			return fmt.Errorf("k value %d outside 1..%d", k, s.Metrics.K)
		}
	}
	if s.Metrics.Workers <= 0 {
		s.Metrics.Workers = DefaultWorkers
	}

	return nil
}
