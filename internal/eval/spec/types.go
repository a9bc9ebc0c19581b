package spec

const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"

	DefaultK       = 10
	DefaultWorkers = 1
)

type EvalSpec struct {
	Name    string        `yaml:"name"`
	Dataset DatasetConfig `yaml:"dataset"`
	Metrics MetricsConfig `yaml:"metrics"`
	Jobs    []Job         `yaml:"jobs"`

	// Dir is the directory of the spec file; relative dataset paths
	// resolve against it.
	Dir string `yaml:"-"`
}

type DatasetConfig struct {
	Source string `yaml:"source"`

	// csv
	Comments    string        `yaml:"comments,omitempty"`
	Submissions string        `yaml:"submissions,omitempty"`
	Mapping     MappingConfig `yaml:"mapping,omitempty"`

	// postgres
	Connection       string `yaml:"connection,omitempty"`
	SubmissionsTable string `yaml:"submissions_table,omitempty"`
	CommentsTable    string `yaml:"comments_table,omitempty"`
}

type MappingConfig struct {
	SubmissionID string `yaml:"submission_id,omitempty"`
	CommentID    string `yaml:"comment_id,omitempty"`
}

type MetricsConfig struct {
	K       int   `yaml:"k"`
	KValues []int `yaml:"k_values"`
	Workers int   `yaml:"workers"`
}

// Job is one NDCG evaluation: the ground-truth column (target), the model
// output column (result_label) and the favorability strategy.
type Job struct {
	Name         string `yaml:"name"`
	Target       string `yaml:"target"`
	ResultLabel  string `yaml:"result_label"`
	Favorability string `yaml:"favorability,omitempty"`
}

// Columns returns the distinct numeric columns referenced by the jobs, in
// order of first use.
func (s *EvalSpec) Columns() []string {
	seen := make(map[string]bool)
	var cols []string
	for _, j := range s.Jobs {
		for _, c := range []string{j.Target, j.ResultLabel} {
			if !seen[c] {
				seen[c] = true
				cols = append(cols, c)
			}
		}
	}
	return cols
}
