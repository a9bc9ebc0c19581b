package reader

import (
	"io"

	"github.com/DjordjeVuckovic/comment-rank/internal/apperr"
	"gopkg.in/yaml.v3"
)

const (
	DefaultSubmissionColumn = "sid"
	DefaultIDColumn         = "com_id"
)

// Mapping names the identifier columns of a comments table. Numeric columns
// are requested by the caller at load time.
type Mapping struct {
	SubmissionColumn string `yaml:"submission_id"`
	IDColumn         string `yaml:"comment_id"`
}

func DefaultMapping() Mapping {
	return Mapping{
		SubmissionColumn: DefaultSubmissionColumn,
		IDColumn:         DefaultIDColumn,
	}
}

// WithDefaults fills empty fields from DefaultMapping.
func (m Mapping) WithDefaults() Mapping {
	d := DefaultMapping()
	if m.SubmissionColumn == "" {
		m.SubmissionColumn = d.SubmissionColumn
	}
	if m.IDColumn == "" {
		m.IDColumn = d.IDColumn
	}
	return m
}

func (m Mapping) Validate() error {
	if m.SubmissionColumn == "" {
		return apperr.NewFieldValidation("submission_id", "mapping column is required", nil)
	}
	if m.SubmissionColumn == m.IDColumn {
		return apperr.NewFieldValidation("comment_id", "must differ from submission_id", nil)
	}
	return nil
}

// LoadMapping decodes a YAML mapping document. Missing fields take their
// defaults.
func LoadMapping(r io.Reader) (Mapping, error) {
	var m Mapping
	if err := yaml.NewDecoder(r).Decode(&m); err != nil && err != io.EOF {
		return Mapping{}, apperr.NewValidationWrap("decode mapping", err)
	}
	m = m.WithDefaults()
	if err := m.Validate(); err != nil {
		return Mapping{}, err
	}
	return m, nil
}
