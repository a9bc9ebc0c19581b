package dataset

import "errors"

var (
	ErrUnknownColumn   = errors.New("unknown column")
	ErrDuplicateColumn = errors.New("duplicate column")
	ErrValueCount      = errors.New("value count does not match columns")
	ErrNonFinite       = errors.New("non-finite value")
)

// Record is one comment. Values holds one entry per dataset column, in
// column order.
type Record struct {
	ID           string
	SubmissionID string
	Values       []float64
}

// Column is a numeric column resolved against a Dataset.
type Column struct {
	Index int
	Name  string
}

// Group is the set of comments of one submission. It indexes into the
// dataset arena and never copies records.
type Group struct {
	SubmissionID string

	ds      *Dataset
	indices []int
}

func (g Group) Len() int {
	return len(g.indices)
}

func (g Group) Empty() bool {
	return len(g.indices) == 0
}

// Value returns the value of col for the i-th comment in input order.
func (g Group) Value(i int, col Column) float64 {
	return g.ds.records[g.indices[i]].Values[col.Index]
}

func (g Group) Record(i int) Record {
	return g.ds.records[g.indices[i]]
}

// Values copies the column values of the group in input order.
func (g Group) Values(col Column) []float64 {
	out := make([]float64, len(g.indices))
	for i, idx := range g.indices {
		out[i] = g.ds.records[idx].Values[col.Index]
	}
	return out
}
