// Package dataset holds comment records in a flat arena together with the
// submission index used to group them for evaluation.
package dataset

import (
	"fmt"
	"math"

	"github.com/DjordjeVuckovic/comment-rank/internal/apperr"
)

type Dataset struct {
	columns  []string
	colIndex map[string]int

	records []Record

	// submissions in first-appearance order, including ids registered
	// without any comment.
	submissions []string
	seen        map[string]struct{}
}

func New(columns ...string) (*Dataset, error) {
	ds := &Dataset{
		columns:  make([]string, 0, len(columns)),
		colIndex: make(map[string]int, len(columns)),
		seen:     make(map[string]struct{}),
	}

	for _, c := range columns {
		if _, ok := ds.colIndex[c]; ok {
			return nil, apperr.NewFieldValidation(c, "register column", ErrDuplicateColumn)
		}
		ds.colIndex[c] = len(ds.columns)
		ds.columns = append(ds.columns, c)
	}

	return ds, nil
}

func (ds *Dataset) Columns() []string {
	out := make([]string, len(ds.columns))
	copy(out, ds.columns)
	return out
}

// Column resolves a column by name.
func (ds *Dataset) Column(name string) (Column, error) {
	idx, ok := ds.colIndex[name]
	if !ok {
		return Column{}, apperr.NewFieldValidation(name, "resolve column", ErrUnknownColumn)
	}
	return Column{Index: idx, Name: name}, nil
}

// AddSubmission registers a submission id. Submissions that never receive a
// comment form empty groups.
func (ds *Dataset) AddSubmission(id string) {
	if _, ok := ds.seen[id]; ok {
		return
	}
	ds.seen[id] = struct{}{}
	ds.submissions = append(ds.submissions, id)
}

func (ds *Dataset) Add(r Record) error {
	if len(r.Values) != len(ds.columns) {
		return apperr.NewValidationWrap(
			fmt.Sprintf("comment %q has %d values, want %d", r.ID, len(r.Values), len(ds.columns)),
			ErrValueCount,
		)
	}

	values := make([]float64, len(r.Values))
	copy(values, r.Values)
	r.Values = values

	ds.AddSubmission(r.SubmissionID)
	ds.records = append(ds.records, r)
	return nil
}

func (ds *Dataset) Len() int {
	return len(ds.records)
}

func (ds *Dataset) Submissions() []string {
	out := make([]string, len(ds.submissions))
	copy(out, ds.submissions)
	return out
}

// Validate rejects NaN and infinite values in the given columns, since
// ranking on them is undefined.
func (ds *Dataset) Validate(cols ...Column) error {
	for _, col := range cols {
		for _, r := range ds.records {
			v := r.Values[col.Index]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return apperr.NewFieldValidation(
					col.Name,
					fmt.Sprintf("comment %q of submission %q has value %v", r.ID, r.SubmissionID, v),
					ErrNonFinite,
				)
			}
		}
	}
	return nil
}

// Index groups the records by submission. It is a snapshot: records added
// afterwards are not visible through it.
func (ds *Dataset) Index() *Index {
	groups := make(map[string][]int, len(ds.submissions))
	for _, id := range ds.submissions {
		groups[id] = nil
	}
	for i, r := range ds.records {
		groups[r.SubmissionID] = append(groups[r.SubmissionID], i)
	}

	order := make([]string, len(ds.submissions))
	copy(order, ds.submissions)

	return &Index{ds: ds, order: order, groups: groups}
}

type Index struct {
	ds     *Dataset
	order  []string
	groups map[string][]int
}

// Submissions returns the distinct submission ids in first-appearance order.
func (ix *Index) Submissions() []string {
	return ix.order
}

func (ix *Index) Len() int {
	return len(ix.order)
}

// Group returns the comments of a submission. Unknown ids yield an empty group.
func (ix *Index) Group(submissionID string) Group {
	return Group{SubmissionID: submissionID, ds: ix.ds, indices: ix.groups[submissionID]}
}
