package reader

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/DjordjeVuckovic/comment-rank/internal/apperr"
	"github.com/DjordjeVuckovic/comment-rank/internal/dataset"
)

// ToDataset maps CSV rows into a dataset holding the requested numeric
// columns. A requested column missing from headers, or a value that does not
// parse as a number, is a validation error. When the comment id column is
// absent the 1-based row number is used instead.
func ToDataset(rows []map[string]string, headers []string, m Mapping, columns []string) (*dataset.Dataset, error) {
	m = m.WithDefaults()
	if err := m.Validate(); err != nil {
		return nil, err
	}

	if !slices.Contains(headers, m.SubmissionColumn) {
		return nil, apperr.NewFieldValidation(m.SubmissionColumn, "submission column not in csv header", dataset.ErrUnknownColumn)
	}
	for _, c := range columns {
		if !slices.Contains(headers, c) {
			return nil, apperr.NewFieldValidation(c, "numeric column not in csv header", dataset.ErrUnknownColumn)
		}
	}
	hasID := slices.Contains(headers, m.IDColumn)

	ds, err := dataset.New(columns...)
	if err != nil {
		return nil, err
	}

	for i, row := range rows {
		line := i + 1

		sid := strings.TrimSpace(row[m.SubmissionColumn])
		if sid == "" {
			return nil, apperr.NewFieldValidation(m.SubmissionColumn, fmt.Sprintf("row %d has an empty submission id", line), nil)
		}

		id := strconv.Itoa(line)
		if hasID {
			id = row[m.IDColumn]
		}

		values := make([]float64, len(columns))
		for j, c := range columns {
			v, err := strconv.ParseFloat(strings.TrimSpace(row[c]), 64)
			if err != nil {
				return nil, apperr.NewFieldValidation(c, fmt.Sprintf("row %d is not numeric", line), err)
			}
			values[j] = v
		}

		if err := ds.Add(dataset.Record{ID: id, SubmissionID: sid, Values: values}); err != nil {
			return nil, err
		}
	}

	return ds, nil
}

// RegisterSubmissions adds every submission id of a submissions table to ds,
// so submissions without comments show up as empty groups.
func RegisterSubmissions(ds *dataset.Dataset, rows []map[string]string, headers []string, column string) error {
	if !slices.Contains(headers, column) {
		return apperr.NewFieldValidation(column, "submission column not in csv header", dataset.ErrUnknownColumn)
	}

	for _, row := range rows {
		if sid := strings.TrimSpace(row[column]); sid != "" {
			ds.AddSubmission(sid)
		}
	}
	return nil
}
