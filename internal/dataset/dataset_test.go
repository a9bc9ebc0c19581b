package dataset

import (
	"errors"
	"math"
	"testing"

	"github.com/DjordjeVuckovic/comment-rank/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDataset(t *testing.T) *Dataset {
	t.Helper()

	ds, err := New("score", "pred")
	require.NoError(t, err)

	rows := []Record{
		{ID: "c1", SubmissionID: "s1", Values: []float64{10, 0.2}},
		{ID: "c2", SubmissionID: "s2", Values: []float64{3, 0.9}},
		{ID: "c3", SubmissionID: "s1", Values: []float64{5, 0.7}},
		{ID: "c4", SubmissionID: "s1", Values: []float64{1, 0.1}},
	}
	for _, r := range rows {
		require.NoError(t, ds.Add(r))
	}
	return ds
}

func TestNew(t *testing.T) {
	t.Run("columns in order", func(t *testing.T) {
		ds, err := New("score", "pred")
		require.NoError(t, err)
		assert.Equal(t, []string{"score", "pred"}, ds.Columns())
	})

	t.Run("duplicate column", func(t *testing.T) {
		_, err := New("score", "score")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrDuplicateColumn))
	})
}

func TestDataset_Column(t *testing.T) {
	ds := newTestDataset(t)

	col, err := ds.Column("pred")
	require.NoError(t, err)
	assert.Equal(t, Column{Index: 1, Name: "pred"}, col)

	_, err = ds.Column("gilded")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownColumn))

	var ve *apperr.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "gilded", ve.Field)
}

func TestDataset_Add(t *testing.T) {
	ds, err := New("score")
	require.NoError(t, err)

	err = ds.Add(Record{ID: "c1", SubmissionID: "s1", Values: []float64{1, 2}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValueCount))
	assert.Equal(t, 0, ds.Len())
	assert.Empty(t, ds.Submissions())
}

func TestDataset_Add_CopiesValues(t *testing.T) {
	ds, err := New("score")
	require.NoError(t, err)

	values := []float64{4}
	require.NoError(t, ds.Add(Record{ID: "c1", SubmissionID: "s1", Values: values}))
	values[0] = 99

	col, _ := ds.Column("score")
	assert.Equal(t, 4.0, ds.Index().Group("s1").Value(0, col))
}

func TestDataset_Submissions(t *testing.T) {
	ds := newTestDataset(t)
	ds.AddSubmission("s3")
	ds.AddSubmission("s1")

	assert.Equal(t, []string{"s1", "s2", "s3"}, ds.Submissions())
}

func TestDataset_Index(t *testing.T) {
	ds := newTestDataset(t)
	ds.AddSubmission("empty")

	ix := ds.Index()
	assert.Equal(t, 3, ix.Len())
	assert.Equal(t, []string{"s1", "s2", "empty"}, ix.Submissions())

	score, err := ds.Column("score")
	require.NoError(t, err)

	g := ix.Group("s1")
	assert.Equal(t, "s1", g.SubmissionID)
	assert.Equal(t, 3, g.Len())
	assert.Equal(t, []float64{10, 5, 1}, g.Values(score))
	assert.Equal(t, "c3", g.Record(1).ID)

	assert.True(t, ix.Group("empty").Empty())
	assert.True(t, ix.Group("missing").Empty())
}

func TestDataset_Index_Snapshot(t *testing.T) {
	ds := newTestDataset(t)
	ix := ds.Index()

	require.NoError(t, ds.Add(Record{ID: "c5", SubmissionID: "s1", Values: []float64{0, 0}}))

	assert.Equal(t, 3, ix.Group("s1").Len())
	assert.Equal(t, 4, ds.Index().Group("s1").Len())
}

func TestDataset_Validate(t *testing.T) {
	ds := newTestDataset(t)
	score, _ := ds.Column("score")
	pred, _ := ds.Column("pred")

	require.NoError(t, ds.Validate(score, pred))

	require.NoError(t, ds.Add(Record{ID: "bad", SubmissionID: "s2", Values: []float64{1, math.NaN()}}))
	assert.NoError(t, ds.Validate(score))

	err := ds.Validate(score, pred)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNonFinite))
	assert.Contains(t, err.Error(), `"bad"`)
}
