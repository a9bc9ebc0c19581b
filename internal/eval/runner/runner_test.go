package runner

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/DjordjeVuckovic/comment-rank/internal/dataset"
	"github.com/DjordjeVuckovic/comment-rank/internal/eval/spec"
	"github.com/DjordjeVuckovic/comment-rank/internal/ranking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New("score", "pred_score", "perfect")
	require.NoError(t, err)

	records := []dataset.Record{
		{ID: "c1", SubmissionID: "s1", Values: []float64{10, 0.5, 3}},
		{ID: "c2", SubmissionID: "s1", Values: []float64{5, 0.9, 2}},
		{ID: "c3", SubmissionID: "s1", Values: []float64{1, 0.1, 1}},
	}
	for _, r := range records {
		require.NoError(t, ds.Add(r))
	}
	ds.AddSubmission("s2")
	return ds
}

func TestRun(t *testing.T) {
	s := &spec.EvalSpec{
		Name: "comments",
		Jobs: []spec.Job{
			{Name: "model", Target: "score", ResultLabel: "pred_score"},
			{Name: "oracle", Target: "score", ResultLabel: "perfect", Favorability: "log"},
		},
	}

	er, err := New(Config{K: 3, KValues: []int{1, 3}, Workers: 2}).Run(context.Background(), s, testDataset(t))
	require.NoError(t, err)

	assert.Equal(t, "comments", er.Name)
	require.Len(t, er.Jobs, 2)
	assert.Zero(t, er.Failed())

	model := er.Jobs[0]
	assert.Equal(t, ranking.LinearName, model.Favorability)
	require.NotNil(t, model.Result)
	assert.Equal(t, 1, model.Result.Evaluated)
	assert.Equal(t, 1, model.Result.Skipped)
	assert.InDelta(t, 2.0/3.0, model.Result.At(1), 1e-12)

	want := (2 + 3/math.Log2(3) + 0.5) / (3 + 2/math.Log2(3) + 0.5)
	assert.InDelta(t, want, model.Result.At(3), 1e-12)

	oracle := er.Jobs[1]
	assert.Equal(t, ranking.LogarithmicName, oracle.Favorability)
	for _, v := range oracle.Result.Scores {
		assert.InDelta(t, 1.0, v, 1e-12)
	}
}

func TestRun_JobFailureDoesNotStopRun(t *testing.T) {
	s := &spec.EvalSpec{
		Jobs: []spec.Job{
			{Name: "broken", Target: "score", ResultLabel: "missing"},
			{Name: "unknown-strategy", Target: "score", ResultLabel: "pred_score", Favorability: "cubic"},
			{Name: "ok", Target: "score", ResultLabel: "pred_score"},
		},
	}

	er, err := New(DefaultConfig()).Run(context.Background(), s, testDataset(t))
	require.NoError(t, err)
	require.Len(t, er.Jobs, 3)
	assert.Equal(t, 2, er.Failed())

	assert.True(t, errors.Is(er.Jobs[0].Error, dataset.ErrUnknownColumn))
	assert.True(t, errors.Is(er.Jobs[1].Error, ranking.ErrUnknownFavorability))
	assert.NoError(t, er.Jobs[2].Error)
	assert.Len(t, er.Jobs[2].Result.Scores, spec.DefaultK)
}

func TestRun_NoEvaluableSubmissions(t *testing.T) {
	ds, err := dataset.New("score", "pred_score")
	require.NoError(t, err)
	ds.AddSubmission("s1")

	s := &spec.EvalSpec{Jobs: []spec.Job{{Name: "a", Target: "score", ResultLabel: "pred_score"}}}
	er, err := New(DefaultConfig()).Run(context.Background(), s, ds)
	require.NoError(t, err)
	assert.True(t, errors.Is(er.Jobs[0].Error, ranking.ErrNoEvaluableSubmissions))
	assert.Nil(t, er.Jobs[0].Result)
}

func TestRun_InvalidCutoff(t *testing.T) {
	s := &spec.EvalSpec{Jobs: []spec.Job{{Name: "a", Target: "score", ResultLabel: "pred_score"}}}
	er, err := New(Config{K: 0}).Run(context.Background(), s, testDataset(t))
	require.NoError(t, err)
	assert.True(t, errors.Is(er.Jobs[0].Error, ranking.ErrInvalidCutoff))
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := &spec.EvalSpec{Jobs: []spec.Job{{Name: "a", Target: "score", ResultLabel: "pred_score"}}}
	_, err := New(DefaultConfig()).Run(ctx, s, testDataset(t))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConfigFromSpec(t *testing.T) {
	s := &spec.EvalSpec{Metrics: spec.MetricsConfig{K: 5, KValues: []int{1, 5}, Workers: 3}}
	assert.Equal(t, Config{K: 5, KValues: []int{1, 5}, Workers: 3}, ConfigFromSpec(s))
}
