// Package ranking scores a predicted comment ordering against the true one
// with Normalized Discounted Cumulative Gain, averaged over submissions.
package ranking

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/comment-rank/internal/apperr"
	"github.com/DjordjeVuckovic/comment-rank/internal/dataset"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
)

type Evaluator struct {
	k       int
	fav     Favorability
	workers int
}

type Option func(*Evaluator)

// WithFavorability replaces the default Linear strategy.
func WithFavorability(f Favorability) Option {
	return func(e *Evaluator) {
		if f != nil {
			e.fav = f
		}
	}
}

// WithWorkers scores submissions on n goroutines. Values below 2 keep the
// evaluation sequential.
func WithWorkers(n int) Option {
	return func(e *Evaluator) {
		e.workers = max(n, 1)
	}
}

func NewEvaluator(k int, opts ...Option) (*Evaluator, error) {
	if k <= 0 {
		return nil, apperr.NewFieldValidation("k", fmt.Sprintf("got %d", k), ErrInvalidCutoff)
	}

	e := &Evaluator{
		k:       k,
		fav:     Linear{},
		workers: 1,
	}
	for _, opt := range opts {
		opt(e)
	}

	return e, nil
}

func (e *Evaluator) K() int { return e.k }

func (e *Evaluator) Favorability() Favorability { return e.fav }

// NDCG evaluates ds with a one-off evaluator and returns the mean NDCG at
// every cutoff 1..k. A nil fav selects Linear.
func NDCG(ctx context.Context, ds *dataset.Dataset, k int, target, resultLabel string, fav Favorability) ([]float64, error) {
	e, err := NewEvaluator(k, WithFavorability(fav))
	if err != nil {
		return nil, err
	}

	res, err := e.Evaluate(ctx, ds, target, resultLabel)
	if err != nil {
		return nil, err
	}
	return res.Scores, nil
}

// Evaluate ranks every submission's comments on the target (true relevance)
// and resultLabel (predicted relevance) columns and averages the per
// submission NDCG vectors. Submissions without comments are skipped and do
// not count towards the mean.
func (e *Evaluator) Evaluate(ctx context.Context, ds *dataset.Dataset, target, resultLabel string) (*Result, error) {
	trueCol, err := ds.Column(target)
	if err != nil {
		return nil, fmt.Errorf("target column: %w", err)
	}
	predCol, err := ds.Column(resultLabel)
	if err != nil {
		return nil, fmt.Errorf("result label column: %w", err)
	}
	if err := ds.Validate(trueCol, predCol); err != nil {
		return nil, err
	}

	ix := ds.Index()
	subs := ix.Submissions()
	scored := make([]*SubmissionScore, len(subs))

	if e.workers > 1 {
		err = e.scoreParallel(ctx, ix, trueCol, predCol, scored)
	} else {
		err = e.scoreSequential(ctx, ix, trueCol, predCol, scored)
	}
	if err != nil {
		return nil, err
	}

	res := &Result{
		K:           e.k,
		Scores:      make([]float64, e.k),
		Submissions: len(subs),
	}

	for _, s := range scored {
		if s == nil {
			res.Skipped++
			continue
		}
		floats.Add(res.Scores, s.NDCG)
		res.PerSubmission = append(res.PerSubmission, *s)
	}

	res.Evaluated = res.Submissions - res.Skipped
	if res.Evaluated == 0 {
		return nil, fmt.Errorf("%w: %d submissions, all without comments", ErrNoEvaluableSubmissions, res.Submissions)
	}
	floats.Scale(1/float64(res.Evaluated), res.Scores)

	slog.Debug("NDCG evaluation finished",
		"favorability", e.fav.Name(),
		"k", e.k,
		"submissions", res.Submissions,
		"skipped", res.Skipped,
		"ndcg", res.At(e.k),
	)

	return res, nil
}

func (e *Evaluator) scoreSequential(
	ctx context.Context,
	ix *dataset.Index,
	trueCol, predCol dataset.Column,
	scored []*SubmissionScore,
) error {
	for i, id := range ix.Submissions() {
		if err := ctx.Err(); err != nil {
			return err
		}

		g := ix.Group(id)
		if g.Empty() {
			continue
		}

		s, err := e.scoreGroup(g, trueCol, predCol)
		if err != nil {
			return err
		}
		scored[i] = s
	}
	return nil
}

// scoreParallel writes every submission into its own slot of scored; the
// caller sums the slots in submission order, so the result matches the
// sequential path exactly.
func (e *Evaluator) scoreParallel(
	ctx context.Context,
	ix *dataset.Index,
	trueCol, predCol dataset.Column,
	scored []*SubmissionScore,
) error {
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(e.workers)

	for i, id := range ix.Submissions() {
		g := ix.Group(id)
		if g.Empty() {
			continue
		}

		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			s, err := e.scoreGroup(g, trueCol, predCol)
			if err != nil {
				return err
			}
			scored[i] = s
			return nil
		})
	}

	return eg.Wait()
}

// scoreGroup computes NDCG@1..k for one non-empty submission. Both
// favorability sequences are read in the ideal order, i.e. sorted by the
// true-relevance rank.
func (e *Evaluator) scoreGroup(g dataset.Group, trueCol, predCol dataset.Column) (*SubmissionScore, error) {
	n := g.Len()

	pred, err := e.annotate(g, predCol)
	if err != nil {
		return nil, err
	}
	ideal, err := e.annotate(g, trueCol)
	if err != nil {
		return nil, err
	}

	order := make([]int, n)
	for pos, r := range ideal.Ranks {
		order[r-1] = pos
	}

	predGain := make([]float64, n)
	idealGain := make([]float64, n)
	for i, pos := range order {
		predGain[i] = pred.Favorability[pos]
		idealGain[i] = ideal.Favorability[pos]
	}

	dcg, err := DiscountedGain(predGain, e.k)
	if err != nil {
		return nil, fmt.Errorf("submission %q: %w", g.SubmissionID, err)
	}
	idcg, err := DiscountedGain(idealGain, e.k)
	if err != nil {
		return nil, fmt.Errorf("submission %q: %w", g.SubmissionID, err)
	}

	for i, v := range idcg {
		if v == 0 {
			return nil, e.strategyError(g, fmt.Errorf("%w: ideal gain is zero at cutoff %d", ErrInvalidAnnotation, i+1))
		}
	}

	return &SubmissionScore{
		SubmissionID: g.SubmissionID,
		Comments:     n,
		NDCG:         floats.DivTo(make([]float64, e.k), dcg, idcg),
	}, nil
}

func (e *Evaluator) annotate(g dataset.Group, col dataset.Column) (Annotation, error) {
	a, err := e.fav.Annotate(g, col)
	if err != nil {
		return Annotation{}, e.strategyError(g, err)
	}
	if err := validateAnnotation(a, g.Len()); err != nil {
		return Annotation{}, e.strategyError(g, fmt.Errorf("column %q: %w", col.Name, err))
	}
	return a, nil
}

func (e *Evaluator) strategyError(g dataset.Group, err error) error {
	return apperr.NewValidationWrap(
		fmt.Sprintf("favorability %q on submission %q", e.fav.Name(), g.SubmissionID),
		err,
	)
}
