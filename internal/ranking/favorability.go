package ranking

import (
	"fmt"
	"math"
	"slices"

	"github.com/DjordjeVuckovic/comment-rank/internal/apperr"
	"github.com/DjordjeVuckovic/comment-rank/internal/dataset"
)

// Annotation is the ranking of one group on one column. Both slices are
// indexed by the comment's position in the group (input order).
type Annotation struct {
	Ranks        []int     // 1-based rank after a descending sort
	Favorability []float64 // gain used for discounted cumulative gain
}

// Favorability turns a comment group and a relevance column into ranks and
// favorability scores. Implementations must not mutate the group.
type Favorability interface {
	Name() string
	Annotate(g dataset.Group, col dataset.Column) (Annotation, error)
}

const (
	LinearName      = "linear"
	LogarithmicName = "log"
)

// Linear scores a comment as n - rank + 1, so the top comment gets n and
// the bottom one gets 1.
type Linear struct{}

func (Linear) Name() string { return LinearName }

func (Linear) Annotate(g dataset.Group, col dataset.Column) (Annotation, error) {
	n := g.Len()
	ranks := RankDescending(g.Values(col))

	fav := make([]float64, n)
	for i, r := range ranks {
		fav[i] = float64(n - r + 1)
	}

	return Annotation{Ranks: ranks, Favorability: fav}, nil
}

// Logarithmic flattens the linear scale: log2(n - rank + 2). The bottom
// comment scores 1, the top one log2(n+1).
type Logarithmic struct{}

func (Logarithmic) Name() string { return LogarithmicName }

func (Logarithmic) Annotate(g dataset.Group, col dataset.Column) (Annotation, error) {
	n := g.Len()
	ranks := RankDescending(g.Values(col))

	fav := make([]float64, n)
	for i, r := range ranks {
		fav[i] = math.Log2(float64(n - r + 2))
	}

	return Annotation{Ranks: ranks, Favorability: fav}, nil
}

// ByName looks up a built-in strategy. An empty name selects Linear.
func ByName(name string) (Favorability, error) {
	switch name {
	case "", LinearName:
		return Linear{}, nil
	case LogarithmicName:
		return Logarithmic{}, nil
	default:
		return nil, apperr.NewFieldValidation(name, "favorability", ErrUnknownFavorability)
	}
}

// RankDescending returns the 1-based rank of every value when sorted in
// descending order. Ties keep their input order.
func RankDescending(values []float64) []int {
	order := make([]int, len(values))
	for i := range order {
		order[i] = i
	}

	slices.SortStableFunc(order, func(a, b int) int {
		switch {
		case values[a] > values[b]:
			return -1
		case values[a] < values[b]:
			return 1
		default:
			return 0
		}
	})

	ranks := make([]int, len(values))
	for pos, idx := range order {
		ranks[idx] = pos + 1
	}
	return ranks
}

func validateAnnotation(a Annotation, n int) error {
	if len(a.Ranks) != n {
		return fmt.Errorf("%w: %d ranks for %d comments", ErrInvalidAnnotation, len(a.Ranks), n)
	}
	if len(a.Favorability) != n {
		return fmt.Errorf("%w: %d favorability scores for %d comments", ErrInvalidAnnotation, len(a.Favorability), n)
	}

	seen := make([]bool, n+1)
	for i, r := range a.Ranks {
		if r < 1 || r > n {
			return fmt.Errorf("%w: rank %d at position %d outside 1..%d", ErrInvalidAnnotation, r, i, n)
		}
		if seen[r] {
			return fmt.Errorf("%w: rank %d assigned twice", ErrInvalidAnnotation, r)
		}
		seen[r] = true
	}

	for i, f := range a.Favorability {
		if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
			return fmt.Errorf("%w: favorability %v at position %d", ErrInvalidAnnotation, f, i)
		}
	}

	return nil
}
