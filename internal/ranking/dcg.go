package ranking

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// DiscountedGain returns the cumulative discounted gain at every cutoff
// 1..k. The item at 1-based position i contributes score/log2(1+i). Scores
// beyond k are ignored; a list shorter than k repeats its last cumulative
// value up to k.
func DiscountedGain(scores []float64, k int) ([]float64, error) {
	if k <= 0 {
		return nil, ErrInvalidCutoff
	}
	if len(scores) == 0 {
		return nil, ErrEmptyGains
	}

	n := min(len(scores), k)

	discounted := make([]float64, n)
	for i := range n {
		discounted[i] = scores[i] / math.Log2(float64(i+2))
	}

	out := make([]float64, k)
	floats.CumSum(out[:n], discounted)

	last := out[n-1]
	for i := n; i < k; i++ {
		out[i] = last
	}

	return out, nil
}
