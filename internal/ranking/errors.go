package ranking

import "errors"

var (
	// ErrNoEvaluableSubmissions is returned when every submission in the
	// dataset has zero comments, leaving nothing to average over.
	ErrNoEvaluableSubmissions = errors.New("no evaluable submissions")

	ErrInvalidAnnotation   = errors.New("invalid favorability annotation")
	ErrUnknownFavorability = errors.New("unknown favorability strategy")
	ErrEmptyGains          = errors.New("empty gain sequence")
	ErrInvalidCutoff       = errors.New("cutoff k must be positive")
)
