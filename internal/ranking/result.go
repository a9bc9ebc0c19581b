package ranking

// SubmissionScore is the NDCG vector of a single submission.
type SubmissionScore struct {
	SubmissionID string    `json:"submission_id"`
	Comments     int       `json:"comments"`
	NDCG         []float64 `json:"ndcg"`
}

type Result struct {
	K      int       `json:"k"`
	Scores []float64 `json:"scores"` // Scores[i] is the mean NDCG@(i+1)

	Submissions int `json:"submissions"` // distinct submission ids
	Evaluated   int `json:"evaluated"`
	Skipped     int `json:"skipped"` // submissions without comments

	PerSubmission []SubmissionScore `json:"per_submission,omitempty"`
}

// At returns the mean NDCG at cutoff k, or 0 when k is outside 1..K.
func (r *Result) At(k int) float64 {
	if k < 1 || k > len(r.Scores) {
		return 0
	}
	return r.Scores[k-1]
}
