package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"
)

// WriteTable prints the aggregated NDCG of every job. With perSubmission set
// each job is followed by its per submission breakdown at the largest
// reported k.
func WriteTable(r *Report, w io.Writer, perSubmission bool) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	title := "Comment Ranking NDCG"
	if r.Meta.Name != "" {
		title += ": " + r.Meta.Name
	}
	fmt.Fprintf(tw, "\n=== %s ===\n\n", title)
	fmt.Fprintf(tw, "Dataset: %s, %d comments across %d submissions\n\n",
		r.Meta.Dataset.Source, r.Meta.Dataset.Comments, r.Meta.Dataset.Submissions)

	writeAggregatedTable(tw, r)

	if perSubmission {
		for i := range r.Jobs {
			writePerSubmissionTable(tw, &r.Jobs[i], primaryK(r.Config.KValues))
		}
	}

	tw.Flush()
}

func writeAggregatedTable(tw *tabwriter.Writer, r *Report) {
	header := []string{"Job", "Target", "Result", "Favorability"}
	for _, k := range r.Config.KValues {
		header = append(header, fmt.Sprintf("NDCG@%d", k))
	}
	header = append(header, "Evaluated", "Skipped", "Time", "Status")
	writeHeader(tw, header)

	for _, jr := range r.Jobs {
		row := []string{jr.JobName, jr.Target, jr.ResultLabel, orDash(jr.Favorability)}
		for _, k := range r.Config.KValues {
			row = append(row, fmtScore(jr.NDCG, k))
		}
		status := "OK"
		if jr.Error != "" {
			status = "ERR: " + jr.Error
		}
		row = append(row,
			fmt.Sprintf("%d", jr.Evaluated),
			fmt.Sprintf("%d", jr.Skipped),
			fmtDuration(jr.Duration),
			status,
		)
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	fmt.Fprintln(tw)
}

func writePerSubmissionTable(tw *tabwriter.Writer, jr *JobReport, k int) {
	if len(jr.PerSubmission) == 0 {
		return
	}

	fmt.Fprintf(tw, "--- Job: %s ---\n\n", jr.JobName)
	writeHeader(tw, []string{"Submission", "Comments", "NDCG@1", fmt.Sprintf("NDCG@%d", k)})

	for _, s := range jr.PerSubmission {
		row := []string{
			s.SubmissionID,
			fmt.Sprintf("%d", s.Comments),
			fmtAt(s.NDCG, 1),
			fmtAt(s.NDCG, k),
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	fmt.Fprintln(tw)
}

func writeHeader(tw *tabwriter.Writer, header []string) {
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	fmt.Fprintln(tw, strings.Join(sep, "\t"))
}

func primaryK(kValues []int) int {
	if len(kValues) > 0 {
		return kValues[len(kValues)-1]
	}
	return 10
}

func fmtScore(scores map[int]float64, k int) string {
	if scores == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.4f", scores[k])
}

func fmtAt(ndcg []float64, k int) string {
	if k < 1 || k > len(ndcg) {
		return "N/A"
	}
	return fmt.Sprintf("%.4f", ndcg[k-1])
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func fmtDuration(d time.Duration) string {
	if d == 0 {
		return "-"
	}
	if d < time.Millisecond {
		return fmt.Sprintf("%.1fµs", float64(d.Nanoseconds())/1000)
	}
	if d < time.Second {
		return fmt.Sprintf("%.2fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}
