package pg

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/DjordjeVuckovic/comment-rank/internal/apperr"
	"github.com/DjordjeVuckovic/comment-rank/internal/dataset"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	DefaultSubmissionsTable = "submissions"
	DefaultCommentsTable    = "comments"
	DefaultSubmissionColumn = "sub_id"
	DefaultIDColumn         = "com_id"
)

// LoadOptions selects the tables and columns to read. Table names may be
// schema qualified ("public.comments").
type LoadOptions struct {
	SubmissionsTable string
	CommentsTable    string
	SubmissionColumn string
	IDColumn         string
	Columns          []string
}

func (o LoadOptions) withDefaults() LoadOptions {
	if o.SubmissionsTable == "" {
		o.SubmissionsTable = DefaultSubmissionsTable
	}
	if o.CommentsTable == "" {
		o.CommentsTable = DefaultCommentsTable
	}
	if o.SubmissionColumn == "" {
		o.SubmissionColumn = DefaultSubmissionColumn
	}
	if o.IDColumn == "" {
		o.IDColumn = DefaultIDColumn
	}
	return o
}

type CommentReader struct {
	db *pgxpool.Pool
}

func NewCommentReader(pool *ConnectionPool) *CommentReader {
	return &CommentReader{db: pool.conn}
}

// Load reads every submission with its comments into a dataset. Submissions
// without comments are registered as empty groups. A NULL in a requested
// column is a validation error.
func (r *CommentReader) Load(ctx context.Context, opts LoadOptions) (*dataset.Dataset, error) {
	opts = opts.withDefaults()
	if len(opts.Columns) == 0 {
		return nil, apperr.NewValidation("at least one numeric column is required")
	}

	ds, err := dataset.New(opts.Columns...)
	if err != nil {
		return nil, err
	}

	query := buildLoadQuery(opts)
	slog.Info("Loading comments from postgres", "comments_table", opts.CommentsTable, "columns", opts.Columns)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to execute load query: %w", err)
	}
	defer rows.Close()

	var (
		sid   string
		comID *string
		vals  = make([]*float64, len(opts.Columns))
		dest  = make([]any, 0, len(opts.Columns)+2)
	)
	dest = append(dest, &sid, &comID)
	for i := range vals {
		dest = append(dest, &vals[i])
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}

		if comID == nil {
			ds.AddSubmission(sid)
			continue
		}

		values := make([]float64, len(vals))
		for i, v := range vals {
			if v == nil {
				return nil, apperr.NewFieldValidation(
					opts.Columns[i],
					fmt.Sprintf("comment %q of submission %q is NULL", *comID, sid),
					nil,
				)
			}
			values[i] = *v
		}

		if err := ds.Add(dataset.Record{ID: *comID, SubmissionID: sid, Values: values}); err != nil {
			return nil, err
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	slog.Info("Loaded comments", "comments", ds.Len(), "submissions", len(ds.Submissions()))
	return ds, nil
}

// buildLoadQuery joins submissions with their comments. The full outer join
// keeps submissions without comments as well as comments whose submission
// row is missing. Comments are ordered by id within a submission so that
// ties on relevance break the same way on every run.
func buildLoadQuery(opts LoadOptions) string {
	sub := ident(opts.SubmissionColumn)

	cols := make([]string, 0, len(opts.Columns)+2)
	cols = append(cols,
		fmt.Sprintf("COALESCE(s.%s, c.%s)::text", sub, sub),
		fmt.Sprintf("c.%s::text", ident(opts.IDColumn)),
	)
	for _, c := range opts.Columns {
		cols = append(cols, fmt.Sprintf("c.%s::double precision", ident(c)))
	}

	return fmt.Sprintf(
		"SELECT %s FROM %s s FULL OUTER JOIN %s c ON c.%s = s.%s ORDER BY 1, 2 NULLS FIRST",
		strings.Join(cols, ", "),
		ident(opts.SubmissionsTable),
		ident(opts.CommentsTable),
		sub, sub,
	)
}

func ident(name string) string {
	return pgx.Identifier(strings.Split(name, ".")).Sanitize()
}
