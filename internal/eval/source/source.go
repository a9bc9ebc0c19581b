// Package source loads the comment dataset an evaluation spec points at.
package source

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/DjordjeVuckovic/comment-rank/internal/dataset"
	"github.com/DjordjeVuckovic/comment-rank/internal/eval/spec"
	"github.com/DjordjeVuckovic/comment-rank/internal/reader"
	"github.com/DjordjeVuckovic/comment-rank/internal/storage/pg"
)

// ConnStrEnv is consulted when a postgres dataset has no connection string.
const ConnStrEnv = "PG_CONN_STR"

func Load(ctx context.Context, s *spec.EvalSpec) (*dataset.Dataset, error) {
	switch s.Dataset.Source {
	case spec.SourceCSV:
		return loadCSV(s)
	case spec.SourcePostgres:
		return loadPostgres(ctx, s)
	default:
		return nil, fmt.Errorf("unsupported dataset source %q", s.Dataset.Source)
	}
}

func mapping(s *spec.EvalSpec) reader.Mapping {
	return reader.Mapping{
		SubmissionColumn: s.Dataset.Mapping.SubmissionID,
		IDColumn:         s.Dataset.Mapping.CommentID,
	}.WithDefaults()
}

func loadCSV(s *spec.EvalSpec) (*dataset.Dataset, error) {
	m := mapping(s)
	if err := m.Validate(); err != nil {
		return nil, err
	}

	rows, headers, err := reader.ReadFile(s.Resolve(s.Dataset.Comments))
	if err != nil {
		return nil, fmt.Errorf("load comments: %w", err)
	}

	ds, err := reader.ToDataset(rows, headers, m, s.Columns())
	if err != nil {
		return nil, fmt.Errorf("load comments: %w", err)
	}

	if s.Dataset.Submissions != "" {
		subRows, subHeaders, err := reader.ReadFile(s.Resolve(s.Dataset.Submissions))
		if err != nil {
			return nil, fmt.Errorf("load submissions: %w", err)
		}
		if err := reader.RegisterSubmissions(ds, subRows, subHeaders, m.SubmissionColumn); err != nil {
			return nil, fmt.Errorf("load submissions: %w", err)
		}
	}

	slog.Info("Loaded csv dataset", "comments", ds.Len(), "submissions", len(ds.Submissions()))
	return ds, nil
}

func loadPostgres(ctx context.Context, s *spec.EvalSpec) (*dataset.Dataset, error) {
	connStr := s.Dataset.Connection
	if connStr == "" {
		connStr = os.Getenv(ConnStrEnv)
	}
	if connStr == "" {
		return nil, fmt.Errorf("postgres dataset has no connection string and %s is not set", ConnStrEnv)
	}

	pool, err := pg.NewConnectionPool(ctx, pg.PoolConfig{ConnStr: connStr})
	if err != nil {
		return nil, err
	}
	defer pool.Close()

	// Empty mapping fields fall back to the postgres column defaults.
	return pg.NewCommentReader(pool).Load(ctx, pg.LoadOptions{
		SubmissionsTable: s.Dataset.SubmissionsTable,
		CommentsTable:    s.Dataset.CommentsTable,
		SubmissionColumn: s.Dataset.Mapping.SubmissionID,
		IDColumn:         s.Dataset.Mapping.CommentID,
		Columns:          s.Columns(),
	})
}
