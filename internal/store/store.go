package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Run is one recorded analyze invocation.
type Run struct {
	ID         int64     `db:"id" json:"id"`
	ExportPath string    `db:"export_path" json:"export_path"`
	ExportDate string    `db:"export_date" json:"export_date"`
	AnalyzedAt time.Time `db:"analyzed_at" json:"analyzed_at"`
}

// RunSummary is one platform/source distribution summary within a run.
// AnalyzedAt and ExportDate come from the parent run on reads.
type RunSummary struct {
	ID         int64     `db:"id" json:"id"`
	RunID      int64     `db:"run_id" json:"run_id"`
	Platform   string    `db:"platform" json:"platform"`
	Source     string    `db:"source" json:"source"` // "heuristic" or "api"
	N          int       `db:"n" json:"n"`
	Mean       float64   `db:"mean" json:"mean"`
	Median     float64   `db:"median" json:"median"`
	P75        float64   `db:"p75" json:"p75"`
	P90        float64   `db:"p90" json:"p90"`
	P95        float64   `db:"p95" json:"p95"`
	ExportDate string    `db:"export_date" json:"export_date"`
	AnalyzedAt time.Time `db:"analyzed_at" json:"analyzed_at"`
}

// ListOpts controls summary listing.
type ListOpts struct {
	Platform string
	Limit    int
}

// Store is the persistence interface for calibration history.
type Store interface {
	AddRun(ctx context.Context, r *Run) error
	AddSummary(ctx context.Context, s *RunSummary) error
	ListRuns(ctx context.Context, limit int) ([]Run, error)
	ListSummaries(ctx context.Context, opts ListOpts) ([]RunSummary, error)
	Close() error
}

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sqlx.DB
}

// New opens a SQLite database and runs migrations.
func New(path string) (*SQLiteStore, error) {
	dsn := path
	if path != ":memory:" {
		dsn += "?_journal_mode=WAL&_busy_timeout=5000"
	}

	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	if path == ":memory:" {
		// Each pooled connection would otherwise get its own empty database.
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) AddRun(ctx context.Context, r *Run) error {
	if r.AnalyzedAt.IsZero() {
		r.AnalyzedAt = time.Now().UTC()
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (export_path, export_date, analyzed_at)
		VALUES (?, ?, ?)
	`, r.ExportPath, r.ExportDate, r.AnalyzedAt)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", r.ExportPath, err)
	}
	r.ID, _ = res.LastInsertId()
	return nil
}

func (s *SQLiteStore) AddSummary(ctx context.Context, sum *RunSummary) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO run_summaries (run_id, platform, source, n, mean, median, p75, p90, p95)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, sum.RunID, sum.Platform, sum.Source, sum.N, sum.Mean, sum.Median, sum.P75, sum.P90, sum.P95)
	if err != nil {
		return fmt.Errorf("insert summary run=%d %s/%s: %w", sum.RunID, sum.Platform, sum.Source, err)
	}
	sum.ID, _ = res.LastInsertId()
	return nil
}

func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}

	var runs []Run
	err := s.db.SelectContext(ctx, &runs,
		"SELECT * FROM runs ORDER BY analyzed_at DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

func (s *SQLiteStore) ListSummaries(ctx context.Context, opts ListOpts) ([]RunSummary, error) {
	query := `
		SELECT s.id, s.run_id, s.platform, s.source, s.n, s.mean, s.median,
		       s.p75, s.p90, s.p95, r.export_date, r.analyzed_at
		FROM run_summaries s
		JOIN runs r ON r.id = s.run_id
		WHERE 1=1`
	var args []any

	if opts.Platform != "" {
		query += " AND s.platform = ?"
		args = append(args, opts.Platform)
	}

	query += " ORDER BY r.analyzed_at DESC, s.id"

	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	query += " LIMIT ?"
	args = append(args, limit)

	var sums []RunSummary
	if err := s.db.SelectContext(ctx, &sums, query, args...); err != nil {
		return nil, fmt.Errorf("list summaries: %w", err)
	}
	return sums, nil
}
