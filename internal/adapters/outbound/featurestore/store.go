// Package featurestore persists feature runs to SQLite or Postgres. Each
// run gets a feature_runs row keyed by a UUID and one match_features row
// per match.
package featurestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/charleschow/match-features/internal/core/features"
	"github.com/charleschow/match-features/internal/telemetry"
)

var ErrNoRuns = errors.New("no feature runs stored")

// Fixed-width so started_at sorts lexically.
const startedLayout = "2006-01-02T15:04:05.000000000Z"

// Run describes one stored pipeline execution.
type Run struct {
	ID        string
	StartedAt time.Time
	Matches   int
	Params    features.Params
}

type Store struct {
	db *sql.DB
	d  dialect
}

// Open connects to the store and creates the schema if needed. For
// sqlite the DSN is a file path; for postgres it is a lib/pq connection
// string.
func Open(driver, dsn string) (*Store, error) {
	d, err := lookupDialect(driver)
	if err != nil {
		return nil, err
	}

	source := dsn
	if d.driver == "sqlite" {
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
		source = dsn + "?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	}

	db, err := sql.Open(d.driver, source)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", d.driver, err)
	}
	if d.driver == "sqlite" {
		db.SetMaxOpenConns(1)
	}

	for _, stmt := range d.schema() {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("init schema (%s): %w", firstLine(stmt), err)
		}
	}

	telemetry.Infof("Opened feature store  driver=%s", d.driver)
	return &Store{db: db, d: d}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// WriteRun stores rows under a new run in a single transaction.
func (s *Store) WriteRun(ctx context.Context, p features.Params, rows []features.Row) (Run, error) {
	run := Run{
		ID:        uuid.NewString(),
		StartedAt: time.Now().UTC(),
		Matches:   len(rows),
		Params:    p,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, s.d.rebind(`INSERT INTO feature_runs (
			run_id, started_at, matches, rolling_window, split_window,
			split_min_periods, elo_k, elo_start
		) VALUES (?,?,?,?,?,?,?,?)`),
		run.ID,
		run.StartedAt.Format(startedLayout),
		run.Matches,
		p.RollingWindow,
		p.SplitWindow,
		p.SplitMinPeriods,
		p.Elo.K,
		p.Elo.Start,
	)
	if err != nil {
		return Run{}, fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, s.insertFeaturesSQL())
	if err != nil {
		return Run{}, fmt.Errorf("prepare features insert: %w", err)
	}
	defer stmt.Close()

	args := make([]any, len(matchColumns)+1)
	args[0] = run.ID
	for i := range rows {
		for j, c := range matchColumns {
			args[j+1] = c.get(&rows[i])
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return Run{}, fmt.Errorf("insert match %d: %w", rows[i].ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("commit: %w", err)
	}
	telemetry.Metrics.RowsWritten.Add(int64(len(rows)))
	telemetry.Infof("Stored feature run  run_id=%s  rows=%d", run.ID, len(rows))
	return run, nil
}

func (s *Store) insertFeaturesSQL() string {
	names := make([]string, 0, len(matchColumns)+1)
	names = append(names, "run_id")
	for _, c := range matchColumns {
		names = append(names, c.name)
	}
	return fmt.Sprintf("INSERT INTO match_features (%s) VALUES (%s)",
		strings.Join(names, ", "), s.d.placeholders(len(names)))
}

// LatestRun returns the most recently started run.
func (s *Store) LatestRun(ctx context.Context) (Run, error) {
	var (
		run     Run
		started string
	)
	err := s.db.QueryRowContext(ctx, `SELECT run_id, started_at, matches, rolling_window,
			split_window, split_min_periods, elo_k, elo_start
		FROM feature_runs ORDER BY started_at DESC LIMIT 1`).Scan(
		&run.ID, &started, &run.Matches,
		&run.Params.RollingWindow, &run.Params.SplitWindow, &run.Params.SplitMinPeriods,
		&run.Params.Elo.K, &run.Params.Elo.Start,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrNoRuns
	}
	if err != nil {
		return Run{}, fmt.Errorf("latest run: %w", err)
	}
	if run.StartedAt, err = time.Parse(startedLayout, started); err != nil {
		return Run{}, fmt.Errorf("run %s started_at %q: %w", run.ID, started, err)
	}
	return run, nil
}

func (s *Store) CountRows(ctx context.Context, runID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		s.d.rebind(`SELECT COUNT(*) FROM match_features WHERE run_id = ?`), runID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count rows: %w", err)
	}
	return n, nil
}

// Grid is a column-named slice of stored rows. NULL cells are nil.
type Grid struct {
	Columns []string
	Rows    [][]any
}

// Columns lists the match_features value columns in schema order.
func Columns() []string {
	names := make([]string, len(matchColumns))
	for i, c := range matchColumns {
		names[i] = c.name
	}
	return names
}

// Select reads up to limit rows of runID, latest matches first. An empty
// cols selects every value column.
func (s *Store) Select(ctx context.Context, runID string, cols []string, limit int) (Grid, error) {
	if len(cols) == 0 {
		cols = Columns()
	}
	known := make(map[string]bool, len(matchColumns))
	for _, c := range matchColumns {
		known[c.name] = true
	}
	for _, c := range cols {
		if !known[c] {
			return Grid{}, fmt.Errorf("unknown column %q", c)
		}
	}

	query := s.d.rebind(fmt.Sprintf(
		"SELECT %s FROM match_features WHERE run_id = ? ORDER BY match_id DESC LIMIT ?",
		strings.Join(cols, ", ")))
	rows, err := s.db.QueryContext(ctx, query, runID, limit)
	if err != nil {
		return Grid{}, fmt.Errorf("select features: %w", err)
	}
	defer rows.Close()

	g := Grid{Columns: cols}
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return Grid{}, fmt.Errorf("scan: %w", err)
		}
		for i, v := range vals {
			if b, ok := v.([]byte); ok {
				vals[i] = string(b)
			}
		}
		g.Rows = append(g.Rows, vals)
	}
	return g, rows.Err()
}

func firstLine(stmt string) string {
	if i := strings.IndexByte(stmt, '\n'); i >= 0 {
		return strings.TrimSpace(stmt[:i])
	}
	return stmt
}
