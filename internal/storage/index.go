package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const indexFile = "runs.db"

// Index is a queryable copy of every run's metadata. The run directories
// remain the source of truth; Reindex rebuilds the index from them.
type Index struct {
	db *sql.DB
}

func OpenIndex(ctx context.Context, path string) (*Index, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			algorithm TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			size INTEGER NOT NULL,
			steps INTEGER NOT NULL,
			comparisons INTEGER NOT NULL,
			writes INTEGER NOT NULL,
			outcome TEXT NOT NULL
		)
	`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create runs table: %w", err)
	}
	if _, err := db.ExecContext(ctx, "CREATE INDEX IF NOT EXISTS idx_runs_algorithm ON runs(algorithm, created_at)"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create runs index: %w", err)
	}
	return &Index{db: db}, nil
}

func (ix *Index) Close() error { return ix.db.Close() }

// Put inserts or replaces one run.
func (ix *Index) Put(ctx context.Context, m RunMetadata) error {
	_, err := ix.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO runs (id, algorithm, created_at, seed, size, steps, comparisons, writes, outcome)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Algorithm, m.Timestamp.UnixNano(), m.Seed, m.Size, m.Steps, m.Comparisons, m.Writes, m.Outcome,
	)
	if err != nil {
		return fmt.Errorf("index run %s: %w", m.ID, err)
	}
	return nil
}

// Query returns runs of algorithm, or of every algorithm when it is empty,
// oldest first.
func (ix *Index) Query(ctx context.Context, algorithm string) ([]RunMetadata, error) {
	rows, err := ix.db.QueryContext(ctx, `
		SELECT id, algorithm, created_at, seed, size, steps, comparisons, writes, outcome
		FROM runs
		WHERE ? = '' OR algorithm = ?
		ORDER BY created_at, id`,
		algorithm, algorithm,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := make([]RunMetadata, 0)
	for rows.Next() {
		var (
			m  RunMetadata
			ns int64
		)
		if err := rows.Scan(&m.ID, &m.Algorithm, &ns, &m.Seed, &m.Size, &m.Steps, &m.Comparisons, &m.Writes, &m.Outcome); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		m.Timestamp = time.Unix(0, ns)
		runs = append(runs, m)
	}
	return runs, rows.Err()
}

func (ix *Index) clear(ctx context.Context) error {
	_, err := ix.db.ExecContext(ctx, "DELETE FROM runs")
	return err
}
