package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"PulseBriefing/internal/ports"
)

const ledgerSchema = `
CREATE TABLE IF NOT EXISTS runs (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    started_at   TEXT NOT NULL,
    finished_at  TEXT NOT NULL,
    fetched      INTEGER NOT NULL,
    merged       INTEGER NOT NULL,
    curated      INTEGER NOT NULL,
    published    INTEGER NOT NULL,
    status       TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS published_items (
    run_id   INTEGER NOT NULL REFERENCES runs(id),
    item_id  TEXT NOT NULL,
    title    TEXT NOT NULL,
    score    INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_published_items_item ON published_items(item_id);
`

// SQLiteLedger keeps an audit trail of pipeline runs and the items they
// published. The archive stays the single source of truth for the client;
// the ledger exists so repeated stories and run health can be inspected
// after the fact. Ledger failures are never fatal to a run.
type SQLiteLedger struct {
	db *sql.DB
}

var _ ports.Ledger = (*SQLiteLedger)(nil)

// OpenSQLiteLedger opens (creating if needed) the ledger database at path.
func OpenSQLiteLedger(path string) (*SQLiteLedger, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	if _, err := db.Exec(ledgerSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init ledger schema: %w", err)
	}
	return &SQLiteLedger{db: db}, nil
}

// Close releases the underlying database handle.
func (l *SQLiteLedger) Close() error {
	return l.db.Close()
}

// RecordRun stores one run summary and its published items in a single
// transaction.
func (l *SQLiteLedger) RecordRun(ctx context.Context, run ports.RunRecord, items []ports.PublishedItem) error {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	query, args, err := sq.Insert("runs").
		Columns("started_at", "finished_at", "fetched", "merged", "curated", "published", "status").
		Values(run.StartedAt, run.FinishedAt, run.Fetched, run.Merged, run.Curated, run.Published, run.Status).
		ToSql()
	if err != nil {
		return fmt.Errorf("build run insert: %w", err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("run id: %w", err)
	}

	if len(items) > 0 {
		insert := sq.Insert("published_items").Columns("run_id", "item_id", "title", "score")
		for _, item := range items {
			insert = insert.Values(runID, item.ItemID, item.Title, item.Score)
		}
		query, args, err = insert.ToSql()
		if err != nil {
			return fmt.Errorf("build items insert: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert items: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
