package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/shrutipatidar/Google-Play-Store-App-Review-Sentiment-Analysis/internal/tabular"
	"github.com/shrutipatidar/Google-Play-Store-App-Review-Sentiment-Analysis/internal/utils"
)

// SQLiteWriter mirrors the cleaned table into a local SQLite file.
type SQLiteWriter struct {
	db *sql.DB
}

// NewSQLiteWriter opens (or creates) the database file and runs migrations.
func NewSQLiteWriter(ctx context.Context, path string) (*SQLiteWriter, error) {
	if err := utils.EnsureParentDir(path); err != nil {
		return nil, fmt.Errorf("sqlite: create dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	// one writer connection; SQLite serialises writes anyway
	db.SetMaxOpenConns(1)
	sw := &SQLiteWriter{db: db}
	if err := sw.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: migrate: %w", err)
	}
	return sw, nil
}

func (sw *SQLiteWriter) migrate(ctx context.Context) error {
	_, err := sw.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS preprocess_runs (
			id           TEXT PRIMARY KEY,
			source       TEXT NOT NULL,
			output       TEXT NOT NULL,
			rows_kept    INTEGER NOT NULL,
			rows_dropped INTEGER NOT NULL,
			created_at   TEXT NOT NULL
		)`)
	return err
}

// WriteTable replaces the reviews table with t and records the run, in one
// transaction.
func (sw *SQLiteWriter) WriteTable(ctx context.Context, run Run, t *tabular.Table) error {
	tx, err := sw.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+ReviewsTable); err != nil {
		return fmt.Errorf("sqlite: drop: %w", err)
	}
	if _, err := tx.ExecContext(ctx, createTableSQL(t.Header)); err != nil {
		return fmt.Errorf("sqlite: create: %w", err)
	}
	ncol := len(t.Header)
	if ncol > 0 {
		ph := make([]byte, 0, ncol*2)
		for j := 0; j < ncol; j++ {
			if j > 0 {
				ph = append(ph, ',')
			}
			ph = append(ph, '?')
		}
		stmt, err := tx.PrepareContext(ctx,
			"INSERT INTO "+ReviewsTable+" ("+quotedColumns(t.Header)+") VALUES ("+string(ph)+")")
		if err != nil {
			return fmt.Errorf("sqlite: prepare insert: %w", err)
		}
		defer stmt.Close()
		args := make([]any, 0, ncol)
		for i, row := range t.Rows {
			args = rowArgs(row, ncol, args[:0])
			if _, err := stmt.ExecContext(ctx, args...); err != nil {
				return fmt.Errorf("sqlite: insert row %d: %w", i+1, err)
			}
		}
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO preprocess_runs (id, source, output, rows_kept, rows_dropped, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.Source, run.Output, run.Kept, run.Dropped, run.At.UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("sqlite: record run: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit: %w", err)
	}
	return nil
}

func (sw *SQLiteWriter) Close() error {
	return sw.db.Close()
}

// ReadSQLite loads the reviews table in insertion order. NULL cells read as
// empty strings.
func ReadSQLite(ctx context.Context, path string) (*tabular.Table, error) {
	// sql.Open would silently create a missing file
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, "SELECT * FROM "+ReviewsTable+" ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("sqlite: query %s: %w", ReviewsTable, err)
	}
	defer rows.Close()
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("sqlite: columns: %w", err)
	}
	t := &tabular.Table{Name: filepath.Base(path), Header: cols}
	vals := make([]sql.NullString, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("sqlite: scan row: %w", err)
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			row[i] = v.String
		}
		t.Rows = append(t.Rows, row)
	}
	return t, rows.Err()
}

// LastRun returns the most recent recorded preprocessing run.
func LastRun(ctx context.Context, path string) (*Run, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	defer db.Close()
	var (
		r  Run
		at string
	)
	err = db.QueryRowContext(ctx,
		`SELECT id, source, output, rows_kept, rows_dropped, created_at FROM preprocess_runs ORDER BY created_at DESC, rowid DESC LIMIT 1`).
		Scan(&r.ID, &r.Source, &r.Output, &r.Kept, &r.Dropped, &at)
	if err != nil {
		return nil, fmt.Errorf("sqlite: last run: %w", err)
	}
	r.At, _ = time.Parse(time.RFC3339, at)
	return &r, nil
}
