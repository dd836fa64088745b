package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/shrutipatidar/Google-Play-Store-App-Review-Sentiment-Analysis/internal/tabular"
)

// postgres caps bind parameters per statement at 65535
const maxPostgresParams = 65535

// PostgresWriter mirrors the cleaned table into PostgreSQL.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection, waits for the server to accept it,
// runs schema migrations and returns a ready-to-use writer.
func NewPostgresWriter(ctx context.Context, dsn string) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}
	if err := pingWithRetry(ctx, db, 5, time.Second); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}
	pw := &PostgresWriter{db: db}
	if err := pw.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}
	return pw, nil
}

func pingWithRetry(ctx context.Context, db *sql.DB, attempts int, wait time.Duration) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = db.PingContext(ctx); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
	return err
}

func (pw *PostgresWriter) migrate(ctx context.Context) error {
	_, err := pw.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS preprocess_runs (
			id           UUID PRIMARY KEY,
			source       TEXT        NOT NULL,
			output       TEXT        NOT NULL,
			rows_kept    INTEGER     NOT NULL,
			rows_dropped INTEGER     NOT NULL,
			created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	return err
}

// WriteTable replaces the reviews table with t using batched multi-row
// inserts, and records the run.
func (pw *PostgresWriter) WriteTable(ctx context.Context, run Run, t *tabular.Table) error {
	tx, err := pw.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+ReviewsTable); err != nil {
		return fmt.Errorf("postgres: drop: %w", err)
	}
	if _, err := tx.ExecContext(ctx, createTableSQL(t.Header)); err != nil {
		return fmt.Errorf("postgres: create: %w", err)
	}
	ncol := len(t.Header)
	if ncol > 0 {
		batch := batchSize(ncol)
		for i := 0; i < len(t.Rows); i += batch {
			end := i + batch
			if end > len(t.Rows) {
				end = len(t.Rows)
			}
			if err := insertBatch(ctx, tx, t.Header, t.Rows[i:end]); err != nil {
				return fmt.Errorf("postgres: insert rows %d-%d: %w", i+1, end, err)
			}
		}
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO preprocess_runs (id, source, output, rows_kept, rows_dropped, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		run.ID, run.Source, run.Output, run.Kept, run.Dropped, run.At.UTC()); err != nil {
		return fmt.Errorf("postgres: record run: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}

func insertBatch(ctx context.Context, tx *sql.Tx, header []string, rows [][]string) error {
	ncol := len(header)
	args := make([]any, 0, len(rows)*ncol)
	for _, row := range rows {
		args = rowArgs(row, ncol, args)
	}
	query := "INSERT INTO " + ReviewsTable + " (" + quotedColumns(header) + ") VALUES " + placeholders(len(rows), ncol)
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// batchSize keeps each statement under the bind parameter limit.
func batchSize(ncol int) int {
	n := maxPostgresParams / ncol
	if n > 500 {
		n = 500
	}
	if n < 1 {
		n = 1
	}
	return n
}

// placeholders renders "($1,$2),($3,$4)" for rows×cols bind parameters.
func placeholders(rows, cols int) string {
	var b strings.Builder
	n := 1
	for i := 0; i < rows; i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('(')
		for j := 0; j < cols; j++ {
			if j > 0 {
				b.WriteByte(',')
			}
			fmt.Fprintf(&b, "$%d", n)
			n++
		}
		b.WriteByte(')')
	}
	return b.String()
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}
