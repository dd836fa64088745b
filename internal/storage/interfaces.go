// Package storage persists the cleaned review table to flat files and SQL
// mirrors, and reads it back from SQLite.
package storage

import (
	"context"
	"strings"
	"time"

	"github.com/shrutipatidar/Google-Play-Store-App-Review-Sentiment-Analysis/internal/tabular"
)

// ReviewsTable is the SQL table holding the cleaned dataset.
const ReviewsTable = "reviews"

// Run describes one preprocessing run recorded next to the mirrored table.
type Run struct {
	ID      string
	Source  string
	Output  string
	Kept    int
	Dropped int
	At      time.Time
}

// TableWriter is the interface any storage backend must satisfy. WriteTable
// replaces previously stored contents.
type TableWriter interface {
	WriteTable(ctx context.Context, run Run, t *tabular.Table) error
	Close() error
}

// quoteIdent quotes a column name for both SQLite and Postgres.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func createTableSQL(header []string) string {
	cols := make([]string, len(header))
	for i, h := range header {
		cols[i] = quoteIdent(h) + " TEXT NOT NULL DEFAULT ''"
	}
	return "CREATE TABLE " + ReviewsTable + " (" + strings.Join(cols, ", ") + ")"
}

func quotedColumns(header []string) string {
	cols := make([]string, len(header))
	for i, h := range header {
		cols[i] = quoteIdent(h)
	}
	return strings.Join(cols, ", ")
}

// rowArgs pads short rows so every insert binds one value per column.
func rowArgs(row []string, ncol int, dst []any) []any {
	for j := 0; j < ncol; j++ {
		if j < len(row) {
			dst = append(dst, row[j])
		} else {
			dst = append(dst, "")
		}
	}
	return dst
}
