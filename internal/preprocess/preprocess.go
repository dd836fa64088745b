// Package preprocess turns the raw review export into the cleaned dataset the
// explorer reads.
package preprocess

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shrutipatidar/Google-Play-Store-App-Review-Sentiment-Analysis/internal/logging"
	"github.com/shrutipatidar/Google-Play-Store-App-Review-Sentiment-Analysis/internal/review"
	"github.com/shrutipatidar/Google-Play-Store-App-Review-Sentiment-Analysis/internal/storage"
	"github.com/shrutipatidar/Google-Play-Store-App-Review-Sentiment-Analysis/internal/tabular"
)

// Options configures one preprocessing run.
type Options struct {
	Input      string
	Output     string
	Sheet      tabular.Options
	NAValues   []string
	SampleRows int

	// Optional mirrors; empty disables.
	SQLitePath  string
	PostgresDSN string

	Logger *zap.Logger
}

// Result summarises a completed run.
type Result struct {
	RunID      string
	InputPath  string
	OutputPath string
	RowsRead   int
	RowsKept   int
	Dropped    int
	Mirrors    []string
	Sample     [][]string
	Elapsed    time.Duration
}

// SampleColumns are the fields shown in the console sample.
var SampleColumns = []string{review.ColApp, review.ColReview, review.ColSentiment, review.ColCleaned}

// Run reads the raw dataset, drops rows without review text, derives the
// cleaned column and writes the result. Any failure aborts the run.
func Run(ctx context.Context, opt Options) (*Result, error) {
	log := logging.OrNop(opt.Logger)
	start := time.Now()

	if _, err := os.Stat(opt.Input); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &InputNotFoundError{Path: opt.Input, Err: err}
		}
		return nil, &IOError{Op: "stat", Path: opt.Input, Err: err}
	}
	raw, err := tabular.Open(opt.Input, opt.Sheet)
	if err != nil {
		return nil, &IOError{Op: "read", Path: opt.Input, Err: err}
	}
	if missing := review.MissingColumns(raw.Header); len(missing) > 0 {
		return nil, &SchemaError{Path: opt.Input, Missing: missing}
	}
	log.Debug("raw dataset loaded", zap.String("path", opt.Input), zap.Int("rows", len(raw.Rows)), zap.Strings("columns", raw.Header))

	cleaned := Transform(raw, review.NewNASet(opt.NAValues))
	res := &Result{
		RunID:      uuid.NewString(),
		InputPath:  opt.Input,
		OutputPath: opt.Output,
		RowsRead:   len(raw.Rows),
		RowsKept:   len(cleaned.Rows),
		Dropped:    len(raw.Rows) - len(cleaned.Rows),
		Sample:     sample(cleaned, opt.SampleRows),
	}
	run := storage.Run{
		ID:      res.RunID,
		Source:  opt.Input,
		Output:  opt.Output,
		Kept:    res.RowsKept,
		Dropped: res.Dropped,
		At:      start.UTC(),
	}

	// Mirrors are opened and migrated before the CSV is replaced.
	mirrors, err := openMirrors(ctx, opt)
	if err != nil {
		return nil, err
	}
	defer func() {
		for _, m := range mirrors {
			_ = m.w.Close()
		}
	}()

	csvw, err := storage.NewCSVWriter(opt.Output)
	if err != nil {
		return nil, &IOError{Op: "create output dir", Path: opt.Output, Err: err}
	}
	if err := csvw.WriteTable(ctx, run, cleaned); err != nil {
		return nil, &IOError{Op: "write", Path: opt.Output, Err: err}
	}

	for _, m := range mirrors {
		if err := m.w.WriteTable(ctx, run, cleaned); err != nil {
			return nil, &IOError{Op: m.op, Path: m.path, Err: err}
		}
		res.Mirrors = append(res.Mirrors, m.name)
	}

	res.Elapsed = time.Since(start)
	log.Info("preprocess complete",
		zap.String("run_id", res.RunID),
		zap.String("output", opt.Output),
		zap.Int("rows_read", res.RowsRead),
		zap.Int("rows_kept", res.RowsKept),
		zap.Int("rows_dropped", res.Dropped),
		zap.Duration("elapsed", res.Elapsed))
	return res, nil
}

type mirrorTarget struct {
	w    storage.TableWriter
	op   string
	path string
	name string
}

func openMirrors(ctx context.Context, opt Options) ([]mirrorTarget, error) {
	var out []mirrorTarget
	fail := func(err error) ([]mirrorTarget, error) {
		for _, m := range out {
			_ = m.w.Close()
		}
		return nil, err
	}
	if opt.SQLitePath != "" {
		w, err := storage.NewSQLiteWriter(ctx, opt.SQLitePath)
		if err != nil {
			return fail(&IOError{Op: "sqlite mirror", Path: opt.SQLitePath, Err: err})
		}
		out = append(out, mirrorTarget{w: w, op: "sqlite mirror", path: opt.SQLitePath, name: "sqlite:" + opt.SQLitePath})
	}
	if opt.PostgresDSN != "" {
		w, err := storage.NewPostgresWriter(ctx, opt.PostgresDSN)
		if err != nil {
			return fail(&IOError{Op: "postgres mirror", Err: err})
		}
		out = append(out, mirrorTarget{w: w, op: "postgres mirror", name: "postgres"})
	}
	return out, nil
}

// Transform drops rows whose review cell is missing and sets the cleaned
// column on the rest. An existing cleaned column is overwritten in place,
// otherwise one is appended. Missing cells become empty strings and row
// order is preserved.
func Transform(raw *tabular.Table, na review.NASet) *tabular.Table {
	header := append([]string(nil), raw.Header...)
	iClean := raw.Index(review.ColCleaned)
	if iClean < 0 {
		header = append(header, review.ColCleaned)
		iClean = len(header) - 1
	}
	iRev := raw.Index(review.ColReview)
	ncol := len(header)

	out := &tabular.Table{Name: raw.Name, Header: header, Rows: make([][]string, 0, len(raw.Rows))}
	for _, row := range raw.Rows {
		text, ok := na.Cell(row, iRev)
		if !ok {
			continue
		}
		rec := make([]string, ncol)
		for j := range raw.Header {
			rec[j], _ = na.Cell(row, j)
		}
		rec[iClean] = review.Clean(text)
		out.Rows = append(out.Rows, rec)
	}
	return out
}

func sample(t *tabular.Table, n int) [][]string {
	if n <= 0 {
		return nil
	}
	idx := make([]int, len(SampleColumns))
	for i, c := range SampleColumns {
		idx[i] = t.Index(c)
	}
	var out [][]string
	for _, row := range t.Rows {
		if len(out) == n {
			break
		}
		rec := make([]string, len(idx))
		for i, j := range idx {
			rec[i] = row[j]
		}
		out = append(out, rec)
	}
	return out
}
