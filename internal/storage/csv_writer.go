package storage

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/shrutipatidar/Google-Play-Store-App-Review-Sentiment-Analysis/internal/tabular"
	"github.com/shrutipatidar/Google-Play-Store-App-Review-Sentiment-Analysis/internal/utils"
)

// CSVWriter writes the table as comma separated text with a header row and
// no index column. The file is replaced atomically.
type CSVWriter struct {
	path string
}

// NewCSVWriter prepares a writer for path, creating intermediate directories.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := utils.EnsureParentDir(path); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}
	return &CSVWriter{path: path}, nil
}

// Path is the destination file.
func (c *CSVWriter) Path() string { return c.path }

func (c *CSVWriter) WriteTable(_ context.Context, _ Run, t *tabular.Table) error {
	err := utils.SafeWriteFunc(c.path, func(w io.Writer) error {
		return EncodeCSV(w, t)
	})
	if err != nil {
		return fmt.Errorf("csv: write %q: %w", c.path, err)
	}
	return nil
}

func (c *CSVWriter) Close() error { return nil }

// EncodeCSV writes header and rows; short rows are padded to the header width.
func EncodeCSV(w io.Writer, t *tabular.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	ncol := len(t.Header)
	buf := make([]string, ncol)
	for _, row := range t.Rows {
		rec := row
		if len(row) < ncol {
			copy(buf, row)
			for j := len(row); j < ncol; j++ {
				buf[j] = ""
			}
			rec = buf
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
