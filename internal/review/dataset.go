package review

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/shrutipatidar/Google-Play-Store-App-Review-Sentiment-Analysis/internal/storage"
	"github.com/shrutipatidar/Google-Play-Store-App-Review-Sentiment-Analysis/internal/tabular"
)

// NASet is the set of cell values read as missing.
type NASet map[string]struct{}

// NewNASet builds a set from tokens. The empty string is never a token.
func NewNASet(tokens []string) NASet {
	s := make(NASet, len(tokens))
	for _, t := range tokens {
		if t != "" {
			s[t] = struct{}{}
		}
	}
	return s
}

// Cell returns row[i] and whether it is present. Absent cells, out of range
// indices and NA tokens are all missing.
func (s NASet) Cell(row []string, i int) (string, bool) {
	if i < 0 || i >= len(row) {
		return "", false
	}
	v := row[i]
	if _, na := s[v]; na {
		return "", false
	}
	return v, true
}

// MissingColumns lists required columns absent from header, in required
// order.
func MissingColumns(header []string) []string {
	have := make(map[string]bool, len(header))
	for _, h := range header {
		have[h] = true
	}
	var missing []string
	for _, c := range RequiredColumns {
		if !have[c] {
			missing = append(missing, c)
		}
	}
	return missing
}

// Dataset is an immutable, validated set of review records. It is built once
// and shared by reference; nothing mutates it after construction.
type Dataset struct {
	name    string
	columns []string
	records []Record
	apps    []string
}

// FromTable validates the header once and converts every row into a Record.
// A cleaned column is used when present; otherwise it is derived with Clean.
func FromTable(t *tabular.Table, naValues []string) (*Dataset, error) {
	if missing := MissingColumns(t.Header); len(missing) > 0 {
		return nil, fmt.Errorf("%s: missing required columns: %s", t.Name, strings.Join(missing, ", "))
	}
	na := NewNASet(naValues)
	iApp, iRev, iSent, iClean := t.Index(ColApp), t.Index(ColReview), t.Index(ColSentiment), t.Index(ColCleaned)

	ds := &Dataset{
		name:    t.Name,
		columns: append([]string(nil), t.Header...),
		records: make([]Record, 0, len(t.Rows)),
	}
	for _, row := range t.Rows {
		var r Record
		r.App, _ = na.Cell(row, iApp)
		r.Review, r.HasReview = na.Cell(row, iRev)
		sent, _ := na.Cell(row, iSent)
		r.Sentiment = Sentiment(sent)
		if iClean >= 0 {
			// a missing cleaned cell is empty cleaned text
			r.Cleaned, _ = na.Cell(row, iClean)
		} else {
			r.Cleaned = Clean(r.Review)
		}
		ds.records = append(ds.records, r)
	}
	ds.apps = distinctApps(ds.records)
	return ds, nil
}

// New builds a dataset directly from records.
func New(name string, records []Record) *Dataset {
	recs := append([]Record(nil), records...)
	return &Dataset{
		name:    name,
		columns: []string{ColApp, ColReview, ColSentiment, ColCleaned},
		records: recs,
		apps:    distinctApps(recs),
	}
}

func distinctApps(records []Record) []string {
	seen := map[string]bool{}
	var apps []string
	for _, r := range records {
		if r.App != "" && !seen[r.App] {
			seen[r.App] = true
			apps = append(apps, r.App)
		}
	}
	sort.Strings(apps)
	return apps
}

// Name is the base name of the source the dataset was loaded from.
func (d *Dataset) Name() string { return d.name }

// Records returns the rows in source order. Callers must not modify the
// returned slice.
func (d *Dataset) Records() []Record { return d.records }

// Len is the number of rows.
func (d *Dataset) Len() int { return len(d.records) }

// Apps returns the distinct non-missing app names, ascending.
func (d *Dataset) Apps() []string { return d.apps }

// Columns returns the source header.
func (d *Dataset) Columns() []string { return d.columns }

// LoadOptions controls how a dataset file is read.
type LoadOptions struct {
	NAValues []string
	Sheet    tabular.Options
}

// IsDatabase reports whether path names a SQLite mirror rather than a table
// file.
func IsDatabase(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

// Load reads a cleaned dataset from a CSV/TSV/XLSX file or from the reviews
// table of a SQLite mirror.
func Load(ctx context.Context, path string, opt LoadOptions) (*Dataset, error) {
	var (
		t   *tabular.Table
		err error
	)
	if IsDatabase(path) {
		t, err = storage.ReadSQLite(ctx, path)
	} else {
		t, err = tabular.Open(path, opt.Sheet)
	}
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	return FromTable(t, opt.NAValues)
}
