package preprocess

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// sample column widths keep the frame within gota's 70 character print width
var sampleWidths = []int{16, 20, 9, 16}

// Print writes the confirmation, row counts and the sample frame.
func (r *Result) Print(w io.Writer) {
	fmt.Fprintf(w, "✓ Saved cleaned dataset to: %s\n", r.OutputPath)
	fmt.Fprintf(w, "Total reviews after cleaning: %d\n", r.RowsKept)
	if r.Dropped > 0 {
		fmt.Fprintf(w, "⚠ Dropped %d of %d rows without review text\n", r.Dropped, r.RowsRead)
	}
	for _, m := range r.Mirrors {
		fmt.Fprintf(w, "✓ Mirrored to %s\n", m)
	}
	fmt.Fprintf(w, "Run ID: %s\n", r.RunID)
	if len(r.Sample) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, SampleFrame(r.Sample).String())
}

// SampleFrame loads sample rows into a string-typed dataframe with long
// text shortened.
func SampleFrame(rows [][]string) dataframe.DataFrame {
	records := make([][]string, 0, len(rows)+1)
	records = append(records, SampleColumns)
	for _, row := range rows {
		rec := make([]string, len(row))
		for i, v := range row {
			rec[i] = shorten(v, sampleWidths[i%len(sampleWidths)])
		}
		records = append(records, rec)
	}
	return dataframe.LoadRecords(records,
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(nil),
	)
}

func shorten(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-1]) + "…"
}
