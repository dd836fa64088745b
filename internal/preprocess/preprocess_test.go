package preprocess

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shrutipatidar/Google-Play-Store-App-Review-Sentiment-Analysis/internal/config"
	"github.com/shrutipatidar/Google-Play-Store-App-Review-Sentiment-Analysis/internal/review"
	"github.com/shrutipatidar/Google-Play-Store-App-Review-Sentiment-Analysis/internal/storage"
	"github.com/shrutipatidar/Google-Play-Store-App-Review-Sentiment-Analysis/internal/tabular"
)

const rawCSV = `App,Translated_Review,Sentiment,Sentiment_Polarity,Sentiment_Subjectivity
X,"I like it, 10/10!",Positive,0.5,0.6
X,Crashes ALL the time :(,Negative,-0.4,0.7
X,nan,nan,nan,nan
Y,,Neutral,0,0
Y,Works fine,Neutral,0.0,NA
`

func writeRaw(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "raw.csv")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func opts(in, out string) Options {
	return Options{Input: in, Output: out, NAValues: config.DefaultNAValues, SampleRows: 5}
}

func TestRunDropsMissingReviewsAndAppendsCleaned(t *testing.T) {
	in := writeRaw(t, rawCSV)
	out := filepath.Join(t.TempDir(), "data", "cleaned.csv")

	res, err := Run(context.Background(), opts(in, out))
	require.NoError(t, err)
	assert.Equal(t, 5, res.RowsRead)
	assert.Equal(t, 4, res.RowsKept)
	assert.Equal(t, 1, res.Dropped)
	assert.NotEmpty(t, res.RunID)

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	want := "App,Translated_Review,Sentiment,Sentiment_Polarity,Sentiment_Subjectivity,cleaned\n" +
		"X,\"I like it, 10/10!\",Positive,0.5,0.6,i like it\n" +
		"X,Crashes ALL the time :(,Negative,-0.4,0.7,crashes all the time\n" +
		"Y,,Neutral,0,0,\n" +
		"Y,Works fine,Neutral,0.0,,works fine\n"
	assert.Equal(t, want, string(b))
}

func TestRunCleanedColumnInvariant(t *testing.T) {
	in := writeRaw(t, rawCSV)
	out := filepath.Join(t.TempDir(), "cleaned.csv")
	_, err := Run(context.Background(), opts(in, out))
	require.NoError(t, err)

	tb, err := tabular.Open(out, tabular.Options{})
	require.NoError(t, err)
	iRev, iClean := tb.Index(review.ColReview), tb.Index(review.ColCleaned)
	for _, row := range tb.Rows {
		assert.NotEqual(t, "nan", row[iRev])
		assert.Equal(t, review.Clean(row[iRev]), row[iClean])
		assert.Equal(t, row[iClean], review.Clean(row[iClean]))
		for _, r := range row[iClean] {
			assert.True(t, (r >= 'a' && r <= 'z') || r == ' ', "unexpected rune %q", r)
		}
	}
}

func TestRunIsDeterministic(t *testing.T) {
	in := writeRaw(t, rawCSV)
	dir := t.TempDir()
	first, second := filepath.Join(dir, "a.csv"), filepath.Join(dir, "b.csv")
	_, err := Run(context.Background(), opts(in, first))
	require.NoError(t, err)
	_, err = Run(context.Background(), opts(in, second))
	require.NoError(t, err)
	// rerun over the same output path too
	_, err = Run(context.Background(), opts(in, first))
	require.NoError(t, err)

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRunReplacesExistingCleanedColumn(t *testing.T) {
	in := writeRaw(t, "App,cleaned,Translated_Review,Sentiment\nX,stale,Fresh Text!,Positive\n")
	out := filepath.Join(t.TempDir(), "cleaned.csv")
	_, err := Run(context.Background(), opts(in, out))
	require.NoError(t, err)
	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "App,cleaned,Translated_Review,Sentiment\nX,fresh text,Fresh Text!,Positive\n", string(b))
}

func TestRunInputNotFound(t *testing.T) {
	_, err := Run(context.Background(), opts(filepath.Join(t.TempDir(), "missing.csv"), filepath.Join(t.TempDir(), "o.csv")))
	var nf *InputNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunSchemaError(t *testing.T) {
	in := writeRaw(t, "App,Review\nX,hello\n")
	out := filepath.Join(t.TempDir(), "o.csv")
	_, err := Run(context.Background(), opts(in, out))
	var se *SchemaError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, []string{"Translated_Review", "Sentiment"}, se.Missing)
	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr), "no output on schema failure")
}

func TestRunIOErrorWhenOutputUnwritable(t *testing.T) {
	in := writeRaw(t, rawCSV)
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	_, err := Run(context.Background(), opts(in, filepath.Join(blocker, "cleaned.csv")))
	var ioe *IOError
	require.ErrorAs(t, err, &ioe)
	assert.False(t, errors.As(err, new(*SchemaError)))
}

func TestRunSQLiteMirror(t *testing.T) {
	in := writeRaw(t, rawCSV)
	dir := t.TempDir()
	o := opts(in, filepath.Join(dir, "cleaned.csv"))
	o.SQLitePath = filepath.Join(dir, "reviews.db")

	res, err := Run(context.Background(), o)
	require.NoError(t, err)
	assert.Equal(t, []string{"sqlite:" + o.SQLitePath}, res.Mirrors)

	ds, err := review.Load(context.Background(), o.SQLitePath, review.LoadOptions{NAValues: config.DefaultNAValues})
	require.NoError(t, err)
	assert.Equal(t, 4, ds.Len())

	last, err := storage.LastRun(context.Background(), o.SQLitePath)
	require.NoError(t, err)
	assert.Equal(t, res.RunID, last.ID)
	assert.Equal(t, 1, last.Dropped)
}

func TestRunMirrorFailureLeavesOutputUntouched(t *testing.T) {
	in := writeRaw(t, rawCSV)
	dir := t.TempDir()
	out := filepath.Join(dir, "cleaned.csv")
	require.NoError(t, os.WriteFile(out, []byte("previous"), 0o644))
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	o := opts(in, out)
	o.SQLitePath = filepath.Join(blocker, "reviews.db")
	_, err := Run(context.Background(), o)
	var ioe *IOError
	require.ErrorAs(t, err, &ioe)
	assert.Equal(t, "sqlite mirror", ioe.Op)

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(b))
}

func TestEndToEndThreeRowScenario(t *testing.T) {
	in := writeRaw(t, "App,Translated_Review,Sentiment\nX,Love it,Positive\nX,Hate it,Negative\nX,nan,Positive\n")
	out := filepath.Join(t.TempDir(), "cleaned.csv")
	res, err := Run(context.Background(), opts(in, out))
	require.NoError(t, err)
	assert.Equal(t, 2, res.RowsKept)

	ds, err := review.Load(context.Background(), out, review.LoadOptions{NAValues: config.DefaultNAValues})
	require.NoError(t, err)
	require.Equal(t, 2, ds.Len())
	assert.Equal(t, []string{"X"}, ds.Apps())
}

func TestResultPrint(t *testing.T) {
	in := writeRaw(t, rawCSV)
	out := filepath.Join(t.TempDir(), "cleaned.csv")
	res, err := Run(context.Background(), opts(in, out))
	require.NoError(t, err)

	var buf bytes.Buffer
	res.Print(&buf)
	s := buf.String()
	assert.Contains(t, s, "✓ Saved cleaned dataset to: "+out)
	assert.Contains(t, s, "Total reviews after cleaning: 4")
	assert.Contains(t, s, "Dropped 1 of 5")
	assert.Contains(t, s, "[4x4] DataFrame")
	assert.Contains(t, s, "crashes all the")
}

func TestSampleFrameShortensText(t *testing.T) {
	df := SampleFrame([][]string{{"App", strings.Repeat("word ", 20), "Positive", "word"}})
	require.NoError(t, df.Error())
	assert.Equal(t, 1, df.Nrow())
	assert.LessOrEqual(t, len([]rune(df.Elem(0, 1).String())), 20)
}
