package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shrutipatidar/Google-Play-Store-App-Review-Sentiment-Analysis/internal/tabular"
)

func sampleTable() *tabular.Table {
	return &tabular.Table{
		Header: []string{"App", "Translated_Review", "Sentiment", "cleaned"},
		Rows: [][]string{
			{"X", "Great, app!", "Positive", "great app"},
			{"X", "Bad \"UI\"", "Negative", "bad ui"},
			{"Y", ""},
		},
	}
}

func TestEncodeCSVPadsAndQuotes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeCSV(&buf, sampleTable()))
	want := "App,Translated_Review,Sentiment,cleaned\n" +
		"X,\"Great, app!\",Positive,great app\n" +
		"X,\"Bad \"\"UI\"\"\",Negative,bad ui\n" +
		"Y,,,\n"
	assert.Equal(t, want, buf.String())
}

func TestCSVWriterCreatesDirAndReplaces(t *testing.T) {
	p := filepath.Join(t.TempDir(), "data", "out.csv")
	w, err := NewCSVWriter(p)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(p, []byte("stale"), 0o644))

	require.NoError(t, w.WriteTable(context.Background(), Run{}, sampleTable()))
	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Contains(t, string(b), "App,Translated_Review")
	assert.NotContains(t, string(b), "stale")
	require.NoError(t, w.Close())
}

func TestSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	p := filepath.Join(t.TempDir(), "mirror", "reviews.db")

	sw, err := NewSQLiteWriter(ctx, p)
	require.NoError(t, err)
	run := Run{ID: "run-1", Source: "raw.csv", Output: "out.csv", Kept: 3, Dropped: 1, At: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)}
	require.NoError(t, sw.WriteTable(ctx, run, sampleTable()))

	// a second run replaces the table rather than appending
	second := &tabular.Table{Header: []string{"App", "Translated_Review", "Sentiment"}, Rows: [][]string{{"Z", "ok", "Neutral"}}}
	run2 := run
	run2.ID, run2.At = "run-2", run.At.Add(time.Hour)
	require.NoError(t, sw.WriteTable(ctx, run2, second))
	require.NoError(t, sw.Close())

	got, err := ReadSQLite(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, "reviews.db", got.Name)
	assert.Equal(t, second.Header, got.Header)
	assert.Equal(t, second.Rows, got.Rows)

	last, err := LastRun(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, "run-2", last.ID)
	assert.Equal(t, run2.At, last.At)
}

func TestSQLiteKeepsRowOrderAndPadding(t *testing.T) {
	ctx := context.Background()
	p := filepath.Join(t.TempDir(), "reviews.sqlite")
	sw, err := NewSQLiteWriter(ctx, p)
	require.NoError(t, err)
	require.NoError(t, sw.WriteTable(ctx, Run{ID: "r", At: time.Now()}, sampleTable()))
	require.NoError(t, sw.Close())

	got, err := ReadSQLite(ctx, p)
	require.NoError(t, err)
	require.Len(t, got.Rows, 3)
	assert.Equal(t, []string{"X", "Great, app!", "Positive", "great app"}, got.Rows[0])
	assert.Equal(t, []string{"Y", "", "", ""}, got.Rows[2])
}

func TestReadSQLiteMissingFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "absent.db")
	_, err := ReadSQLite(context.Background(), p)
	require.ErrorIs(t, err, os.ErrNotExist)
	_, statErr := os.Stat(p)
	assert.True(t, os.IsNotExist(statErr), "reading must not create the file")
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "($1,$2),($3,$4),($5,$6)", placeholders(3, 2))
	assert.Equal(t, "($1)", placeholders(1, 1))
	assert.Equal(t, "", placeholders(0, 4))
}

func TestBatchSizeStaysUnderParamLimit(t *testing.T) {
	assert.Equal(t, 500, batchSize(4))
	for _, ncol := range []int{1, 4, 200, 1000, 70000} {
		n := batchSize(ncol)
		assert.GreaterOrEqual(t, n, 1)
		if ncol <= maxPostgresParams {
			assert.LessOrEqual(t, n*ncol, maxPostgresParams)
		}
	}
}

func TestQuoteIdent(t *testing.T) {
	assert.Equal(t, `"App"`, quoteIdent("App"))
	assert.Equal(t, `"a""b"`, quoteIdent(`a"b`))
}
