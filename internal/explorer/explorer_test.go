package explorer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shrutipatidar/Google-Play-Store-App-Review-Sentiment-Analysis/internal/review"
)

func rec(app, text string, s review.Sentiment) review.Record {
	return review.Record{App: app, Review: text, HasReview: true, Sentiment: s, Cleaned: review.Clean(text)}
}

func fixture() *review.Dataset {
	return review.New("fixture.csv", []review.Record{
		rec("Alpha", "Great app, love it", review.Positive),
		rec("Alpha", "Crashes on launch", review.Negative),
		rec("Alpha", "It is ok I guess", review.Neutral),
		rec("Alpha", "GREAT design", review.Positive),
		{App: "Alpha", Sentiment: review.Positive},
		rec("Beta", "great", review.Negative),
		rec("alpha", "different app", review.Positive),
	})
}

func allSentiments(app string) Filter {
	return Filter{App: app, Sentiments: review.Labels()}
}

func TestApplyAppIsCaseSensitive(t *testing.T) {
	view := Apply(fixture(), allSentiments("Alpha"))
	assert.Len(t, view, 5)
	for _, r := range view {
		assert.Equal(t, "Alpha", r.App)
	}
	assert.Len(t, Apply(fixture(), allSentiments("alpha")), 1)
	assert.Empty(t, Apply(fixture(), allSentiments("Gamma")))
}

func TestApplyMissingAppNeverMatches(t *testing.T) {
	ds := review.New("na-apps", []review.Record{
		{Sentiment: review.Positive, Review: "nice", HasReview: true, Cleaned: "nice"},
		{Sentiment: review.Negative, Review: "bad", HasReview: true, Cleaned: "bad"},
	})
	assert.Empty(t, ds.Apps())
	f := DefaultFilter(ds)
	assert.Empty(t, f.App)
	assert.Empty(t, Apply(ds, f))

	d := Build(ds, f, DefaultOptions())
	assert.True(t, d.Empty())
	assert.Equal(t, 0, d.Overview.Summary.Total)
	assert.Contains(t, d.Markdown(), NoReviewsMessage)
}

func TestApplyEmptySentimentSetYieldsEmptyView(t *testing.T) {
	assert.Empty(t, Apply(fixture(), Filter{App: "Alpha"}))
}

func TestApplyKeywordCaseInsensitiveAndSkipsMissing(t *testing.T) {
	f := allSentiments("Alpha")
	f.Keyword = "great"
	view := Apply(fixture(), f)
	require.Len(t, view, 2)
	assert.Equal(t, "Great app, love it", view[0].Review)
	assert.Equal(t, "GREAT design", view[1].Review)

	// keyword is literal text, not a pattern
	f.Keyword = "."
	assert.Empty(t, Apply(fixture(), f))
	f.Keyword = ","
	assert.Len(t, Apply(fixture(), f), 1)
}

func TestApplyCountEqualsConjunction(t *testing.T) {
	ds := fixture()
	keywords := []string{"", "great", "a", "zzz"}
	sets := [][]review.Sentiment{
		nil,
		{review.Positive},
		{review.Negative, review.Neutral},
		review.Labels(),
	}
	for _, app := range append(ds.Apps(), "Nope") {
		for _, set := range sets {
			for _, kw := range keywords {
				f := Filter{App: app, Sentiments: set, Keyword: kw}
				want := 0
				for _, r := range ds.Records() {
					inSet := false
					for _, s := range set {
						inSet = inSet || r.Sentiment == s
					}
					kwOK := kw == "" || (r.HasReview && strings.Contains(strings.ToLower(r.Review), strings.ToLower(kw)))
					if r.App == app && inSet && kwOK {
						want++
					}
				}
				assert.Len(t, Apply(ds, f), want, "filter %+v", f)
			}
		}
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(Apply(fixture(), allSentiments("Alpha")))
	assert.Equal(t, 5, s.Total)
	assert.InDelta(t, 60.0, s.PositivePct, 1e-9)
	assert.InDelta(t, 20.0, s.NegativePct, 1e-9)
	assert.LessOrEqual(t, s.PositivePct+s.NegativePct, 100.0)

	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestDistributionOmitsZeroAndOrdersByCount(t *testing.T) {
	got := Distribution(Apply(fixture(), allSentiments("Alpha")))
	want := []LabelCount{
		{Sentiment: review.Positive, Count: 3, Share: 0.6},
		{Sentiment: review.Neutral, Count: 1, Share: 0.2},
		{Sentiment: review.Negative, Count: 1, Share: 0.2},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("distribution mismatch (-want +got):\n%s", diff)
	}

	onlyNeg := Distribution([]review.Record{rec("A", "x", review.Negative), {App: "A", Sentiment: "Mixed"}})
	require.Len(t, onlyNeg, 1)
	assert.Equal(t, review.Negative, onlyNeg[0].Sentiment)
	assert.Empty(t, Distribution(nil))
}

func TestTopWordsGoodAppGoodUse(t *testing.T) {
	wf := TopWords([]review.Record{{Cleaned: "good app good use"}}, 10)
	require.False(t, wf.Insufficient)
	assert.Equal(t, WordCount{Word: "good", Count: 2}, wf.Words[0])
	// ties keep first-seen order
	want := []WordCount{{Word: "good", Count: 2}, {Word: "app", Count: 1}, {Word: "use", Count: 1}}
	if diff := cmp.Diff(want, wf.Words); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestTopWordsLimitAndInsufficient(t *testing.T) {
	var view []review.Record
	for i := 0; i < 15; i++ {
		view = append(view, review.Record{Cleaned: fmt.Sprintf("w%c common", 'a'+i)})
	}
	wf := TopWords(view, 10)
	require.Len(t, wf.Words, 10)
	assert.Equal(t, "common", wf.Words[0].Word)
	assert.Equal(t, "wa", wf.Words[1].Word)

	assert.True(t, TopWords(nil, 10).Insufficient)
	assert.True(t, TopWords([]review.Record{{Cleaned: "   "}}, 10).Insufficient)
}

func TestPositiveCloud(t *testing.T) {
	view := []review.Record{
		{Sentiment: review.Positive, Cleaned: "love this app"},
		{Sentiment: review.Negative, Cleaned: "hate hate"},
		{Sentiment: review.Positive, Cleaned: ""},
		{Sentiment: review.Positive, Cleaned: "love the design"},
	}
	c := PositiveCloud(view, 5, 200)
	require.False(t, c.Insufficient)
	assert.Equal(t, "love this app love the design", c.Text)
	want := []WordCount{
		{Word: "love", Count: 2, Weight: 1},
		{Word: "app", Count: 1, Weight: 0.5},
		{Word: "design", Count: 1, Weight: 0.5},
	}
	if diff := cmp.Diff(want, c.Words); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}

	short := PositiveCloud([]review.Record{{Sentiment: review.Positive, Cleaned: "ok"}}, 5, 200)
	assert.True(t, short.Insufficient)
	noPositive := PositiveCloud([]review.Record{{Sentiment: review.Negative, Cleaned: "long negative text"}}, 5, 200)
	assert.True(t, noPositive.Insufficient)
	exactly := PositiveCloud([]review.Record{{Sentiment: review.Positive, Cleaned: "great"}}, 5, 200)
	assert.False(t, exactly.Insufficient)
}

func TestPositiveCloudOnlyStopWords(t *testing.T) {
	c := PositiveCloud([]review.Record{{Sentiment: review.Positive, Cleaned: "the and the a"}}, 5, 200)
	assert.True(t, c.Insufficient)
	assert.Empty(t, c.Words)

	d := &Dashboard{Words: WordsPanel{Cloud: c, Frequency: WordFrequency{Insufficient: true}}}
	assert.Contains(t, d.Markdown(), NoCloudMessage)
}

func TestSamplesKeepOrderAndLimit(t *testing.T) {
	var view []review.Record
	for i := 0; i < 25; i++ {
		view = append(view, rec("A", fmt.Sprintf("review %d", i), review.Neutral))
	}
	s := Samples(view, 20)
	require.Len(t, s, 20)
	assert.Equal(t, "review 0", s[0].Review)
	assert.Equal(t, "review 19", s[19].Review)
	assert.Len(t, Samples(view[:3], 20), 3)
	assert.Empty(t, Samples(nil, 20))
}

func datasetWithFractions() *review.Dataset {
	// negative fractions: A 80%, B 80%, C 50%, D 30%, E 10%, F 5%
	spec := []struct {
		app      string
		neg, tot int
	}{
		{"B", 8, 10}, {"A", 8, 10}, {"C", 5, 10}, {"D", 3, 10}, {"E", 1, 10}, {"F", 1, 20},
	}
	var recs []review.Record
	for _, s := range spec {
		for i := 0; i < s.tot; i++ {
			sent := review.Positive
			if i < s.neg {
				sent = review.Negative
			}
			recs = append(recs, rec(s.app, "text", sent))
		}
	}
	return review.New("fractions", recs)
}

func TestTopNegativeApps(t *testing.T) {
	got := TopNegativeApps(datasetWithFractions(), 5)
	apps := make([]string, len(got))
	for i, a := range got {
		apps[i] = a.App
	}
	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, apps)
	assert.Equal(t, 80.0, got[0].Percent)
	assert.Equal(t, "80.00%", FormatPercent(got[0].Percent))
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Fraction, got[i].Fraction)
	}
}

func TestTopNegativeAppsRoundingAndUnknownLabels(t *testing.T) {
	ds := review.New("r", []review.Record{
		rec("X", "a", review.Negative),
		rec("X", "b", review.Positive),
		{App: "X", Review: "c", HasReview: true},
		{App: "", Review: "orphan", HasReview: true, Sentiment: review.Negative},
	})
	got := TopNegativeApps(ds, 5)
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].Total)
	assert.Equal(t, 33.33, got[0].Percent)
	assert.Equal(t, "33.33%", FormatPercent(got[0].Percent))
}

func TestPerfectPositiveThreshold(t *testing.T) {
	var recs []review.Record
	add := func(app string, n int, s review.Sentiment) {
		for i := 0; i < n; i++ {
			recs = append(recs, rec(app, "nice", s))
		}
	}
	add("Five", 5, review.Positive)
	add("Four", 4, review.Positive)
	add("Mixed", 9, review.Positive)
	add("Mixed", 1, review.Neutral)
	add("Seven", 7, review.Positive)
	add("AlsoFive", 5, review.Positive)

	got := PerfectPositiveApps(review.New("p", recs), 5, 5)
	want := []AppCount{{App: "Seven", Reviews: 7}, {App: "AlsoFive", Reviews: 5}, {App: "Five", Reviews: 5}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestBuildEndToEndScenario(t *testing.T) {
	ds := review.New("cleaned.csv", []review.Record{
		rec("X", "Love it", review.Positive),
		rec("X", "Hate it", review.Negative),
	})
	d := Build(ds, allSentiments("X"), DefaultOptions())
	assert.Equal(t, 2, d.Overview.Summary.Total)
	assert.Equal(t, 50.0, d.Overview.Summary.PositivePct)
	assert.Equal(t, 50.0, d.Overview.Summary.NegativePct)
	assert.Equal(t, 2, d.Samples.Total)
	assert.False(t, d.Empty())

	md := d.Markdown()
	assert.Contains(t, md, "- Positive: 50.0%")
	assert.Contains(t, md, "- Negative: 50.0%")
	assert.Contains(t, md, "[TOP NEGATIVE APPS]\n1. X: 50.00% (1/2)")
}

func TestBuildEmptySelectionRendersPlaceholders(t *testing.T) {
	d := Build(fixture(), Filter{App: "Alpha"}, DefaultOptions())
	assert.True(t, d.Empty())
	assert.Equal(t, Summary{}, d.Overview.Summary)
	assert.True(t, d.Words.Frequency.Insufficient)
	assert.True(t, d.Words.Cloud.Insufficient)
	assert.Empty(t, d.Samples.Rows)
	// insights ignore the filter
	assert.NotEmpty(t, d.Insights.TopNegative)

	md := d.Markdown()
	assert.Contains(t, md, NoReviewsMessage)
	assert.Contains(t, md, NoWordsMessage)
	assert.Contains(t, md, NoCloudMessage)
	assert.Contains(t, md, "Sentiments: (none)")
}

func TestGuardConfinesPanic(t *testing.T) {
	var msg string
	ran := false
	guard(&msg, func() { panic("boom") })
	guard(new(string), func() { ran = true })
	assert.Equal(t, "panel failed: boom", msg)
	assert.True(t, ran)

	d := &Dashboard{Words: WordsPanel{Error: msg}}
	md := d.Markdown()
	assert.Contains(t, md, "[TOP WORDS]\n✗ panel failed: boom")
	assert.Contains(t, md, "[SUMMARY]")
}

func TestDefaultFilterAndToggle(t *testing.T) {
	f := DefaultFilter(fixture())
	assert.Equal(t, "Alpha", f.App)
	assert.Equal(t, review.Labels(), f.Sentiments)

	f = f.Toggle(review.Neutral)
	assert.Equal(t, []review.Sentiment{review.Positive, review.Negative}, f.Sentiments)
	f = f.Toggle(review.Neutral)
	assert.Equal(t, review.Labels(), f.Sentiments)

	empty := DefaultFilter(review.New("none", nil))
	assert.Equal(t, "", empty.App)
}

func TestParseSentiments(t *testing.T) {
	got, err := ParseSentiments([]string{"positive, NEGATIVE", "Positive"})
	require.NoError(t, err)
	assert.Equal(t, []review.Sentiment{review.Positive, review.Negative}, got)
	_, err = ParseSentiments([]string{"happy"})
	assert.Error(t, err)
}
