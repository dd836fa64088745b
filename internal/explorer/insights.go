package explorer

import (
	"math"
	"sort"

	"github.com/shrutipatidar/Google-Play-Store-App-Review-Sentiment-Analysis/internal/review"
)

// AppShare is an app's negative-review share across the whole dataset.
type AppShare struct {
	App      string  `json:"app"`
	Negative int     `json:"negative"`
	Total    int     `json:"total"`
	Fraction float64 `json:"fraction"`
	// Percent is Fraction*100 rounded to two decimals.
	Percent float64 `json:"percent"`
}

// AppCount is an app with its review count.
type AppCount struct {
	App     string `json:"app"`
	Reviews int    `json:"reviews"`
}

type appTally struct {
	total, pos, neg int
}

func tallyApps(ds *review.Dataset) map[string]*appTally {
	m := map[string]*appTally{}
	for _, r := range ds.Records() {
		if r.App == "" {
			continue
		}
		t := m[r.App]
		if t == nil {
			t = &appTally{}
			m[r.App] = t
		}
		t.total++
		switch r.Sentiment {
		case review.Positive:
			t.pos++
		case review.Negative:
			t.neg++
		}
	}
	return m
}

// TopNegativeApps ranks every app by the fraction of its rows labelled
// Negative, highest first, ties by app name. Rows with other or missing
// labels still count toward the total.
func TopNegativeApps(ds *review.Dataset, n int) []AppShare {
	tallies := tallyApps(ds)
	out := make([]AppShare, 0, len(tallies))
	for app, t := range tallies {
		frac := float64(t.neg) / float64(t.total)
		out = append(out, AppShare{
			App:      app,
			Negative: t.neg,
			Total:    t.total,
			Fraction: frac,
			Percent:  math.Round(frac*100*100) / 100,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Fraction == out[j].Fraction {
			return out[i].App < out[j].App
		}
		return out[i].Fraction > out[j].Fraction
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// PerfectPositiveApps lists apps whose every row is Positive and that have at
// least minReviews rows, most reviewed first, ties by app name.
func PerfectPositiveApps(ds *review.Dataset, n, minReviews int) []AppCount {
	var out []AppCount
	for app, t := range tallyApps(ds) {
		if t.pos == t.total && t.total >= minReviews {
			out = append(out, AppCount{App: app, Reviews: t.total})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Reviews == out[j].Reviews {
			return out[i].App < out[j].App
		}
		return out[i].Reviews > out[j].Reviews
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
