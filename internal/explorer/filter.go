// Package explorer derives the filtered view and every dashboard artifact
// from an immutable review dataset.
package explorer

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/shrutipatidar/Google-Play-Store-App-Review-Sentiment-Analysis/internal/review"
)

// Filter is the current selection: one app, a sentiment set and an optional
// keyword.
type Filter struct {
	App        string             `json:"app"`
	Sentiments []review.Sentiment `json:"sentiments"`
	Keyword    string             `json:"keyword,omitempty"`
}

// DefaultFilter selects the first app and all three sentiments.
func DefaultFilter(ds *review.Dataset) Filter {
	f := Filter{Sentiments: review.Labels()}
	if apps := ds.Apps(); len(apps) > 0 {
		f.App = apps[0]
	}
	return f
}

// ParseSentiments converts labels such as "positive,Negative" into a set.
// Unknown labels are an error.
func ParseSentiments(values []string) ([]review.Sentiment, error) {
	var out []review.Sentiment
	seen := map[review.Sentiment]bool{}
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			s, ok := review.ParseSentiment(part)
			if !ok {
				return nil, fmt.Errorf("unknown sentiment %q (use Positive, Neutral or Negative)", part)
			}
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	return out, nil
}

// Has reports whether s is in the selected set.
func (f Filter) Has(s review.Sentiment) bool {
	for _, v := range f.Sentiments {
		if v == s {
			return true
		}
	}
	return false
}

// Toggle returns a copy of f with s added or removed, keeping label order.
func (f Filter) Toggle(s review.Sentiment) Filter {
	on := !f.Has(s)
	out := f
	out.Sentiments = nil
	for _, l := range review.Labels() {
		if (l == s && on) || (l != s && f.Has(l)) {
			out.Sentiments = append(out.Sentiments, l)
		}
	}
	return out
}

// Apply narrows the dataset by app equality, sentiment membership and a
// case-insensitive keyword substring, in that order. Source order is kept.
// Rows with a missing app never match, so an empty App selects nothing.
func Apply(ds *review.Dataset, f Filter) []review.Record {
	if f.App == "" || len(f.Sentiments) == 0 {
		return nil
	}
	want := make(map[review.Sentiment]bool, len(f.Sentiments))
	for _, s := range f.Sentiments {
		want[s] = true
	}
	match := keywordMatcher(f.Keyword)
	var view []review.Record
	for _, r := range ds.Records() {
		if r.App != f.App || !want[r.Sentiment] {
			continue
		}
		if match != nil && !match(r) {
			continue
		}
		view = append(view, r)
	}
	return view
}

// keywordMatcher returns nil when there is no keyword. A Caser carries state,
// so each call builds its own.
func keywordMatcher(keyword string) func(review.Record) bool {
	if keyword == "" {
		return nil
	}
	fold := cases.Fold()
	needle := fold.String(keyword)
	return func(r review.Record) bool {
		if !r.HasReview {
			return false
		}
		return strings.Contains(fold.String(r.Review), needle)
	}
}
