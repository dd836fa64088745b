package explorer

import (
	"sort"

	"github.com/shrutipatidar/Google-Play-Store-App-Review-Sentiment-Analysis/internal/review"
)

// Summary holds the headline metrics of a view. Percentages are in 0..100
// and are 0 for an empty view.
type Summary struct {
	Total       int     `json:"total"`
	PositivePct float64 `json:"positive_pct"`
	NegativePct float64 `json:"negative_pct"`
}

// Summarize counts rows and the positive and negative shares.
func Summarize(view []review.Record) Summary {
	s := Summary{Total: len(view)}
	if s.Total == 0 {
		return s
	}
	var pos, neg int
	for _, r := range view {
		switch r.Sentiment {
		case review.Positive:
			pos++
		case review.Negative:
			neg++
		}
	}
	s.PositivePct = float64(pos) * 100 / float64(s.Total)
	s.NegativePct = float64(neg) * 100 / float64(s.Total)
	return s
}

// LabelCount is one slice of the sentiment distribution.
type LabelCount struct {
	Sentiment review.Sentiment `json:"sentiment"`
	Count     int              `json:"count"`
	Share     float64          `json:"share"`
}

// Distribution counts the known labels present in the view, largest first.
// Zero counts are omitted; equal counts keep Positive, Neutral, Negative
// order.
func Distribution(view []review.Record) []LabelCount {
	counts := map[review.Sentiment]int{}
	known := 0
	for _, r := range view {
		if r.Sentiment.Known() {
			counts[r.Sentiment]++
			known++
		}
	}
	var out []LabelCount
	for _, l := range review.Labels() {
		if n := counts[l]; n > 0 {
			out = append(out, LabelCount{Sentiment: l, Count: n, Share: float64(n) / float64(known)})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}
