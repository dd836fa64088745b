package explorer

import (
	"fmt"

	"github.com/shrutipatidar/Google-Play-Store-App-Review-Sentiment-Analysis/internal/review"
)

// Placeholder text for empty panels.
const (
	NoReviewsMessage  = "No reviews match the current filters."
	NoWordsMessage    = "Not enough words to generate frequency chart."
	NoCloudMessage    = "Not enough positive reviews to show a word cloud."
	NoNegativeMessage = "No apps with reviews."
	NoPerfectMessage  = "No app has only positive reviews with enough reviews."
)

// Options sets the sizes and thresholds of the derived artifacts.
type Options struct {
	TopWords          int
	SampleRows        int
	TopApps           int
	PerfectMinReviews int
	CloudMinChars     int
	CloudMaxWords     int
}

// DefaultOptions returns the dashboard's standard sizes.
func DefaultOptions() Options {
	return Options{
		TopWords:          10,
		SampleRows:        20,
		TopApps:           5,
		PerfectMinReviews: 5,
		CloudMinChars:     5,
		CloudMaxWords:     200,
	}
}

// OverviewPanel holds summary metrics and the sentiment distribution.
type OverviewPanel struct {
	Summary      Summary      `json:"summary"`
	Distribution []LabelCount `json:"distribution"`
	Error        string       `json:"error,omitempty"`
}

// WordsPanel holds the word frequency ranking and the positive word cloud.
type WordsPanel struct {
	Frequency WordFrequency `json:"frequency"`
	Cloud     Cloud         `json:"cloud"`
	Error     string        `json:"error,omitempty"`
}

// SamplesPanel holds the head of the view.
type SamplesPanel struct {
	Rows  []Sample `json:"rows"`
	Total int      `json:"total"`
	Error string   `json:"error,omitempty"`
}

// InsightsPanel holds the cross-app rankings, computed over the full dataset.
type InsightsPanel struct {
	TopNegative     []AppShare `json:"top_negative"`
	PerfectPositive []AppCount `json:"perfect_positive"`
	MinReviews      int        `json:"min_reviews"`
	Error           string     `json:"error,omitempty"`
}

// Dashboard is every view derived from one filter selection.
type Dashboard struct {
	Dataset  string        `json:"dataset"`
	Filter   Filter        `json:"filter"`
	Overview OverviewPanel `json:"overview"`
	Words    WordsPanel    `json:"words"`
	Samples  SamplesPanel  `json:"samples"`
	Insights InsightsPanel `json:"insights"`
}

// Empty reports whether the filtered view had no rows.
func (d *Dashboard) Empty() bool { return d.Overview.Summary.Total == 0 }

// Build derives the dashboard for f. Panels are computed independently; a
// panic in one is reported in that panel's Error and the others still render.
func Build(ds *review.Dataset, f Filter, opt Options) *Dashboard {
	d := &Dashboard{Dataset: ds.Name(), Filter: f}
	var view []review.Record
	guard(&d.Overview.Error, func() {
		view = Apply(ds, f)
		d.Overview.Summary = Summarize(view)
		d.Overview.Distribution = Distribution(view)
	})
	guard(&d.Words.Error, func() {
		d.Words.Frequency = TopWords(view, opt.TopWords)
		d.Words.Cloud = PositiveCloud(view, opt.CloudMinChars, opt.CloudMaxWords)
	})
	guard(&d.Samples.Error, func() {
		d.Samples.Rows = Samples(view, opt.SampleRows)
		d.Samples.Total = len(view)
	})
	d.Insights = BuildInsights(ds, opt)
	return d
}

// BuildInsights computes the cross-app panel alone; it does not depend on
// any filter.
func BuildInsights(ds *review.Dataset, opt Options) InsightsPanel {
	p := InsightsPanel{MinReviews: opt.PerfectMinReviews}
	guard(&p.Error, func() {
		p.TopNegative = TopNegativeApps(ds, opt.TopApps)
		p.PerfectPositive = PerfectPositiveApps(ds, opt.TopApps, opt.PerfectMinReviews)
	})
	return p
}

// guard runs fn and records a recovered panic in *errp.
func guard(errp *string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			*errp = fmt.Sprintf("panel failed: %v", r)
		}
	}()
	fn()
}
