package explorer

import (
	"fmt"
	"strings"
)

const barWidth = 30

// Markdown renders the dashboard as a sectioned plain-text report with text
// bar charts.
func (d *Dashboard) Markdown() string {
	var b strings.Builder
	b.WriteString("[SELECTION]\n")
	if d.Dataset != "" {
		b.WriteString(fmt.Sprintf("Dataset: %s\n", d.Dataset))
	}
	b.WriteString(fmt.Sprintf("App: %s\n", safeName(d.Filter.App)))
	b.WriteString(fmt.Sprintf("Sentiments: %s\n", d.sentimentList()))
	if d.Filter.Keyword != "" {
		b.WriteString(fmt.Sprintf("Keyword: %q\n", d.Filter.Keyword))
	}

	b.WriteString("\n[SUMMARY]\n")
	if d.Overview.Error != "" {
		b.WriteString(fmt.Sprintf("✗ %s\n", d.Overview.Error))
	} else {
		s := d.Overview.Summary
		b.WriteString(fmt.Sprintf("- Total Reviews: %d\n", s.Total))
		b.WriteString(fmt.Sprintf("- Positive: %.1f%%\n", s.PositivePct))
		b.WriteString(fmt.Sprintf("- Negative: %.1f%%\n", s.NegativePct))
		b.WriteString("\n[SENTIMENT DISTRIBUTION]\n")
		if len(d.Overview.Distribution) == 0 {
			b.WriteString(NoReviewsMessage + "\n")
		}
		for _, lc := range d.Overview.Distribution {
			b.WriteString(fmt.Sprintf("- %-8s %s %d (%.1f%%)\n", lc.Sentiment, bar(lc.Share), lc.Count, lc.Share*100))
		}
	}

	b.WriteString("\n[TOP WORDS]\n")
	switch {
	case d.Words.Error != "":
		b.WriteString(fmt.Sprintf("✗ %s\n", d.Words.Error))
	case d.Words.Frequency.Insufficient || len(d.Words.Frequency.Words) == 0:
		b.WriteString(NoWordsMessage + "\n")
	default:
		hi := float64(d.Words.Frequency.Words[0].Count)
		for i, wc := range d.Words.Frequency.Words {
			b.WriteString(fmt.Sprintf("%2d. %-14s %s %d\n", i+1, wc.Word, bar(float64(wc.Count)/hi), wc.Count))
		}
	}

	b.WriteString("\n[POSITIVE WORD CLOUD]\n")
	switch {
	case d.Words.Error != "":
		b.WriteString(fmt.Sprintf("✗ %s\n", d.Words.Error))
	case d.Words.Cloud.Insufficient:
		b.WriteString(NoCloudMessage + "\n")
	default:
		lim := len(d.Words.Cloud.Words)
		if lim > 30 {
			lim = 30
		}
		parts := make([]string, 0, lim)
		for _, wc := range d.Words.Cloud.Words[:lim] {
			parts = append(parts, fmt.Sprintf("%s(%d)", wc.Word, wc.Count))
		}
		b.WriteString(strings.Join(parts, " "))
		if len(d.Words.Cloud.Words) > lim {
			b.WriteString(fmt.Sprintf(" … +%d more", len(d.Words.Cloud.Words)-lim))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n[SAMPLE REVIEWS]\n")
	switch {
	case d.Samples.Error != "":
		b.WriteString(fmt.Sprintf("✗ %s\n", d.Samples.Error))
	case len(d.Samples.Rows) == 0:
		b.WriteString(NoReviewsMessage + "\n")
	default:
		b.WriteString(fmt.Sprintf("Showing %d of %d\n\n", len(d.Samples.Rows), d.Samples.Total))
		b.WriteString("| Translated_Review | Sentiment |\n|---|---|\n")
		for _, s := range d.Samples.Rows {
			b.WriteString(fmt.Sprintf("| %s | %s |\n", safeVal(s.Review), s.Sentiment))
		}
	}

	b.WriteString("\n")
	b.WriteString(d.Insights.Markdown())
	return b.String()
}

// Markdown renders the cross-app rankings.
func (p InsightsPanel) Markdown() string {
	var b strings.Builder
	b.WriteString("[TOP NEGATIVE APPS]\n")
	if p.Error != "" {
		b.WriteString(fmt.Sprintf("✗ %s\n", p.Error))
		return b.String()
	}
	if len(p.TopNegative) == 0 {
		b.WriteString(NoNegativeMessage + "\n")
	}
	for i, a := range p.TopNegative {
		b.WriteString(fmt.Sprintf("%d. %s: %s (%d/%d)\n", i+1, a.App, FormatPercent(a.Percent), a.Negative, a.Total))
	}
	b.WriteString(fmt.Sprintf("\n[PERFECT POSITIVE APPS] (>= %d reviews)\n", p.MinReviews))
	if len(p.PerfectPositive) == 0 {
		b.WriteString(NoPerfectMessage + "\n")
	}
	for i, a := range p.PerfectPositive {
		b.WriteString(fmt.Sprintf("%d. %s: %d reviews\n", i+1, a.App, a.Reviews))
	}
	return b.String()
}

// FormatPercent renders a two-decimal percentage such as "66.67%".
func FormatPercent(p float64) string { return fmt.Sprintf("%.2f%%", p) }

func (d *Dashboard) sentimentList() string {
	if len(d.Filter.Sentiments) == 0 {
		return "(none)"
	}
	names := make([]string, len(d.Filter.Sentiments))
	for i, s := range d.Filter.Sentiments {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

func bar(frac float64) string {
	n := int(frac*barWidth + 0.5)
	if frac > 0 && n == 0 {
		n = 1
	}
	if n > barWidth {
		n = barWidth
	}
	return strings.Repeat("█", n) + strings.Repeat("░", barWidth-n)
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(none)"
	}
	return s
}

func safeVal(s string) string {
	return strings.ReplaceAll(strings.Join(strings.Fields(s), " "), "|", "/")
}
