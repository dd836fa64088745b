package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/shrutipatidar/Google-Play-Store-App-Review-Sentiment-Analysis/internal/explorer"
	"github.com/shrutipatidar/Google-Play-Store-App-Review-Sentiment-Analysis/internal/review"
)

const barWidth = 30

// View implements tea.Model.
func (m Model) View() string {
	side := m.styles.Sidebar.Render(m.sidebarView())
	body := lipgloss.JoinVertical(lipgloss.Left, m.tabsView(), "", m.panelView())
	content := lipgloss.JoinHorizontal(lipgloss.Top, side, m.styles.Content.Render(body))
	help := m.styles.Muted.Render("↑/↓ app · 1/2/3 sentiment · / keyword · tab panel · e expand · q quit")
	return lipgloss.JoinVertical(lipgloss.Left, m.styles.Title.Render("Google Play Review Sentiment"), content, help)
}

func (m Model) sidebarView() string {
	var b strings.Builder
	b.WriteString(m.styles.Header.Render("App"))
	b.WriteString("\n")
	if len(m.apps) == 0 {
		b.WriteString(m.styles.Muted.Render("no apps"))
		b.WriteString("\n")
	}
	lo, hi := window(m.appIdx, len(m.apps), m.listHeight())
	for i := lo; i < hi; i++ {
		if i == m.appIdx {
			b.WriteString(m.styles.Selected.Render("> " + truncate(m.apps[i], 28)))
		} else {
			b.WriteString("  " + truncate(m.apps[i], 28))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Header.Render("Sentiment"))
	b.WriteString("\n")
	for i, s := range review.Labels() {
		mark := "[ ]"
		if m.filter.Has(s) {
			mark = "[x]"
		}
		b.WriteString(fmt.Sprintf("%d %s %s\n", i+1, mark, sentimentStyle(s).Render(s.String())))
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Header.Render("Keyword"))
	b.WriteString("\n")
	switch {
	case m.editing:
		b.WriteString(m.keyword.View())
	case m.filter.Keyword != "":
		b.WriteString(fmt.Sprintf("%q", m.filter.Keyword))
	default:
		b.WriteString(m.styles.Muted.Render("(none)"))
	}
	return b.String()
}

func (m Model) listHeight() int {
	h := m.height - 16
	if h < 5 {
		h = 5
	}
	return h
}

func (m Model) tabsView() string {
	tabs := make([]string, 0, tabCount)
	for t := Tab(0); t < tabCount; t++ {
		if t == m.activeTab {
			tabs = append(tabs, m.styles.ActiveTab.Render(t.String()))
		} else {
			tabs = append(tabs, m.styles.Tab.Render(t.String()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) panelView() string {
	switch m.activeTab {
	case TabWords:
		return m.wordsView()
	case TabSamples:
		return m.samplesView()
	case TabInsights:
		return m.insightsView()
	}
	return m.overviewView()
}

func (m Model) overviewView() string {
	p := m.dash.Overview
	if p.Error != "" {
		return m.styles.Error.Render("✗ " + p.Error)
	}
	if p.Summary.Total == 0 {
		return m.styles.Muted.Render(explorer.NoReviewsMessage)
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Total reviews  %d\n", p.Summary.Total))
	b.WriteString(fmt.Sprintf("%% Positive     %.1f%%\n", p.Summary.PositivePct))
	b.WriteString(fmt.Sprintf("%% Negative     %.1f%%\n\n", p.Summary.NegativePct))
	b.WriteString(m.styles.Header.Render("Sentiment distribution"))
	b.WriteString("\n")
	for _, lc := range p.Distribution {
		st := sentimentStyle(lc.Sentiment)
		b.WriteString(fmt.Sprintf("%-9s %s %d (%.1f%%)\n",
			lc.Sentiment, st.Render(bar(lc.Share)), lc.Count, lc.Share*100))
	}
	return b.String()
}

func (m Model) wordsView() string {
	p := m.dash.Words
	if p.Error != "" {
		return m.styles.Error.Render("✗ " + p.Error)
	}
	var b strings.Builder
	b.WriteString(m.styles.Header.Render(fmt.Sprintf("Top %d words", m.opt.TopWords)))
	b.WriteString("\n")
	if p.Frequency.Insufficient || len(p.Frequency.Words) == 0 {
		b.WriteString(m.styles.Muted.Render(explorer.NoWordsMessage))
		b.WriteString("\n")
	} else {
		hi := float64(p.Frequency.Words[0].Count)
		for _, wc := range p.Frequency.Words {
			b.WriteString(fmt.Sprintf("%-14s %s %d\n", truncate(wc.Word, 14), m.styles.Bar.Render(bar(float64(wc.Count)/hi)), wc.Count))
		}
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Header.Render("Positive word cloud"))
	b.WriteString("\n")
	if p.Cloud.Insufficient {
		b.WriteString(m.styles.Muted.Render(explorer.NoCloudMessage))
		return b.String()
	}
	words := make([]string, 0, len(p.Cloud.Words))
	for _, wc := range p.Cloud.Words {
		st := lipgloss.NewStyle().Foreground(colorPositive)
		if wc.Weight >= 0.5 {
			st = st.Bold(true)
		}
		words = append(words, st.Render(wc.Word))
	}
	width := m.width - 40
	if width < 30 {
		width = 30
	}
	b.WriteString(lipgloss.NewStyle().Width(width).Render(strings.Join(words, " ")))
	return b.String()
}

func (m Model) samplesView() string {
	p := m.dash.Samples
	if p.Error != "" {
		return m.styles.Error.Render("✗ " + p.Error)
	}
	if p.Total == 0 {
		return m.styles.Muted.Render(explorer.NoReviewsMessage)
	}
	state := "collapsed, e to expand"
	if m.expanded {
		state = "expanded, e to collapse"
	}
	head := m.styles.Header.Render(fmt.Sprintf("Sample reviews (%d of %d)", len(p.Rows), p.Total))
	return head + " " + m.styles.Muted.Render(state) + "\n" + m.samples.View()
}

func (m Model) insightsView() string {
	p := m.dash.Insights
	if p.Error != "" {
		return m.styles.Error.Render("✗ " + p.Error)
	}
	var b strings.Builder
	b.WriteString(m.styles.Header.Render("Top apps by negative review share"))
	b.WriteString("\n")
	if len(p.TopNegative) == 0 {
		b.WriteString(m.styles.Muted.Render(explorer.NoNegativeMessage))
		b.WriteString("\n")
	}
	for i, a := range p.TopNegative {
		b.WriteString(fmt.Sprintf("%d. %-30s %s (%d/%d)\n", i+1, truncate(a.App, 30), explorer.FormatPercent(a.Percent), a.Negative, a.Total))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Header.Render(fmt.Sprintf("Apps with only positive reviews (>= %d reviews)", p.MinReviews)))
	b.WriteString("\n")
	if len(p.PerfectPositive) == 0 {
		b.WriteString(m.styles.Muted.Render(explorer.NoPerfectMessage))
	}
	for _, a := range p.PerfectPositive {
		b.WriteString(fmt.Sprintf("- %-30s %d reviews\n", truncate(a.App, 30), a.Reviews))
	}
	return b.String()
}

func bar(frac float64) string {
	n := int(frac*barWidth + 0.5)
	if n < 0 {
		n = 0
	}
	if n > barWidth {
		n = barWidth
	}
	return strings.Repeat("█", n)
}

// window returns the visible slice bounds of a list of n items of height h
// that keeps cur in view.
func window(cur, n, h int) (int, int) {
	if n <= h {
		return 0, n
	}
	lo := cur - h/2
	if lo < 0 {
		lo = 0
	}
	if lo+h > n {
		lo = n - h
	}
	return lo, lo + h
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
