package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/shrutipatidar/Google-Play-Store-App-Review-Sentiment-Analysis/internal/review"
)

var (
	colorPrimary  = lipgloss.Color("#4a78c2")
	colorMuted    = lipgloss.Color("#8a8f98")
	colorPositive = lipgloss.Color("#2e9e5b")
	colorNeutral  = lipgloss.Color("#9aa0a6")
	colorNegative = lipgloss.Color("#d9534f")
)

// Styles groups the lipgloss styles used by the explorer.
type Styles struct {
	Title     lipgloss.Style
	Header    lipgloss.Style
	Muted     lipgloss.Style
	Error     lipgloss.Style
	ActiveTab lipgloss.Style
	Tab       lipgloss.Style
	Sidebar   lipgloss.Style
	Selected  lipgloss.Style
	Bar       lipgloss.Style
	Content   lipgloss.Style
}

// DefaultStyles returns the standard palette.
func DefaultStyles() Styles {
	return Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(colorPrimary),
		Header:    lipgloss.NewStyle().Bold(true),
		Muted:     lipgloss.NewStyle().Foreground(colorMuted).Italic(true),
		Error:     lipgloss.NewStyle().Foreground(colorNegative).Bold(true),
		ActiveTab: lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(lipgloss.Color("#ffffff")).Background(colorPrimary),
		Tab:       lipgloss.NewStyle().Padding(0, 1).Foreground(colorMuted),
		Sidebar:   lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder()).BorderForeground(colorMuted),
		Selected:  lipgloss.NewStyle().Bold(true).Foreground(colorPrimary),
		Bar:       lipgloss.NewStyle().Foreground(colorPrimary),
		Content:   lipgloss.NewStyle().Padding(0, 1),
	}
}

func sentimentStyle(s review.Sentiment) lipgloss.Style {
	switch s {
	case review.Positive:
		return lipgloss.NewStyle().Foreground(colorPositive)
	case review.Neutral:
		return lipgloss.NewStyle().Foreground(colorNeutral)
	case review.Negative:
		return lipgloss.NewStyle().Foreground(colorNegative)
	}
	return lipgloss.NewStyle()
}
