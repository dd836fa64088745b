// Package tui is the terminal front end of the review explorer.
package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/shrutipatidar/Google-Play-Store-App-Review-Sentiment-Analysis/internal/explorer"
	"github.com/shrutipatidar/Google-Play-Store-App-Review-Sentiment-Analysis/internal/review"
)

// Tab is one of the dashboard panels.
type Tab int

const (
	TabOverview Tab = iota
	TabWords
	TabSamples
	TabInsights
	tabCount
)

var tabNames = [...]string{"Overview", "Words", "Samples", "Insights"}

func (t Tab) String() string { return tabNames[t] }

const (
	pageStep      = 10
	collapsedRows = 5
)

// Model holds the explorer state: the dataset, the current selection and the
// dashboard derived from it.
type Model struct {
	ds     *review.Dataset
	opt    explorer.Options
	apps   []string
	styles Styles

	appIdx    int
	filter    explorer.Filter
	activeTab Tab
	expanded  bool

	keyword textinput.Model
	editing bool

	samples table.Model
	dash    *explorer.Dashboard

	width  int
	height int
}

// New builds a model showing the default selection.
func New(ds *review.Dataset, opt explorer.Options) Model {
	ti := textinput.New()
	ti.Placeholder = "keyword"
	ti.Prompt = "/ "
	ti.CharLimit = 128

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Translated_Review", Width: 60},
			{Title: "Sentiment", Width: 10},
		}),
		table.WithHeight(collapsedRows+1),
	)

	m := Model{
		ds:      ds,
		opt:     opt,
		apps:    ds.Apps(),
		styles:  DefaultStyles(),
		filter:  explorer.DefaultFilter(ds),
		keyword: ti,
		samples: t,
		width:   100,
		height:  30,
	}
	m.rebuild()
	return m
}

// Run starts the program on the terminal's alternate screen.
func Run(ds *review.Dataset, opt explorer.Options) error {
	_, err := tea.NewProgram(New(ds, opt), tea.WithAltScreen()).Run()
	return err
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Filter returns the current selection.
func (m Model) Filter() explorer.Filter { return m.filter }

// Dashboard returns the dashboard for the current selection.
func (m Model) Dashboard() *explorer.Dashboard { return m.dash }

// ActiveTab returns the visible panel.
func (m Model) ActiveTab() Tab { return m.activeTab }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resizeTable()
		return m, nil
	case tea.KeyMsg:
		if m.editing {
			return m.updateKeyword(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		m.moveApp(-1)
	case "down", "j":
		m.moveApp(1)
	case "pgup":
		m.moveApp(-pageStep)
	case "pgdown":
		m.moveApp(pageStep)
	case "1":
		m.toggle(review.Positive)
	case "2":
		m.toggle(review.Neutral)
	case "3":
		m.toggle(review.Negative)
	case "tab", "right":
		m.activeTab = (m.activeTab + 1) % tabCount
	case "shift+tab", "left":
		m.activeTab = (m.activeTab + tabCount - 1) % tabCount
	case "e":
		m.expanded = !m.expanded
		m.resizeTable()
	case "/":
		m.editing = true
		m.keyword.SetValue(m.filter.Keyword)
		m.keyword.CursorEnd()
		return m, m.keyword.Focus()
	}
	return m, nil
}

func (m Model) updateKeyword(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.editing = false
		m.keyword.Blur()
		m.filter.Keyword = m.keyword.Value()
		m.rebuild()
		return m, nil
	case tea.KeyEsc:
		m.editing = false
		m.keyword.Blur()
		m.keyword.SetValue(m.filter.Keyword)
		return m, nil
	case tea.KeyCtrlC:
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.keyword, cmd = m.keyword.Update(msg)
	return m, cmd
}

func (m *Model) moveApp(delta int) {
	if len(m.apps) == 0 {
		return
	}
	i := m.appIdx + delta
	if i < 0 {
		i = 0
	}
	if i >= len(m.apps) {
		i = len(m.apps) - 1
	}
	if i == m.appIdx {
		return
	}
	m.appIdx = i
	m.filter.App = m.apps[i]
	m.rebuild()
}

func (m *Model) toggle(s review.Sentiment) {
	m.filter = m.filter.Toggle(s)
	m.rebuild()
}

// rebuild recomputes every panel for the current selection.
func (m *Model) rebuild() {
	m.dash = explorer.Build(m.ds, m.filter, m.opt)
	rows := make([]table.Row, 0, len(m.dash.Samples.Rows))
	for _, s := range m.dash.Samples.Rows {
		rows = append(rows, table.Row{s.Review, s.Sentiment.String()})
	}
	m.samples.SetRows(rows)
	m.samples.GotoTop()
	m.resizeTable()
}

func (m *Model) resizeTable() {
	h := collapsedRows
	if m.expanded {
		h = len(m.dash.Samples.Rows)
		if limit := m.height - 10; limit > collapsedRows && h > limit {
			h = limit
		}
	}
	if h < 1 {
		h = 1
	}
	m.samples.SetHeight(h + 1)
	if w := m.width - 40; w > 20 {
		m.samples.SetColumns([]table.Column{
			{Title: "Translated_Review", Width: w},
			{Title: "Sentiment", Width: 10},
		})
	}
}
