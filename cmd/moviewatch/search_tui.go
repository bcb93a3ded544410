package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"moviewatch/internal/catalog"
	"moviewatch/internal/search"
)

const maxVisibleResults = 10

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7c3aed")).Padding(0, 0, 1, 0)
	cursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#60a5fa"))
	yearStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ca3af"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280")).Italic(true)
	emptyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
	resultsBorder = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#4a5568")).Padding(0, 1)
)

// sessionChangedMsg reports that the live search session changed state.
type sessionChangedMsg struct{}

type searchModel struct {
	session  *search.Session
	input    textinput.Model
	spinner  spinner.Model
	snapshot search.Snapshot
	cursor   int
	selected *catalog.SearchResult
}

func newSearchModel(session *search.Session) *searchModel {
	input := textinput.New()
	input.Placeholder = "Search a movie title"
	input.Prompt = "> "
	input.CharLimit = 120
	input.Focus()

	return &searchModel{
		session:  session,
		input:    input,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		snapshot: session.Snapshot(),
	}
}

func waitForSessionChange(changes <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return sessionChangedMsg{}
	}
}

func (m *searchModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, waitForSessionChange(m.session.Changes()))
}

func (m *searchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionChangedMsg:
		m.snapshot = m.session.Snapshot()
		m.cursor = min(m.cursor, max(len(m.snapshot.Results)-1, 0))
		return m, waitForSessionChange(m.session.Changes())
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "ctrl+n":
			if m.cursor < min(len(m.snapshot.Results), maxVisibleResults)-1 {
				m.cursor++
			}
			return m, nil
		case "enter":
			if m.cursor < len(m.snapshot.Results) && m.snapshot.ResultsQuery == strings.TrimSpace(m.input.Value()) {
				picked := m.snapshot.Results[m.cursor]
				m.selected = &picked
				return m, tea.Quit
			}
			m.session.SearchImmediately()
			return m, nil
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if value := m.input.Value(); value != before {
		m.session.SetQuery(value)
		m.cursor = 0
	}
	return m, cmd
}

func (m *searchModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("moviewatch search"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	if m.snapshot.Loading {
		b.WriteString(" ")
		b.WriteString(m.spinner.View())
	}
	b.WriteString("\n\n")

	results := m.snapshot.Results
	switch {
	case len(results) == 0 && strings.TrimSpace(m.snapshot.Query) == "":
		b.WriteString(emptyStyle.Render("Start typing to search TMDB"))
	case len(results) == 0:
		b.WriteString(emptyStyle.Render("No results"))
	default:
		lines := make([]string, 0, maxVisibleResults)
		for i, result := range results[:min(len(results), maxVisibleResults)] {
			line := resultTitle(result)
			if year := result.Year(); year != "" {
				line += " " + yearStyle.Render(fmt.Sprintf("(%s)", year))
			}
			if i == m.cursor {
				line = cursorStyle.Render("▸ " + line)
			} else {
				line = "  " + line
			}
			lines = append(lines, line)
		}
		b.WriteString(resultsBorder.Render(strings.Join(lines, "\n")))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ select • enter add • esc quit"))
	b.WriteString("\n")
	return b.String()
}
