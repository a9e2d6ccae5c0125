package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gridsim/internal/core"
	"github.com/vovakirdan/gridsim/internal/storage"
)

// History layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show the scenario sidebar
	sidebarWidth       = 24  // Width of scenario sidebar
	maxRuns            = 100 // Max runs to load per scenario
)

// RunSource is the part of the run ledger the history browser reads.
type RunSource interface {
	Scenarios() ([]string, error)
	RecentRuns(scenario string, limit int) ([]storage.Run, error)
}

// HistoryModel is the Bubble Tea model for browsing recorded runs.
type HistoryModel struct {
	scenarios   []string
	cursor      int
	source      RunSource
	runs        []storage.Run
	loadErr     error
	table       table.Model
	help        help.Model
	keys        HistoryKeyMap
	width       int
	height      int
	quitting    bool
	showSidebar bool
}

// NewHistoryModel creates a history browser, optionally starting at the
// given scenario.
func NewHistoryModel(source RunSource, start string, width, height int) HistoryModel {
	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		source:      source,
		keys:        DefaultHistoryKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	m.scenarios, m.loadErr = source.Scenarios()
	for i, id := range m.scenarios {
		if id == start {
			m.cursor = i
		}
	}

	m.table = m.createTable()
	if len(m.scenarios) > 0 {
		m.loadRuns(m.scenarios[m.cursor])
	}
	return m
}

// createTable creates a new table with columns sized to the window.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 5},
		{Title: "Cmd", Width: 6},
		{Title: "Reason", Width: 18},
		{Title: "Ticks", Width: 6},
		{Title: "Result", Width: 14},
		{Title: "Date", Width: 12},
	}

	tableWidth := m.width - 4
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3
	}
	if tableWidth < 70 {
		// Drop the date column on narrow terminals
		columns = columns[:5]
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(core.Max(m.height-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadRuns loads the runs recorded for a scenario.
func (m *HistoryModel) loadRuns(id string) {
	runs, err := m.source.RecentRuns(id, maxRuns)
	m.runs, m.loadErr = runs, err
	m.updateTableRows()
}

// updateTableRows fills the table from the loaded runs.
func (m *HistoryModel) updateTableRows() {
	cols := len(m.table.Columns())
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		row := table.Row{
			fmt.Sprintf("%d", r.ID),
			r.Command,
			r.Reason,
			fmt.Sprintf("%d", r.Ticks),
			runResult(r),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
		rows[i] = row[:cols]
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// runResult condenses the interesting figure of a run.
func runResult(r storage.Run) string {
	switch {
	case r.Survivor != "":
		return "cart " + r.Survivor
	case r.Mode == "combat" && r.ElfAttack > 0:
		return fmt.Sprintf("%d @%d", r.Score, r.ElfAttack)
	case r.Mode == "combat":
		return fmt.Sprintf("%d", r.Score)
	case r.Collisions > 0:
		return fmt.Sprintf("%d crashes", r.Collisions)
	default:
		return "-"
	}
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history browser.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Next):
			if len(m.scenarios) > 0 {
				m.cursor = (m.cursor + 1) % len(m.scenarios)
				m.loadRuns(m.scenarios[m.cursor])
			}
			return m, nil

		case key.Matches(msg, m.keys.Prev):
			if len(m.scenarios) > 0 {
				m.cursor = (m.cursor - 1 + len(m.scenarios)) % len(m.scenarios)
				m.loadRuns(m.scenarios[m.cursor])
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// Current returns the selected scenario ID, or empty when there are none.
func (m HistoryModel) Current() string {
	if len(m.scenarios) == 0 {
		return ""
	}
	return m.scenarios[m.cursor]
}

// View renders the history browser.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "RUN HISTORY"
	if id := m.Current(); id != "" {
		title = fmt.Sprintf("RUN HISTORY - %s", id)
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	content := tableStyle.Render(m.renderTableContent())

	if m.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", content))
	} else {
		b.WriteString(content)
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderSidebar lists the scenarios with the selection marked.
func (m HistoryModel) renderSidebar() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Scenarios\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, id := range m.scenarios {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}

		name := id
		maxLen := sidebarWidth - 6
		if len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		sidebar.WriteString(style.Render(cursor + name))
		sidebar.WriteString("\n")
	}

	return sidebarStyle.Render(sidebar.String())
}

// renderTableContent renders the table or an explanatory message.
func (m HistoryModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.loadErr != nil:
		return emptyStyle.Render("Cannot read run history:\n" + m.loadErr.Error())
	case len(m.runs) == 0:
		return emptyStyle.Render("No runs recorded yet.\nUse 'gridsim run' to record one.")
	}
	return m.table.View()
}

// centerText pads text so it is centered within width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// RunHistory runs the history browser until the user quits.
func RunHistory(source RunSource, start string, width, height int) error {
	p := tea.NewProgram(
		NewHistoryModel(source, start, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
