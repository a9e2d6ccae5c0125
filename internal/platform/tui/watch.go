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
	"github.com/vovakirdan/gridsim/internal/engine"
	"github.com/vovakirdan/gridsim/internal/scenario"
)

// Watch layout constants
const (
	minWidthForActors = 60 // Minimum width to show the actor table
	actorTableHeight  = 12
)

// WatchOptions configures the simulation viewer.
type WatchOptions struct {
	Rules          engine.Rules
	TicksPerSecond int
	MaxPerSecond   int
	ShowActors     bool

	// OnFinish is called once per run when the simulation reaches a
	// terminal state.
	OnFinish func(engine.Outcome)
}

// WatchModel is the Bubble Tea model that animates one scenario.
type WatchModel struct {
	scenario scenario.Scenario
	world    *engine.World
	opts     WatchOptions

	sim      *engine.Simulator
	last     engine.TickResult
	err      error
	recorded bool

	screen *core.Screen
	table  table.Model
	help   help.Model
	keys   WatchKeyMap

	paused     bool
	rate       int
	showActors bool
	width      int
	height     int
	quitting   bool
}

// NewWatchModel creates a viewer for s. The world is parsed by the caller
// so map errors surface before the terminal is taken over.
func NewWatchModel(s scenario.Scenario, w *engine.World, opts WatchOptions, width, height int) WatchModel {
	if opts.MaxPerSecond < 1 {
		opts.MaxPerSecond = 60
	}
	h := help.New()
	h.ShowAll = false

	m := WatchModel{
		scenario:   s,
		world:      w,
		opts:       opts,
		screen:     core.NewScreen(w.Grid.W+2, w.Grid.H+2),
		help:       h,
		keys:       DefaultWatchKeyMap(),
		rate:       core.Clamp(opts.TicksPerSecond, 1, opts.MaxPerSecond),
		showActors: opts.ShowActors,
		width:      width,
		height:     height,
	}
	m.table = m.createTable()
	m.restart()
	return m
}

// createTable creates the live actor table.
func (m *WatchModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 4},
		{Title: "Actor", Width: 7},
		{Title: "Pos", Width: 7},
		{Title: "State", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(false),
		table.WithHeight(actorTableHeight),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = lipgloss.NewStyle()
	t.SetStyles(s)

	return t
}

// restart begins the scenario again from its parsed state.
func (m *WatchModel) restart() {
	m.sim = engine.NewSimulator(m.world, m.opts.Rules)
	m.last = engine.TickResult{}
	m.err = nil
	m.recorded = false
	m.updateTableRows()
}

// updateTableRows refreshes the actor table from the simulator.
func (m *WatchModel) updateTableRows() {
	actors := m.sim.Snapshot()
	rows := make([]table.Row, len(actors))
	for i, a := range actors {
		var kind, state string
		switch a.Kind {
		case engine.KindCart:
			kind = "cart"
			state = fmt.Sprintf("%s, next %s", a.Cart.Dir, a.Cart.NextTurn)
		case engine.KindUnit:
			kind = strings.ToLower(a.Unit.Faction.String())
			state = fmt.Sprintf("%d hp", a.Unit.HP)
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", a.ID),
			kind,
			a.Pos.String(),
			state,
		}
	}
	m.table.SetRows(rows)
}

// step advances the simulation by one tick.
func (m *WatchModel) step() {
	if m.sim.Done() || m.err != nil {
		return
	}
	if limit := m.opts.Rules.MaxTicks; limit > 0 && m.sim.Processed() >= limit {
		m.err = fmt.Errorf("%w after %d ticks", engine.ErrTickLimit, m.sim.Processed())
		return
	}

	res, err := m.sim.Tick()
	m.last = res
	if err != nil {
		m.err = err
		return
	}
	m.updateTableRows()

	if out, done := m.sim.Outcome(); done && !m.recorded {
		m.recorded = true
		if m.opts.OnFinish != nil {
			m.opts.OnFinish(out)
		}
	}
}

// Init starts the animation.
func (m WatchModel) Init() tea.Cmd {
	return tickCmd(m.rate)
}

// Update handles messages and updates the model state.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if !m.paused {
			m.step()
		}
		return m, tickCmd(m.rate)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m WatchModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused

	case key.Matches(msg, m.keys.Step):
		m.paused = true
		m.step()

	case key.Matches(msg, m.keys.Faster):
		m.rate = core.Clamp(m.rate*2, 1, m.opts.MaxPerSecond)

	case key.Matches(msg, m.keys.Slower):
		m.rate = core.Clamp(m.rate/2, 1, m.opts.MaxPerSecond)

	case key.Matches(msg, m.keys.Restart):
		m.restart()

	case key.Matches(msg, m.keys.Actors):
		m.showActors = !m.showActors
	}
	return m, nil
}

// Paused reports whether the animation is halted.
func (m WatchModel) Paused() bool {
	return m.paused
}

// Rate returns the animation speed in ticks per second.
func (m WatchModel) Rate() int {
	return m.rate
}

// Simulator exposes the running simulation.
func (m WatchModel) Simulator() *engine.Simulator {
	return m.sim
}

// Err returns the error that stopped the simulation, if any.
func (m WatchModel) Err() error {
	return m.err
}

// View renders the current state to a string for display.
func (m WatchModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render(fmt.Sprintf("gridsim: %s", m.scenario.Title())))
	b.WriteString("\n\n")

	m.screen.Clear()
	m.screen.DrawBox(core.NewRect(0, 0, m.screen.Width(), m.screen.Height()), core.ColorFrame)
	DrawWorld(m.screen, 1, 1, m.sim.Grid(), m.sim.Snapshot(), crashSites(m.last), m.startHP())
	if m.paused {
		m.screen.DrawTextCentered(0, " paused ")
	}
	body := RenderScreen(m.screen)

	if m.showActors && m.width >= minWidthForActors {
		tableStyle := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, "  ", tableStyle.Render(m.table.View()))
	}
	b.WriteString(body)
	b.WriteString("\n")

	b.WriteString(m.statusLine())
	b.WriteString("\n")

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// statusLine describes progress, speed and the latest tick's events.
func (m WatchModel) statusLine() string {
	state := "running"
	switch {
	case m.sim.Done() || m.err != nil:
		state = "stopped"
	case m.paused:
		state = "paused"
	}

	line := fmt.Sprintf("tick %d (full %d)  %d/s  %s", m.sim.Processed(), m.sim.Ticks(), m.rate, state)
	if m.last.Tick > 0 {
		line += fmt.Sprintf("  moves %d  attacks %d  deaths %d  crashes %d",
			len(m.last.Moves), len(m.last.Attacks), len(m.last.Deaths), len(m.last.Collisions))
	}

	doneStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	errStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))

	switch out, done := m.sim.Outcome(); {
	case m.err != nil:
		line += "\n" + errStyle.Render(m.err.Error())
	case done:
		line += "\n" + doneStyle.Render(outcomeSummary(out))
	}
	return line
}

// startHP is the hit point baseline used to color wounded units.
func (m WatchModel) startHP() int {
	if m.opts.Rules.HitPoints > 0 {
		return m.opts.Rules.HitPoints
	}
	return engine.DefaultHitPoints
}

func crashSites(res engine.TickResult) []engine.Coord {
	sites := make([]engine.Coord, len(res.Collisions))
	for i, c := range res.Collisions {
		sites[i] = c.At
	}
	return sites
}

// outcomeSummary is the one-line result shown when a run ends.
func outcomeSummary(out engine.Outcome) string {
	switch {
	case out.Mode == engine.ModeCombat && out.Reason == engine.ReasonFactionEliminated:
		return fmt.Sprintf("%s win: %d ticks x %d hp = %d", out.Winner, out.Ticks, out.HPSum, out.Score())
	case out.HasSurvivor:
		return fmt.Sprintf("%s: last cart at %s", out.Reason, out.Survivor)
	case out.Reason == engine.ReasonFirstCollision:
		first, _ := out.FirstCollision()
		return fmt.Sprintf("%s at %s in tick %d", out.Reason, first.At, first.Tick)
	default:
		return fmt.Sprintf("%s after %d ticks", out.Reason, out.Ticks)
	}
}

// RunWatch starts the viewer and blocks until the user quits.
func RunWatch(s scenario.Scenario, w *engine.World, opts WatchOptions, width, height int) error {
	model := NewWatchModel(s, w, opts, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
