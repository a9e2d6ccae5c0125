package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gridsim/internal/engine"
	"github.com/vovakirdan/gridsim/internal/scenario"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestWatch(t *testing.T, text string, opts WatchOptions) WatchModel {
	t.Helper()
	s := scenario.Scenario{ID: "test", Name: "Test", Map: text}
	w, err := s.World()
	if err != nil {
		t.Fatalf("World() failed: %v", err)
	}
	if opts.TicksPerSecond == 0 {
		opts.TicksPerSecond = 8
	}
	return NewWatchModel(s, w, opts, 100, 40)
}

func update(t *testing.T, m WatchModel, msg tea.Msg) WatchModel {
	t.Helper()
	next, _ := m.Update(msg)
	wm, ok := next.(WatchModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return wm
}

func TestWatchTickAdvances(t *testing.T) {
	m := newTestWatch(t, "->--", WatchOptions{})

	m = update(t, m, TickMsg(time.Now()))
	if m.Simulator().Processed() != 1 {
		t.Errorf("Processed() = %d, expected 1", m.Simulator().Processed())
	}
}

func TestWatchPauseAndStep(t *testing.T) {
	m := newTestWatch(t, "->---", WatchOptions{})

	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if !m.Paused() {
		t.Fatal("space should pause")
	}
	m = update(t, m, TickMsg(time.Now()))
	if m.Simulator().Processed() != 0 {
		t.Error("paused viewer should not advance on ticks")
	}

	m = update(t, m, runes("n"))
	if m.Simulator().Processed() != 1 {
		t.Errorf("step should advance one tick, got %d", m.Simulator().Processed())
	}
	if !m.Paused() {
		t.Error("step should leave the viewer paused")
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if m.Paused() {
		t.Error("space should resume")
	}
}

func TestWatchSpeed(t *testing.T) {
	m := newTestWatch(t, "->--", WatchOptions{TicksPerSecond: 8, MaxPerSecond: 20})

	m = update(t, m, runes("+"))
	if m.Rate() != 16 {
		t.Errorf("Rate() = %d, expected 16", m.Rate())
	}
	m = update(t, m, runes("+"))
	if m.Rate() != 20 {
		t.Errorf("Rate() = %d, expected clamp at 20", m.Rate())
	}
	for i := 0; i < 10; i++ {
		m = update(t, m, runes("-"))
	}
	if m.Rate() != 1 {
		t.Errorf("Rate() = %d, expected floor of 1", m.Rate())
	}
}

func TestWatchFinishRecordsOnceAndRestarts(t *testing.T) {
	var finished []engine.Outcome
	m := newTestWatch(t, "->-<-", WatchOptions{
		OnFinish: func(out engine.Outcome) { finished = append(finished, out) },
	})

	for i := 0; i < 3; i++ {
		m = update(t, m, TickMsg(time.Now()))
	}
	if !m.Simulator().Done() {
		t.Fatal("head-on carts should finish in one tick")
	}
	if len(finished) != 1 || finished[0].Reason != engine.ReasonAllCrashed {
		t.Fatalf("OnFinish calls = %+v", finished)
	}
	if view := m.View(); !strings.Contains(view, "all-crashed") {
		t.Errorf("view should show the outcome:\n%s", view)
	}

	m = update(t, m, runes("r"))
	if m.Simulator().Done() || m.Simulator().Processed() != 0 {
		t.Error("restart should begin a fresh run")
	}
	m = update(t, m, TickMsg(time.Now()))
	if len(finished) != 2 {
		t.Errorf("restarted run should report again, got %d reports", len(finished))
	}
}

func TestWatchInvariantErrorShown(t *testing.T) {
	m := newTestWatch(t, "->#", WatchOptions{})

	m = update(t, m, TickMsg(time.Now()))
	if m.Err() == nil {
		t.Fatal("expected an invariant error")
	}
	if !strings.Contains(m.View(), "invariant violated") {
		t.Error("view should show the error")
	}
}

func TestWatchTickLimit(t *testing.T) {
	m := newTestWatch(t, "#E#G#", WatchOptions{Rules: engine.Rules{MaxTicks: 2}})

	for i := 0; i < 4; i++ {
		m = update(t, m, TickMsg(time.Now()))
	}
	if m.Simulator().Processed() != 2 {
		t.Errorf("Processed() = %d, expected 2", m.Simulator().Processed())
	}
	if m.Err() == nil || !strings.Contains(m.Err().Error(), "tick limit") {
		t.Errorf("Err() = %v, expected tick limit", m.Err())
	}
}

func TestWatchViewShowsMapAndActors(t *testing.T) {
	m := newTestWatch(t, "#####\n#E.G#\n#####", WatchOptions{ShowActors: true})
	view := m.View()

	for _, want := range []string{"gridsim: Test", "#E.G#", "elf", "goblin", "200 hp"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	m = update(t, m, runes("a"))
	if strings.Contains(m.View(), "200 hp") {
		t.Error("actor table should toggle off")
	}
}

func TestWatchQuit(t *testing.T) {
	m := newTestWatch(t, "->--", WatchOptions{})
	next, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if next.(WatchModel).View() != "" {
		t.Error("view should be empty after quit")
	}
}
