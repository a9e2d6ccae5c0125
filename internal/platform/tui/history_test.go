package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gridsim/internal/storage"
)

type fakeRuns struct {
	runs map[string][]storage.Run
	err  error
}

func (f fakeRuns) Scenarios() ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	var ids []string
	for _, id := range []string{"carts-loops", "combat-sample"} {
		if _, ok := f.runs[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (f fakeRuns) RecentRuns(scenario string, limit int) ([]storage.Run, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.runs[scenario], nil
}

func sampleRuns() fakeRuns {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return fakeRuns{runs: map[string][]storage.Run{
		"carts-loops": {
			{ID: 2, Scenario: "carts-loops", Command: "run", Mode: "carts", Reason: "cycle", Ticks: 8, CreatedAt: at},
		},
		"combat-sample": {
			{ID: 3, Scenario: "combat-sample", Command: "boost", Mode: "combat", Reason: "faction-eliminated", Ticks: 29, Score: 4988, ElfAttack: 15, CreatedAt: at},
			{ID: 1, Scenario: "combat-sample", Command: "run", Mode: "combat", Reason: "faction-eliminated", Ticks: 47, Score: 27730, CreatedAt: at},
		},
	}}
}

func TestHistoryStartsAtRequestedScenario(t *testing.T) {
	m := NewHistoryModel(sampleRuns(), "combat-sample", 100, 30)
	if m.Current() != "combat-sample" {
		t.Fatalf("Current() = %q, expected combat-sample", m.Current())
	}
	if len(m.table.Rows()) != 2 {
		t.Errorf("expected 2 rows, got %d", len(m.table.Rows()))
	}
}

func TestHistoryTabsBetweenScenarios(t *testing.T) {
	m := NewHistoryModel(sampleRuns(), "", 100, 30)
	if m.Current() != "carts-loops" {
		t.Fatalf("Current() = %q, expected carts-loops", m.Current())
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(HistoryModel)
	if m.Current() != "combat-sample" {
		t.Errorf("after tab Current() = %q", m.Current())
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(HistoryModel)
	if m.Current() != "carts-loops" {
		t.Errorf("tab should wrap, got %q", m.Current())
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(HistoryModel)
	if m.Current() != "combat-sample" {
		t.Errorf("shift+tab should wrap back, got %q", m.Current())
	}
}

func TestHistoryView(t *testing.T) {
	m := NewHistoryModel(sampleRuns(), "combat-sample", 120, 30)
	view := m.View()
	for _, want := range []string{"RUN HISTORY - combat-sample", "27730", "4988 @15", "carts-loops"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestHistoryEmptyAndError(t *testing.T) {
	empty := NewHistoryModel(fakeRuns{}, "", 100, 30)
	if empty.Current() != "" {
		t.Errorf("expected no scenario, got %q", empty.Current())
	}
	if !strings.Contains(empty.View(), "No runs recorded yet.") {
		t.Errorf("empty view missing hint:\n%s", empty.View())
	}

	failing := NewHistoryModel(fakeRuns{err: errors.New("disk gone")}, "", 100, 30)
	if !strings.Contains(failing.View(), "disk gone") {
		t.Errorf("error view missing cause:\n%s", failing.View())
	}
}

func TestRunResult(t *testing.T) {
	tests := []struct {
		run  storage.Run
		want string
	}{
		{storage.Run{Survivor: "6,4"}, "cart 6,4"},
		{storage.Run{Mode: "combat", Score: 27730}, "27730"},
		{storage.Run{Mode: "combat", Score: 4988, ElfAttack: 15}, "4988 @15"},
		{storage.Run{Mode: "carts", Collisions: 3}, "3 crashes"},
		{storage.Run{Mode: "carts"}, "-"},
	}
	for _, tt := range tests {
		if got := runResult(tt.run); got != tt.want {
			t.Errorf("runResult(%+v) = %q, expected %q", tt.run, got, tt.want)
		}
	}
}

func TestHistoryQuit(t *testing.T) {
	m := NewHistoryModel(sampleRuns(), "", 100, 30)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if next.(HistoryModel).View() != "" {
		t.Error("expected empty view after quit")
	}
}
