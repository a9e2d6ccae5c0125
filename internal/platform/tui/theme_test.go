package tui

import (
	"testing"

	"github.com/vovakirdan/gridsim/internal/core"
	"github.com/vovakirdan/gridsim/internal/engine"
)

func TestDrawWorldCombat(t *testing.T) {
	w, err := engine.Parse("#####\n#EG.#\n#####")
	if err != nil {
		t.Fatal(err)
	}
	w.Actors[1].Unit.HP = 10

	s := core.NewScreen(7, 4)
	DrawWorld(s, 1, 1, w.Grid, w.Actors, nil, engine.DefaultHitPoints)

	if got := s.Row(2); got != " #EG.# " {
		t.Errorf("Row(2) = %q", got)
	}
	if c := s.GetCell(2, 2); c.Color != core.ColorElf {
		t.Errorf("elf color = %v", c.Color)
	}
	if c := s.GetCell(3, 2); c.Color != core.ColorWounded {
		t.Errorf("wounded goblin color = %v", c.Color)
	}
	if c := s.GetCell(1, 1); c.Rune != '#' || c.Color != core.ColorWall {
		t.Errorf("wall cell = %+v", c)
	}
}

func TestDrawWorldRailsAndCrashes(t *testing.T) {
	w, err := engine.Parse("->-<-\n  +  ")
	if err != nil {
		t.Fatal(err)
	}

	s := core.NewScreen(5, 2)
	DrawWorld(s, 0, 0, w.Grid, w.Actors, []engine.Coord{engine.C(2, 0)}, 0)

	if got := s.Row(0); got != "->X<-" {
		t.Errorf("Row(0) = %q", got)
	}
	if got := s.Row(1); got != "  +  " {
		t.Errorf("Row(1) = %q", got)
	}
	if s.GetCell(1, 0).Color != core.ColorCart || s.GetCell(2, 0).Color != core.ColorCrash {
		t.Error("unexpected cart or crash colors")
	}
	if s.GetCell(2, 1).Color != core.ColorIntersection {
		t.Error("intersection should be highlighted")
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(3, 1)
	s.SetColor(0, 0, 'E', core.ColorElf)
	s.Set(1, 0, '.')
	s.SetColor(2, 0, 'G', core.ColorGoblin)

	out := RenderScreen(s)
	for _, r := range "E.G" {
		if !containsRune(out, r) {
			t.Errorf("rendered output %q lost %q", out, r)
		}
	}
}

func containsRune(s string, r rune) bool {
	for _, c := range s {
		if c == r {
			return true
		}
	}
	return false
}
