// Package engine implements a deterministic tick-based simulator for actors
// on a 2D grid: carts riding a rail network and combat units hunting each
// other. It is pure logic with no terminal, file or network access.
package engine

import (
	"strings"
)

// Defaults applied to units created by Parse.
const (
	DefaultHitPoints = 200
	DefaultAttack    = 3
)

// Mode identifies which family of actors a world contains.
type Mode uint8

const (
	ModeEmpty Mode = iota
	ModeCarts
	ModeCombat
)

// String returns the string representation of a mode.
func (m Mode) String() string {
	switch m {
	case ModeCarts:
		return "carts"
	case ModeCombat:
		return "combat"
	default:
		return "empty"
	}
}

// World is a parsed map together with its initial actors.
type World struct {
	Grid   *Grid
	Actors []Actor
}

// Clone returns a copy whose actors can be mutated independently.
// The grid is immutable and therefore shared.
func (w *World) Clone() *World {
	actors := make([]Actor, len(w.Actors))
	copy(actors, w.Actors)
	return &World{Grid: w.Grid, Actors: actors}
}

// Mode reports whether the world simulates carts or combat units.
func (w *World) Mode() Mode {
	for _, a := range w.Actors {
		switch a.Kind {
		case KindCart:
			return ModeCarts
		case KindUnit:
			return ModeCombat
		}
	}
	return ModeEmpty
}

// Parse builds a World from a map drawn in text.
//
// Cell characters: '#' and ' ' are walls, '.' is open ground, '-' '|' '/'
// '\' '+' are rails. Actor characters: '<' '>' '^' 'v' place a cart on
// straight track, 'E' and 'G' place an elf or goblin on open ground.
// Actor IDs are assigned from 1 in reading order.
func Parse(text string) (*World, error) {
	lines := splitLines(text)
	if len(lines) == 0 {
		return nil, &ParseError{Msg: "empty input"}
	}

	rows := make([][]CellKind, len(lines))
	var actors []Actor
	nextID := 1
	mode := ModeEmpty

	for y, line := range lines {
		row := make([]CellKind, 0, len(line))
		x := 0
		for _, ch := range line {
			kind, actor, ok := classify(ch, C(x, y))
			if !ok {
				return nil, &ParseError{Line: y + 1, Col: x + 1, Char: ch, Msg: "unknown character"}
			}
			row = append(row, kind)
			if actor != nil {
				m := ModeCarts
				if actor.Kind == KindUnit {
					m = ModeCombat
				}
				if mode != ModeEmpty && mode != m {
					return nil, &ParseError{Line: y + 1, Col: x + 1, Char: ch, Msg: "carts and units cannot share a map"}
				}
				mode = m
				actor.ID = nextID
				nextID++
				actors = append(actors, *actor)
			}
			x++
		}
		rows[y] = row
	}

	return &World{Grid: NewGrid(rows), Actors: actors}, nil
}

// splitLines splits on newlines, strips carriage returns and drops trailing
// blank lines. Leading spaces are significant in rail maps and are kept.
func splitLines(text string) []string {
	lines := strings.Split(strings.ReplaceAll(text, "\r", ""), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// classify maps one input character to its cell kind and optional actor.
func classify(ch rune, pos Coord) (CellKind, *Actor, bool) {
	switch ch {
	case '#', ' ':
		return Wall, nil, true
	case '.':
		return Open, nil, true
	case '-':
		return RailHorizontal, nil, true
	case '|':
		return RailVertical, nil, true
	case '/':
		return CurveForward, nil, true
	case '\\':
		return CurveBackward, nil, true
	case '+':
		return Intersection, nil, true
	case '<':
		a := NewCart(0, pos, DirLeft)
		return RailHorizontal, &a, true
	case '>':
		a := NewCart(0, pos, DirRight)
		return RailHorizontal, &a, true
	case '^':
		a := NewCart(0, pos, DirUp)
		return RailVertical, &a, true
	case 'v':
		a := NewCart(0, pos, DirDown)
		return RailVertical, &a, true
	case 'E':
		a := NewUnit(0, pos, FactionElf, DefaultHitPoints, DefaultAttack)
		return Open, &a, true
	case 'G':
		a := NewUnit(0, pos, FactionGoblin, DefaultHitPoints, DefaultAttack)
		return Open, &a, true
	}
	return Wall, nil, false
}
