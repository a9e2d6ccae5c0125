package tui

import (
	"github.com/vovakirdan/gridsim/internal/core"
	"github.com/vovakirdan/gridsim/internal/engine"
)

// Units with less than 1/woundedBelow of their starting hit points are
// drawn as wounded.
const woundedBelow = 4

// DrawWorld draws the grid at (x0, y0) with live actors on top and crash
// sites marked. Rail maps leave walls blank the way they are written.
func DrawWorld(dst *core.Screen, x0, y0 int, g *engine.Grid, actors []engine.Actor, crashes []engine.Coord, startHP int) {
	rails := g.HasRails()
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			kind := g.Kind(engine.C(x, y))
			if kind == engine.Wall && rails {
				dst.Set(x0+x, y0+y, ' ')
				continue
			}
			dst.SetColor(x0+x, y0+y, kind.Glyph(), cellColor(kind))
		}
	}

	for _, a := range actors {
		if !a.Alive {
			continue
		}
		dst.SetColor(x0+a.Pos.X, y0+a.Pos.Y, a.Glyph(), actorColor(a, startHP))
	}
	for _, c := range crashes {
		dst.SetColor(x0+c.X, y0+c.Y, 'X', core.ColorCrash)
	}
}

func cellColor(kind engine.CellKind) core.Color {
	switch kind {
	case engine.Wall:
		return core.ColorWall
	case engine.Open:
		return core.ColorGround
	case engine.Intersection:
		return core.ColorIntersection
	default:
		return core.ColorRail
	}
}

func actorColor(a engine.Actor, startHP int) core.Color {
	if a.Kind == engine.KindCart {
		return core.ColorCart
	}
	if startHP > 0 && a.Unit.HP*woundedBelow < startHP {
		return core.ColorWounded
	}
	if a.Unit.Faction == engine.FactionElf {
		return core.ColorElf
	}
	return core.ColorGoblin
}
