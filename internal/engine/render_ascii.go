package engine

import (
	"fmt"
	"strings"
)

// RenderASCII draws the grid with live actors on top, in the same alphabet
// Parse reads. Cells listed in crashes are drawn as 'X'. Rows holding units
// get their hit points appended, for example "#G.E#   G(200), E(131)".
//
// Rail maps draw walls as spaces and combat maps as '#', so a parsed map
// renders back to its input (trailing spaces aside).
func RenderASCII(g *Grid, actors []Actor, crashes []Coord) string {
	at := make(map[Coord]Actor, len(actors))
	for _, a := range actors {
		if a.Alive {
			at[a.Pos] = a
		}
	}
	crashed := make(map[Coord]bool, len(crashes))
	for _, c := range crashes {
		crashed[c] = true
	}
	rails := g.HasRails()

	var sb strings.Builder
	for y := 0; y < g.H; y++ {
		var row strings.Builder
		var legend []string
		for x := 0; x < g.W; x++ {
			c := C(x, y)
			if crashed[c] {
				row.WriteRune('X')
				continue
			}
			if a, ok := at[c]; ok {
				row.WriteRune(a.Glyph())
				if a.Kind == KindUnit {
					legend = append(legend, fmt.Sprintf("%c(%d)", a.Glyph(), a.Unit.HP))
				}
				continue
			}
			kind := g.Kind(c)
			if kind == Wall && rails {
				row.WriteRune(' ')
			} else {
				row.WriteRune(kind.Glyph())
			}
		}

		line := row.String()
		if rails {
			line = strings.TrimRight(line, " ")
		}
		sb.WriteString(line)
		if len(legend) > 0 {
			sb.WriteString("   ")
			sb.WriteString(strings.Join(legend, ", "))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// describeActors lists every actor in the arena, one per line.
func describeActors(actors []Actor) string {
	var sb strings.Builder
	for _, a := range actors {
		sb.WriteString(a.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// Render draws the simulator's current state with crashes from the latest
// tick marked.
func (s *Simulator) Render() string {
	return RenderASCII(s.grid, s.actors, s.crashSites())
}
