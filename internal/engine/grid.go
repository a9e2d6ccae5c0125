package engine

import "fmt"

// Grid is the static map as a rectangular array of cell kinds.
// Cells are stored in row-major order: index = y*W + x.
// A Grid is never modified after construction, so one Grid may be shared by
// any number of simulators.
type Grid struct {
	W     int        // Width of the grid
	H     int        // Height of the grid
	cells []CellKind // Flat array of cells, length W*H
}

// NewGrid creates a grid from rows of cell kinds. Short rows are padded with
// Wall so that the result is rectangular.
func NewGrid(rows [][]CellKind) *Grid {
	w := 0
	for _, row := range rows {
		if len(row) > w {
			w = len(row)
		}
	}
	g := &Grid{
		W:     w,
		H:     len(rows),
		cells: make([]CellKind, w*len(rows)),
	}
	// Zero value is Wall, only copy what the row provides
	for y, row := range rows {
		copy(g.cells[y*w:], row)
	}
	return g
}

// index converts a coordinate to a flat array index.
func (g *Grid) index(c Coord) int {
	return c.Y*g.W + c.X
}

// InBounds returns true if the coordinate is within the grid boundaries.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.W && c.Y >= 0 && c.Y < g.H
}

// CellAt returns the kind of the cell at (x, y).
func (g *Grid) CellAt(x, y int) (CellKind, error) {
	c := C(x, y)
	if !g.InBounds(c) {
		return Wall, fmt.Errorf("cell %s outside %dx%d grid: %w", c, g.W, g.H, ErrOutOfBounds)
	}
	return g.cells[g.index(c)], nil
}

// Kind returns the kind of the cell at c, treating everything outside the
// grid as Wall.
func (g *Grid) Kind(c Coord) CellKind {
	if !g.InBounds(c) {
		return Wall
	}
	return g.cells[g.index(c)]
}

// Traversable reports whether c is inside the grid and not a wall.
func (g *Grid) Traversable(c Coord) bool {
	return g.Kind(c).Traversable()
}

// HasRails reports whether any cell belongs to a rail network.
func (g *Grid) HasRails() bool {
	for _, k := range g.cells {
		if k.IsRail() {
			return true
		}
	}
	return false
}

// Count returns how many cells have the given kind.
func (g *Grid) Count(kind CellKind) int {
	n := 0
	for _, k := range g.cells {
		if k == kind {
			n++
		}
	}
	return n
}
