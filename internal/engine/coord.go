package engine

import "fmt"

// Coord represents a 2D coordinate on the grid.
// X increases to the right, Y increases downward (screen coordinates).
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns the puzzle-style "x,y" form of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("%d,%d", c.X, c.Y)
}

// Add returns a new Coord offset by (dx, dy).
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Step returns a new Coord one step in the given direction.
func (c Coord) Step(d Dir) Coord {
	dx, dy := d.Delta()
	return c.Add(dx, dy)
}

// Less reports whether c comes before other in reading order:
// top-to-bottom, then left-to-right.
func (c Coord) Less(other Coord) bool {
	if c.Y != other.Y {
		return c.Y < other.Y
	}
	return c.X < other.X
}

// Neighbors returns the four orthogonal neighbours in reading order:
// up, left, right, down. Bounds are not checked.
func (c Coord) Neighbors() [4]Coord {
	return [4]Coord{
		c.Add(0, -1),
		c.Add(-1, 0),
		c.Add(1, 0),
		c.Add(0, 1),
	}
}

// Adjacent reports whether other is one orthogonal step away.
func (c Coord) Adjacent(other Coord) bool {
	return c.Manhattan(other) == 1
}

// Manhattan returns the Manhattan distance to another coordinate.
func (c Coord) Manhattan(other Coord) int {
	dx := c.X - other.X
	dy := c.Y - other.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}
