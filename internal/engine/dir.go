package engine

// Dir represents a heading for carts.
type Dir uint8

const (
	DirUp Dir = iota
	DirRight
	DirDown
	DirLeft
)

// String returns the string representation of a direction.
func (d Dir) String() string {
	switch d {
	case DirUp:
		return "Up"
	case DirRight:
		return "Right"
	case DirDown:
		return "Down"
	case DirLeft:
		return "Left"
	default:
		return "Unknown"
	}
}

// Valid reports whether d is one of the four headings.
func (d Dir) Valid() bool {
	return d <= DirLeft
}

// Delta returns the (dx, dy) offset for moving one step in this direction.
// Up decreases Y, Down increases Y (screen coordinates).
func (d Dir) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirRight:
		return 1, 0
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	default:
		return 0, 0
	}
}

// Opposite returns the opposite direction.
func (d Dir) Opposite() Dir {
	switch d {
	case DirUp:
		return DirDown
	case DirRight:
		return DirLeft
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	default:
		return d
	}
}

// TurnLeft returns the heading after a 90 degree counter-clockwise turn.
func (d Dir) TurnLeft() Dir {
	return (d + 3) % 4
}

// TurnRight returns the heading after a 90 degree clockwise turn.
func (d Dir) TurnRight() Dir {
	return (d + 1) % 4
}

// Glyph returns the map character for a cart facing d.
func (d Dir) Glyph() rune {
	switch d {
	case DirUp:
		return '^'
	case DirRight:
		return '>'
	case DirDown:
		return 'v'
	case DirLeft:
		return '<'
	default:
		return '?'
	}
}

// Turn is the choice a cart makes at an intersection.
// Carts cycle Left -> Straight -> Right -> Left...
type Turn uint8

const (
	TurnLeft Turn = iota
	TurnStraight
	TurnRight
)

// String returns the string representation of a turn.
func (t Turn) String() string {
	switch t {
	case TurnLeft:
		return "Left"
	case TurnStraight:
		return "Straight"
	case TurnRight:
		return "Right"
	default:
		return "Unknown"
	}
}

// Advance returns the next phase of the turn cycle.
func (t Turn) Advance() Turn {
	return (t + 1) % 3
}

// Apply returns the heading d after taking this turn.
func (t Turn) Apply(d Dir) Dir {
	switch t {
	case TurnLeft:
		return d.TurnLeft()
	case TurnRight:
		return d.TurnRight()
	default:
		return d
	}
}
