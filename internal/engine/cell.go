package engine

// CellKind is the static content of one grid cell.
type CellKind uint8

const (
	Wall CellKind = iota
	Open
	RailHorizontal
	RailVertical
	CurveForward  // '/'
	CurveBackward // '\'
	Intersection
)

// String returns the string representation of a cell kind.
func (k CellKind) String() string {
	switch k {
	case Wall:
		return "Wall"
	case Open:
		return "Open"
	case RailHorizontal:
		return "RailHorizontal"
	case RailVertical:
		return "RailVertical"
	case CurveForward:
		return "CurveForward"
	case CurveBackward:
		return "CurveBackward"
	case Intersection:
		return "Intersection"
	default:
		return "Unknown"
	}
}

// Traversable reports whether an actor may stand on this kind of cell.
func (k CellKind) Traversable() bool {
	return k != Wall
}

// IsRail reports whether the cell is part of a rail network.
func (k CellKind) IsRail() bool {
	switch k {
	case RailHorizontal, RailVertical, CurveForward, CurveBackward, Intersection:
		return true
	}
	return false
}

// Glyph returns the map character for the cell kind.
// Walls in rail maps are drawn as spaces by RenderASCII.
func (k CellKind) Glyph() rune {
	switch k {
	case Open:
		return '.'
	case RailHorizontal:
		return '-'
	case RailVertical:
		return '|'
	case CurveForward:
		return '/'
	case CurveBackward:
		return '\\'
	case Intersection:
		return '+'
	default:
		return '#'
	}
}

// Redirect returns the heading of a cart that has just entered a cell of this
// kind travelling in d. Straight track keeps the heading; intersections are
// handled by the cart's turn cycle and also keep it here.
func (k CellKind) Redirect(d Dir) Dir {
	switch k {
	case CurveForward:
		switch d {
		case DirRight:
			return DirUp
		case DirUp:
			return DirRight
		case DirLeft:
			return DirDown
		case DirDown:
			return DirLeft
		}
	case CurveBackward:
		switch d {
		case DirRight:
			return DirDown
		case DirDown:
			return DirRight
		case DirLeft:
			return DirUp
		case DirUp:
			return DirLeft
		}
	}
	return d
}
