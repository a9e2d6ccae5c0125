package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrParse is matched by every *ParseError.
	ErrParse = errors.New("engine: parse error")

	// ErrOutOfBounds is returned when coordinate arithmetic leaves the grid.
	ErrOutOfBounds = errors.New("engine: out of bounds")

	// ErrNotTraversable is returned when an actor is asked to enter a wall.
	ErrNotTraversable = errors.New("engine: cell not traversable")

	// ErrBadDirection is returned for a cart without a valid heading.
	ErrBadDirection = errors.New("engine: invalid direction")

	// ErrTickLimit is returned by Run when Rules.MaxTicks is exceeded.
	ErrTickLimit = errors.New("engine: tick limit reached")
)

// ParseError describes malformed simulation input.
// Line and Col are 1-based; both are 0 when the error concerns the whole input.
type ParseError struct {
	Line int
	Col  int
	Char rune
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("parse: %s", e.Msg)
	}
	if e.Char != 0 {
		return fmt.Sprintf("parse: line %d col %d: %s %q", e.Line, e.Col, e.Msg, e.Char)
	}
	return fmt.Sprintf("parse: line %d col %d: %s", e.Line, e.Col, e.Msg)
}

// Is makes errors.Is(err, ErrParse) true for every ParseError.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// InvariantError reports a defect detected while processing a tick.
// Dump holds the full world state at the moment of failure.
type InvariantError struct {
	Tick    int
	ActorID int
	Err     error
	Dump    string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violated at tick %d by actor %d: %v", e.Tick, e.ActorID, e.Err)
}

func (e *InvariantError) Unwrap() error {
	return e.Err
}
