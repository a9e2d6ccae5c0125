package engine

import "fmt"

// resolveCart moves one cart a single cell and applies the cell it lands on.
// A cart entering a cell held by another live cart crashes; both are taken
// out of play at once and the remaining carts keep moving.
func (s *Simulator) resolveCart(idx int, occ []int, res *TickResult) error {
	a := &s.actors[idx]
	dir := a.Cart.Dir
	if !dir.Valid() {
		return fmt.Errorf("cart %d heading %d: %w", a.ID, dir, ErrBadDirection)
	}

	from := a.Pos
	to := from.Step(dir)
	kind, err := s.grid.CellAt(to.X, to.Y)
	if err != nil {
		return fmt.Errorf("cart %d moving %s from %s: %w", a.ID, dir, from, err)
	}
	if !kind.Traversable() {
		return fmt.Errorf("cart %d moving %s from %s into %s: %w", a.ID, dir, from, to, ErrNotTraversable)
	}

	occ[s.grid.index(from)] = -1
	a.Pos = to
	res.Moves = append(res.Moves, MoveEvent{ActorID: a.ID, From: from, To: to})

	if other := occ[s.grid.index(to)]; other >= 0 {
		b := &s.actors[other]
		a.Alive = false
		b.Alive = false
		occ[s.grid.index(to)] = -1

		ev := CollisionEvent{Tick: s.processed, At: to, ActorIDs: [2]int{a.ID, b.ID}}
		res.Collisions = append(res.Collisions, ev)
		s.collisions = append(s.collisions, ev)
		s.logger.Debug("carts collided", "tick", ev.Tick, "at", to, "carts", ev.ActorIDs)
		return nil
	}
	occ[s.grid.index(to)] = idx

	if kind == Intersection {
		a.Cart.Dir = a.Cart.NextTurn.Apply(dir)
		a.Cart.NextTurn = a.Cart.NextTurn.Advance()
	} else {
		a.Cart.Dir = kind.Redirect(dir)
	}
	return nil
}
