package engine

import "fmt"

// resolveUnit runs one combat unit's turn: attack if an enemy is adjacent,
// otherwise step toward the nearest reachable cell next to an enemy and
// attack if that step brought one into reach.
func (s *Simulator) resolveUnit(idx int, occ []int, res *TickResult) error {
	if s.adjacentEnemy(idx, occ) < 0 {
		if err := s.advance(idx, occ, res); err != nil {
			return err
		}
	}
	if target := s.adjacentEnemy(idx, occ); target >= 0 {
		s.attack(idx, target, occ, res)
	}
	return nil
}

// advance moves the unit one step along its path to the nearest cell in
// range of an enemy. Doing nothing is the answer when no such cell is
// reachable.
func (s *Simulator) advance(idx int, occ []int, res *TickResult) error {
	a := &s.actors[idx]
	passable := func(c Coord) bool {
		return s.grid.Traversable(c) && occ[s.grid.index(c)] < 0
	}
	inRange := func(c Coord) bool {
		for _, n := range c.Neighbors() {
			if !s.grid.InBounds(n) {
				continue
			}
			if o := occ[s.grid.index(n)]; o >= 0 && a.IsEnemyOf(s.actors[o]) {
				return true
			}
		}
		return false
	}

	path, ok := FindPath(s.grid, a.Pos, passable, inRange)
	if !ok || path.InPlace() {
		return nil
	}

	from, to := a.Pos, path.FirstStep
	if !s.grid.InBounds(to) {
		return fmt.Errorf("unit %d stepping from %s to %s: %w", a.ID, from, to, ErrOutOfBounds)
	}
	if !passable(to) || !from.Adjacent(to) {
		return fmt.Errorf("unit %d stepping from %s to %s: %w", a.ID, from, to, ErrNotTraversable)
	}

	occ[s.grid.index(from)] = -1
	occ[s.grid.index(to)] = idx
	a.Pos = to
	res.Moves = append(res.Moves, MoveEvent{ActorID: a.ID, From: from, To: to})
	return nil
}

// adjacentEnemy returns the arena index of the adjacent enemy with the
// fewest hit points, ties going to the first in reading order, or -1.
func (s *Simulator) adjacentEnemy(idx int, occ []int) int {
	a := s.actors[idx]
	best := -1
	for _, n := range a.Pos.Neighbors() {
		if !s.grid.InBounds(n) {
			continue
		}
		o := occ[s.grid.index(n)]
		if o < 0 || !a.IsEnemyOf(s.actors[o]) {
			continue
		}
		if best < 0 || s.actors[o].Unit.HP < s.actors[best].Unit.HP {
			best = o
		}
	}
	return best
}

// attack applies one strike. A defender at or below zero hit points is dead
// from this instant: it leaves the occupancy map and no longer counts as a
// target for anyone. It stays in the arena until compaction.
func (s *Simulator) attack(attackerIdx, defenderIdx int, occ []int, res *TickResult) {
	attacker := s.actors[attackerIdx]
	d := &s.actors[defenderIdx]

	d.Unit.HP -= attacker.Unit.Attack
	res.Attacks = append(res.Attacks, AttackEvent{
		AttackerID: attacker.ID,
		DefenderID: d.ID,
		Damage:     attacker.Unit.Attack,
		HPLeft:     d.Unit.HP,
	})

	if d.Unit.HP > 0 {
		return
	}
	d.Alive = false
	occ[s.grid.index(d.Pos)] = -1
	res.Deaths = append(res.Deaths, DeathEvent{ActorID: d.ID, Faction: d.Unit.Faction, At: d.Pos})
	s.logger.Debug("unit died", "tick", s.processed, "unit", d.ID, "faction", d.Unit.Faction, "at", d.Pos)
}
