package engine

import (
	"fmt"
	"hash/fnv"
	"sort"

	"github.com/charmbracelet/log"
)

// Simulator advances a World one tick at a time.
// It owns its actors; other code refers to them by ID only.
type Simulator struct {
	grid   *Grid
	actors []Actor // Arena, compacted at the end of every tick
	rules  Rules
	logger *log.Logger
	mode   Mode

	processed  int // Ticks started, including a final partial one
	full       int // Ticks in which every live actor acted
	collisions []CollisionEvent
	seen       map[uint64]int

	done    bool
	outcome Outcome
}

// NewSimulator prepares a simulation of a copy of w under the given rules.
// Unit hit points and attack power are overridden where rules say so.
func NewSimulator(w *World, rules Rules) *Simulator {
	world := w.Clone()
	for i := range world.Actors {
		a := &world.Actors[i]
		if a.Kind != KindUnit {
			continue
		}
		if rules.HitPoints > 0 {
			a.Unit.HP = rules.HitPoints
		}
		if atk := rules.AttackFor(a.Unit.Faction); atk > 0 {
			a.Unit.Attack = atk
		}
	}

	s := &Simulator{
		grid:   world.Grid,
		actors: world.Actors,
		rules:  rules,
		logger: rules.logger(),
		mode:   world.Mode(),
	}
	if rules.DetectCycles {
		s.seen = map[uint64]int{s.Fingerprint(): 0}
	}
	return s
}

// Grid returns the immutable map.
func (s *Simulator) Grid() *Grid {
	return s.grid
}

// Mode returns the actor family being simulated.
func (s *Simulator) Mode() Mode {
	return s.mode
}

// Ticks returns the number of full ticks completed.
func (s *Simulator) Ticks() int {
	return s.full
}

// Processed returns the number of ticks started.
func (s *Simulator) Processed() int {
	return s.processed
}

// Done reports whether a terminal condition has been reached.
func (s *Simulator) Done() bool {
	return s.done
}

// Outcome returns the terminal report once Done is true.
func (s *Simulator) Outcome() (Outcome, bool) {
	return s.outcome, s.done
}

// Collisions returns every crash so far.
func (s *Simulator) Collisions() []CollisionEvent {
	out := make([]CollisionEvent, len(s.collisions))
	copy(out, s.collisions)
	return out
}

// Snapshot returns a copy of the live actors in reading order.
func (s *Simulator) Snapshot() []Actor {
	out := make([]Actor, 0, len(s.actors))
	for _, a := range s.actors {
		if a.Alive {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Pos.Less(out[j].Pos)
	})
	return out
}

// World returns the current state as an independent World.
func (s *Simulator) World() *World {
	return &World{Grid: s.grid, Actors: s.Snapshot()}
}

// Actor returns the actor with the given ID, alive or not, if it is still
// in the arena.
func (s *Simulator) Actor(id int) (Actor, bool) {
	for _, a := range s.actors {
		if a.ID == id {
			return a, true
		}
	}
	return Actor{}, false
}

// Run ticks until a terminal condition is reached.
// When Rules.MaxTicks is exceeded it returns the partial outcome together
// with ErrTickLimit.
func (s *Simulator) Run() (Outcome, error) {
	if !s.done && s.aliveCount() == 0 {
		s.finish(ReasonNoActors)
	}
	for !s.done {
		if s.rules.MaxTicks > 0 && s.processed >= s.rules.MaxTicks {
			s.finish(ReasonTickLimit)
			return s.outcome, fmt.Errorf("%w after %d ticks", ErrTickLimit, s.processed)
		}
		if _, err := s.Tick(); err != nil {
			return s.outcome, err
		}
	}
	return s.outcome, nil
}

// Tick resolves every live actor once, in reading order of their positions
// at the start of the tick. Moves are applied immediately, so later actors
// see earlier actors' new positions.
func (s *Simulator) Tick() (TickResult, error) {
	if s.done {
		return TickResult{Tick: s.processed, Done: true}, nil
	}
	s.processed++
	res := TickResult{Tick: s.processed, Complete: true}
	occ := s.occupancy()

	for _, idx := range s.turnOrder() {
		a := &s.actors[idx]
		if !a.Alive {
			continue
		}

		var err error
		switch a.Kind {
		case KindCart:
			err = s.resolveCart(idx, occ, &res)
		case KindUnit:
			// Combat is over as soon as a unit finds no enemies left.
			if !s.hasLive(a.Unit.Faction.Enemy()) {
				res.Complete = false
				break
			}
			err = s.resolveUnit(idx, occ, &res)
		default:
			err = fmt.Errorf("actor kind %d: %w", a.Kind, ErrBadDirection)
		}
		if err != nil {
			return res, s.invariant(a.ID, err)
		}
		if !res.Complete || s.interrupted(&res) {
			break
		}
	}

	if res.Complete {
		s.full = s.processed
	}
	s.compact()
	s.checkTerminal(&res)
	res.Done = s.done
	return res, nil
}

// interrupted applies the rules that stop a run in the middle of a tick.
func (s *Simulator) interrupted(res *TickResult) bool {
	if s.rules.StopOnFirstCollision && len(res.Collisions) > 0 {
		res.Complete = false
		s.finish(ReasonFirstCollision)
		return true
	}
	if p := s.rules.ProtectFaction; p != FactionNone {
		for _, d := range res.Deaths {
			if d.Faction == p {
				res.Complete = false
				s.finish(ReasonCasualty)
				return true
			}
		}
	}
	return false
}

// checkTerminal evaluates end conditions after a tick.
func (s *Simulator) checkTerminal(res *TickResult) {
	if s.done {
		return
	}

	switch s.mode {
	case ModeCarts:
		switch s.aliveCount() {
		case 0:
			s.finish(ReasonAllCrashed)
		case 1:
			s.finish(ReasonLastCart)
		}
	case ModeCombat:
		if !res.Complete || !s.hasLive(FactionElf) || !s.hasLive(FactionGoblin) {
			s.finish(ReasonFactionEliminated)
		}
	default:
		s.finish(ReasonNoActors)
	}
	if s.done || s.seen == nil {
		return
	}

	fp := s.Fingerprint()
	if first, ok := s.seen[fp]; ok {
		s.finish(ReasonCycle)
		s.outcome.CycleStart = first
		return
	}
	s.seen[fp] = s.processed
}

// finish records the terminal outcome.
func (s *Simulator) finish(reason Reason) {
	live := s.Snapshot()
	o := Outcome{
		Mode:       s.mode,
		Reason:     reason,
		Ticks:      s.full,
		Collisions: s.Collisions(),
		Remaining:  live,
	}
	for _, a := range live {
		if a.Kind == KindUnit {
			o.HPSum += a.Unit.HP
		}
	}
	if s.mode == ModeCombat && reason == ReasonFactionEliminated {
		switch {
		case s.hasLive(FactionElf) && !s.hasLive(FactionGoblin):
			o.Winner = FactionElf
		case s.hasLive(FactionGoblin) && !s.hasLive(FactionElf):
			o.Winner = FactionGoblin
		}
	}
	if s.mode == ModeCarts && len(live) == 1 {
		o.Survivor = live[0].Pos
		o.HasSurvivor = true
	}

	s.done = true
	s.outcome = o
	s.logger.Debug("simulation finished",
		"mode", s.mode, "reason", reason, "ticks", o.Ticks, "hp", o.HPSum, "score", o.Score())
}

// invariant wraps a defect with a full state dump and stops the run.
func (s *Simulator) invariant(actorID int, err error) error {
	ie := &InvariantError{
		Tick:    s.processed,
		ActorID: actorID,
		Err:     err,
		Dump:    s.Dump(),
	}
	s.done = true
	s.logger.Error("invariant violated", "tick", ie.Tick, "actor", actorID, "err", err)
	return ie
}

// turnOrder returns arena indices of live actors sorted by reading order.
func (s *Simulator) turnOrder() []int {
	order := make([]int, 0, len(s.actors))
	for i, a := range s.actors {
		if a.Alive {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(i, j int) bool {
		return s.actors[order[i]].Pos.Less(s.actors[order[j]].Pos)
	})
	return order
}

// occupancy maps every cell to the arena index of the live actor standing
// there, or -1.
func (s *Simulator) occupancy() []int {
	occ := make([]int, s.grid.W*s.grid.H)
	for i := range occ {
		occ[i] = -1
	}
	for i, a := range s.actors {
		if a.Alive && s.grid.InBounds(a.Pos) {
			occ[s.grid.index(a.Pos)] = i
		}
	}
	return occ
}

// compact drops dead actors from the arena.
func (s *Simulator) compact() {
	live := s.actors[:0]
	for _, a := range s.actors {
		if a.Alive {
			live = append(live, a)
		}
	}
	s.actors = live
}

func (s *Simulator) aliveCount() int {
	n := 0
	for _, a := range s.actors {
		if a.Alive {
			n++
		}
	}
	return n
}

func (s *Simulator) hasLive(f Faction) bool {
	for _, a := range s.actors {
		if a.Alive && a.Kind == KindUnit && a.Unit.Faction == f {
			return true
		}
	}
	return false
}

// Fingerprint hashes the live actor state. The tick counter is left out so
// that identical configurations at different ticks collide on purpose.
func (s *Simulator) Fingerprint() uint64 {
	h := fnv.New64a()
	for _, a := range s.Snapshot() {
		fmt.Fprintf(h, "%d:%d:%d,%d:", a.ID, a.Kind, a.Pos.X, a.Pos.Y)
		switch a.Kind {
		case KindCart:
			fmt.Fprintf(h, "%d:%d;", a.Cart.Dir, a.Cart.NextTurn)
		case KindUnit:
			fmt.Fprintf(h, "%d:%d;", a.Unit.Faction, a.Unit.HP)
		}
	}
	return h.Sum64()
}

// Dump renders the map and the full actor arena for diagnostics.
func (s *Simulator) Dump() string {
	return fmt.Sprintf("tick %d (full %d), mode %s\n%s%s",
		s.processed, s.full, s.mode,
		RenderASCII(s.grid, s.actors, s.crashSites()),
		describeActors(s.actors))
}

// crashSites returns the locations of crashes in the latest tick.
func (s *Simulator) crashSites() []Coord {
	var sites []Coord
	for _, c := range s.collisions {
		if c.Tick == s.processed {
			sites = append(sites, c.At)
		}
	}
	return sites
}
