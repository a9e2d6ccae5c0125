package engine

// Reason says why a simulation stopped.
type Reason uint8

const (
	ReasonNone              Reason = iota
	ReasonLastCart                 // Exactly one cart left
	ReasonAllCrashed               // Every cart crashed
	ReasonFirstCollision           // Stopped at the first crash on request
	ReasonFactionEliminated        // One faction has no units left
	ReasonCasualty                 // A protected unit died
	ReasonCycle                    // A previous state repeated
	ReasonNoActors                 // Nothing to simulate
	ReasonTickLimit                // Rules.MaxTicks exceeded
)

// String returns the string representation of a reason.
func (r Reason) String() string {
	switch r {
	case ReasonLastCart:
		return "last-cart"
	case ReasonAllCrashed:
		return "all-crashed"
	case ReasonFirstCollision:
		return "first-collision"
	case ReasonFactionEliminated:
		return "faction-eliminated"
	case ReasonCasualty:
		return "casualty"
	case ReasonCycle:
		return "cycle"
	case ReasonNoActors:
		return "no-actors"
	case ReasonTickLimit:
		return "tick-limit"
	default:
		return "none"
	}
}

// ParseReason is the inverse of Reason.String.
func ParseReason(s string) (Reason, bool) {
	for r := ReasonNone; r <= ReasonTickLimit; r++ {
		if r.String() == s {
			return r, true
		}
	}
	return ReasonNone, false
}

// Outcome is the terminal report of a simulation.
type Outcome struct {
	Mode        Mode
	Reason      Reason
	Ticks       int // Full ticks completed
	HPSum       int // Remaining hit points of all live units
	Winner      Faction
	Survivor    Coord // Last cart position, valid when HasSurvivor
	HasSurvivor bool
	Collisions  []CollisionEvent
	Remaining   []Actor // Live actors at the end, in reading order
	CycleStart  int     // Tick at which the repeated state was first seen
}

// Score is the combat outcome value: full ticks times remaining hit points.
func (o Outcome) Score() int {
	return o.Ticks * o.HPSum
}

// FirstCollision returns the earliest crash, if any happened.
func (o Outcome) FirstCollision() (CollisionEvent, bool) {
	if len(o.Collisions) == 0 {
		return CollisionEvent{}, false
	}
	return o.Collisions[0], true
}

// Casualties counts dead units of faction f given its starting count.
func (o Outcome) Casualties(f Faction, initial int) int {
	alive := 0
	for _, a := range o.Remaining {
		if a.Kind == KindUnit && a.Unit.Faction == f {
			alive++
		}
	}
	return initial - alive
}
