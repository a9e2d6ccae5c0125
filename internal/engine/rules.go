package engine

import (
	"io"

	"github.com/charmbracelet/log"
)

// Rules tune a simulation run. Zero values keep what the World already
// carries, so Rules{} replays a parsed map with its defaults.
type Rules struct {
	HitPoints    int // Starting HP for every unit when > 0
	ElfAttack    int // Elf attack power when > 0
	GoblinAttack int // Goblin attack power when > 0

	MaxTicks             int     // Run stops with ErrTickLimit after this many ticks when > 0
	DetectCycles         bool    // Stop with ReasonCycle when a state repeats
	StopOnFirstCollision bool    // Carts: stop at the first crash
	ProtectFaction       Faction // Stop with ReasonCasualty when a unit of this faction dies

	Logger *log.Logger // Debug events; discarded when nil
}

// DefaultRules returns the rules used when nothing is configured.
func DefaultRules() Rules {
	return Rules{
		MaxTicks:     100000,
		DetectCycles: true,
	}
}

// AttackFor returns the attack override for a faction, or 0 for none.
func (r Rules) AttackFor(f Faction) int {
	switch f {
	case FactionElf:
		return r.ElfAttack
	case FactionGoblin:
		return r.GoblinAttack
	default:
		return 0
	}
}

// WithAttack returns a copy of r with the attack override for f set.
func (r Rules) WithAttack(f Faction, attack int) Rules {
	switch f {
	case FactionElf:
		r.ElfAttack = attack
	case FactionGoblin:
		r.GoblinAttack = attack
	}
	return r
}

// logger returns the configured logger or one that discards everything.
func (r Rules) logger() *log.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return log.New(io.Discard)
}
