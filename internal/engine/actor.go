package engine

import "fmt"

// ActorKind selects which variant fields of an Actor are meaningful.
type ActorKind uint8

const (
	KindCart ActorKind = iota + 1
	KindUnit
)

// String returns the string representation of an actor kind.
func (k ActorKind) String() string {
	switch k {
	case KindCart:
		return "cart"
	case KindUnit:
		return "unit"
	default:
		return "unknown"
	}
}

// Faction is the side a combat unit fights for.
type Faction uint8

const (
	FactionNone Faction = iota
	FactionElf
	FactionGoblin
)

// String returns the string representation of a faction.
func (f Faction) String() string {
	switch f {
	case FactionElf:
		return "Elf"
	case FactionGoblin:
		return "Goblin"
	default:
		return "None"
	}
}

// Enemy returns the opposing faction.
func (f Faction) Enemy() Faction {
	switch f {
	case FactionElf:
		return FactionGoblin
	case FactionGoblin:
		return FactionElf
	default:
		return FactionNone
	}
}

// Glyph returns the map character for a unit of this faction.
func (f Faction) Glyph() rune {
	switch f {
	case FactionElf:
		return 'E'
	case FactionGoblin:
		return 'G'
	default:
		return '?'
	}
}

// ParseFaction converts "elf"/"E" or "goblin"/"G" into a Faction.
func ParseFaction(s string) (Faction, error) {
	switch s {
	case "elf", "Elf", "E", "e":
		return FactionElf, nil
	case "goblin", "Goblin", "G", "g":
		return FactionGoblin, nil
	}
	return FactionNone, fmt.Errorf("unknown faction %q", s)
}

// CartState holds the fields only carts use.
type CartState struct {
	Dir      Dir  // Current heading
	NextTurn Turn // Choice for the next intersection
}

// UnitState holds the fields only combat units use.
type UnitState struct {
	Faction Faction
	HP      int
	Attack  int
}

// Actor is one mobile entity. Actors live in a single slice owned by the
// Simulator and refer to each other only by ID.
type Actor struct {
	ID    int
	Kind  ActorKind
	Pos   Coord
	Alive bool
	Cart  CartState // valid only when Kind == KindCart
	Unit  UnitState // valid only when Kind == KindUnit
}

// NewCart creates a live cart heading in dir. Its first intersection turn is Left.
func NewCart(id int, pos Coord, dir Dir) Actor {
	return Actor{
		ID:    id,
		Kind:  KindCart,
		Pos:   pos,
		Alive: true,
		Cart:  CartState{Dir: dir, NextTurn: TurnLeft},
	}
}

// NewUnit creates a live combat unit.
func NewUnit(id int, pos Coord, faction Faction, hp, attack int) Actor {
	return Actor{
		ID:    id,
		Kind:  KindUnit,
		Pos:   pos,
		Alive: true,
		Unit:  UnitState{Faction: faction, HP: hp, Attack: attack},
	}
}

// Glyph returns the map character for the actor.
func (a Actor) Glyph() rune {
	switch a.Kind {
	case KindCart:
		return a.Cart.Dir.Glyph()
	case KindUnit:
		return a.Unit.Faction.Glyph()
	default:
		return '?'
	}
}

// IsEnemyOf reports whether a and other are live units of opposing factions.
func (a Actor) IsEnemyOf(other Actor) bool {
	return a.Kind == KindUnit && other.Kind == KindUnit &&
		a.Alive && other.Alive &&
		a.Unit.Faction.Enemy() == other.Unit.Faction
}

// String formats the actor for logs and state dumps.
func (a Actor) String() string {
	state := "alive"
	if !a.Alive {
		state = "dead"
	}
	switch a.Kind {
	case KindCart:
		return fmt.Sprintf("#%d cart at %s heading %s next %s (%s)",
			a.ID, a.Pos, a.Cart.Dir, a.Cart.NextTurn, state)
	case KindUnit:
		return fmt.Sprintf("#%d %s at %s hp=%d atk=%d (%s)",
			a.ID, a.Unit.Faction, a.Pos, a.Unit.HP, a.Unit.Attack, state)
	default:
		return fmt.Sprintf("#%d unknown actor at %s", a.ID, a.Pos)
	}
}
