package engine

// MoveEvent records an actor stepping to a neighbouring cell.
type MoveEvent struct {
	ActorID int
	From    Coord
	To      Coord
}

// AttackEvent records one unit striking another.
type AttackEvent struct {
	AttackerID int
	DefenderID int
	Damage     int
	HPLeft     int
}

// DeathEvent records a unit whose hit points reached zero.
type DeathEvent struct {
	ActorID int
	Faction Faction
	At      Coord
}

// CollisionEvent records two carts crashing into each other.
type CollisionEvent struct {
	Tick     int // 1-based tick in which the crash happened
	At       Coord
	ActorIDs [2]int // Moving cart first
}

// TickResult contains everything that happened during one tick.
type TickResult struct {
	Tick       int // 1-based index of the tick just processed
	Moves      []MoveEvent
	Attacks    []AttackEvent
	Deaths     []DeathEvent
	Collisions []CollisionEvent
	Complete   bool // False when the run ended before every actor acted
	Done       bool // A terminal condition was reached
}
