package engine_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/gridsim/internal/engine"
)

var combatSamples = []struct {
	name   string
	in     string
	ticks  int
	hp     int
	winner engine.Faction
	boost  int // Minimum flawless elf attack, 0 when not checked
	bscore int
}{
	{
		name: "sample",
		in: `#######
#.G...#
#...EG#
#.#.#G#
#..G#E#
#.....#
#######`,
		ticks: 47, hp: 590, winner: engine.FactionGoblin,
		boost: 15, bscore: 4988,
	},
	{
		name: "elves win",
		in: `#######
#G..#E#
#E#E.E#
#G.##.#
#...#E#
#...E.#
#######`,
		ticks: 37, hp: 982, winner: engine.FactionElf,
	},
	{
		name: "elves win narrowly",
		in: `#######
#E..EG#
#.#G.E#
#E.##E#
#G..#.#
#..E#.#
#######`,
		ticks: 46, hp: 859, winner: engine.FactionElf,
		boost: 4, bscore: 31284,
	},
	{
		name: "goblins in corridor",
		in: `#######
#E.G#.#
#.#G..#
#G.#.G#
#G..#.#
#...E.#
#######`,
		ticks: 35, hp: 793, winner: engine.FactionGoblin,
		boost: 15, bscore: 3478,
	},
	{
		name: "goblins behind walls",
		in: `#######
#.E...#
#.#..G#
#.###.#
#E#G#G#
#...#G#
#######`,
		ticks: 54, hp: 536, winner: engine.FactionGoblin,
		boost: 12, bscore: 6474,
	},
	{
		name: "large",
		in: `#########
#G......#
#.E.#...#
#..##..G#
#...##..#
#...#...#
#.G...G.#
#.....G.#
#########`,
		ticks: 20, hp: 937, winner: engine.FactionGoblin,
		boost: 34, bscore: 1140,
	},
}

func TestCombatSamples(t *testing.T) {
	for _, tc := range combatSamples {
		t.Run(tc.name, func(t *testing.T) {
			out := mustRun(t, mustParse(t, tc.in), engine.DefaultRules())

			if out.Reason != engine.ReasonFactionEliminated {
				t.Fatalf("Reason = %v, expected faction-eliminated", out.Reason)
			}
			if out.Ticks != tc.ticks || out.HPSum != tc.hp {
				t.Errorf("got %d ticks x %d hp, expected %d x %d", out.Ticks, out.HPSum, tc.ticks, tc.hp)
			}
			if out.Score() != tc.ticks*tc.hp {
				t.Errorf("Score() = %d, expected %d", out.Score(), tc.ticks*tc.hp)
			}
			if out.Winner != tc.winner {
				t.Errorf("Winner = %v, expected %v", out.Winner, tc.winner)
			}
		})
	}
}

func TestMinimumBoost(t *testing.T) {
	for _, tc := range combatSamples {
		if tc.boost == 0 {
			continue
		}
		t.Run(tc.name, func(t *testing.T) {
			w := mustParse(t, tc.in)
			res, err := engine.MinimumBoost(w, engine.DefaultRules(), engine.FactionElf, 4, 200)
			if err != nil {
				t.Fatalf("MinimumBoost() failed: %v", err)
			}
			if res.Attack != tc.boost {
				t.Errorf("Attack = %d, expected %d", res.Attack, tc.boost)
			}
			if res.Attempts != tc.boost-3 {
				t.Errorf("Attempts = %d, expected %d", res.Attempts, tc.boost-3)
			}
			if res.Outcome.Score() != tc.bscore {
				t.Errorf("Score() = %d, expected %d", res.Outcome.Score(), tc.bscore)
			}
			if res.Outcome.Winner != engine.FactionElf {
				t.Errorf("Winner = %v, expected elf", res.Outcome.Winner)
			}
		})
	}
}

func TestMinimumBoostLeavesWorldUntouched(t *testing.T) {
	w := mustParse(t, combatSamples[0].in)
	before := engine.RenderASCII(w.Grid, w.Actors, nil)

	_, err := engine.MinimumBoost(w, engine.DefaultRules(), engine.FactionElf, 4, 6)
	if !errors.Is(err, engine.ErrNoBoost) {
		t.Fatalf("MinimumBoost() error = %v, expected ErrNoBoost", err)
	}
	if after := engine.RenderASCII(w.Grid, w.Actors, nil); after != before {
		t.Errorf("world changed:\n%s\nexpected:\n%s", after, before)
	}
}

func TestMovementRounds(t *testing.T) {
	w := mustParse(t, `#########
#G..G..G#
#.......#
#.......#
#G..E..G#
#.......#
#.......#
#G..G..G#
#########`)

	expected := []string{
		`#########
#.G...G.#
#...G...#
#...E..G#
#.G.....#
#.......#
#G..G..G#
#.......#
#########
`,
		`#########
#..G.G..#
#...G...#
#.G.E.G.#
#.......#
#G..G..G#
#.......#
#.......#
#########
`,
		`#########
#.......#
#..GGG..#
#..GEG..#
#G..G...#
#......G#
#.......#
#.......#
#########
`,
	}

	sim := engine.NewSimulator(w, engine.Rules{})
	for i, e := range expected {
		if _, err := sim.Tick(); err != nil {
			t.Fatalf("Tick() failed: %v", err)
		}
		if got := stripLegend(sim.Render()); got != e {
			t.Errorf("after tick %d:\n%s\nexpected:\n%s", i+1, got, e)
		}
	}
}

func TestDeadUnitIsNotTargeted(t *testing.T) {
	w := mustParse(t, `#####
#EG.#
#GE.#
#####`)
	// Goblin 2 is one hit from death.
	w.Actors[1].Unit.HP = 2

	sim := engine.NewSimulator(w, engine.Rules{})
	res, err := sim.Tick()
	if err != nil {
		t.Fatalf("Tick() failed: %v", err)
	}

	expected := []engine.AttackEvent{
		{AttackerID: 1, DefenderID: 2, Damage: 3, HPLeft: -1},
		{AttackerID: 3, DefenderID: 1, Damage: 3, HPLeft: 197},
		{AttackerID: 4, DefenderID: 3, Damage: 3, HPLeft: 197},
	}
	if len(res.Attacks) != len(expected) {
		t.Fatalf("got %d attacks, expected %d: %+v", len(res.Attacks), len(expected), res.Attacks)
	}
	for i, e := range expected {
		if res.Attacks[i] != e {
			t.Errorf("attack %d = %+v, expected %+v", i, res.Attacks[i], e)
		}
	}
	if len(res.Deaths) != 1 || res.Deaths[0].ActorID != 2 {
		t.Errorf("Deaths = %+v, expected goblin 2", res.Deaths)
	}
	if _, ok := sim.Actor(2); ok {
		t.Error("dead goblin should be compacted at the end of the tick")
	}
}

func TestAttackLowestHitPoints(t *testing.T) {
	tests := []struct {
		name     string
		hp       [4]int // up, left, right, down goblins
		expected int
	}{
		{"lowest wins", [4]int{10, 5, 5, 1}, 5},
		{"tie goes to reading order", [4]int{10, 5, 5, 10}, 2},
		{"all equal picks up", [4]int{7, 7, 7, 7}, 1},
		{"right beats down on tie", [4]int{9, 9, 4, 4}, 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := mustParse(t, `#####
#.G.#
#GEG#
#.G.#
#####`)
			// IDs in reading order: 1 up, 2 left, 3 elf, 4 right, 5 down.
			for i, id := range []int{1, 2, 4, 5} {
				w.Actors[id-1].Unit.HP = tc.hp[i]
			}

			res, err := engine.NewSimulator(w, engine.Rules{}).Tick()
			if err != nil {
				t.Fatalf("Tick() failed: %v", err)
			}
			for _, a := range res.Attacks {
				if a.AttackerID != 3 {
					continue
				}
				if a.DefenderID != tc.expected {
					t.Errorf("elf attacked %d, expected %d", a.DefenderID, tc.expected)
				}
				return
			}
			t.Fatal("elf did not attack")
		})
	}
}

func TestNoActorMovesTwice(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"combat", combatSamples[0].in},
		{"carts", cartSample},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sim := engine.NewSimulator(mustParse(t, tc.in), engine.Rules{})
			for !sim.Done() {
				res, err := sim.Tick()
				if err != nil {
					t.Fatalf("Tick() failed: %v", err)
				}
				moved := map[int]bool{}
				for _, m := range res.Moves {
					if moved[m.ActorID] {
						t.Fatalf("tick %d: actor %d moved twice", res.Tick, m.ActorID)
					}
					moved[m.ActorID] = true
					if !m.From.Adjacent(m.To) {
						t.Fatalf("tick %d: actor %d jumped %v -> %v", res.Tick, m.ActorID, m.From, m.To)
					}
				}
			}
		})
	}
}

func TestDeterministic(t *testing.T) {
	for _, in := range []string{combatSamples[5].in, cartSampleLast} {
		w := mustParse(t, in)
		a := engine.NewSimulator(w, engine.DefaultRules())
		b := engine.NewSimulator(w, engine.DefaultRules())

		for !a.Done() {
			if _, err := a.Tick(); err != nil {
				t.Fatalf("Tick() failed: %v", err)
			}
			if _, err := b.Tick(); err != nil {
				t.Fatalf("Tick() failed: %v", err)
			}
			if a.Fingerprint() != b.Fingerprint() || a.Render() != b.Render() {
				t.Fatalf("runs diverged at tick %d", a.Processed())
			}
		}
		if !b.Done() {
			t.Error("second run did not finish with the first")
		}
	}
}

func TestStalemate(t *testing.T) {
	w := mustParse(t, "#E#G#")

	out := mustRun(t, w, engine.DefaultRules())
	if out.Reason != engine.ReasonCycle {
		t.Fatalf("Reason = %v, expected cycle", out.Reason)
	}
	if out.Ticks != 1 || out.CycleStart != 0 {
		t.Errorf("cycle after %d ticks from %d, expected 1 from 0", out.Ticks, out.CycleStart)
	}

	out, err := engine.NewSimulator(w, engine.Rules{MaxTicks: 5}).Run()
	if !errors.Is(err, engine.ErrTickLimit) {
		t.Fatalf("Run() error = %v, expected ErrTickLimit", err)
	}
	if out.Reason != engine.ReasonTickLimit || out.Ticks != 5 {
		t.Errorf("outcome = %v after %d ticks, expected tick-limit after 5", out.Reason, out.Ticks)
	}
}

func TestProtectFactionStopsOnCasualty(t *testing.T) {
	rules := engine.DefaultRules()
	rules.ProtectFaction = engine.FactionElf

	out := mustRun(t, mustParse(t, combatSamples[0].in), rules)
	if out.Reason != engine.ReasonCasualty {
		t.Fatalf("Reason = %v, expected casualty", out.Reason)
	}
	if out.Casualties(engine.FactionElf, 2) != 1 {
		t.Errorf("expected exactly one elf lost, got %d", out.Casualties(engine.FactionElf, 2))
	}
}

func TestRulesOverrideUnitStats(t *testing.T) {
	w := mustParse(t, "#EG#")
	sim := engine.NewSimulator(w, engine.Rules{HitPoints: 10, ElfAttack: 4})

	res, err := sim.Tick()
	if err != nil {
		t.Fatalf("Tick() failed: %v", err)
	}
	if len(res.Attacks) != 2 {
		t.Fatalf("expected 2 attacks, got %d", len(res.Attacks))
	}
	if res.Attacks[0].HPLeft != 6 || res.Attacks[1].HPLeft != 7 {
		t.Errorf("attacks = %+v, expected goblin at 6 and elf at 7", res.Attacks)
	}
	if w.Actors[0].Unit.HP != engine.DefaultHitPoints {
		t.Error("simulator must not mutate the parsed world")
	}
}

func TestNoActors(t *testing.T) {
	out := mustRun(t, mustParse(t, "#...#"), engine.DefaultRules())
	if out.Reason != engine.ReasonNoActors {
		t.Errorf("Reason = %v, expected no-actors", out.Reason)
	}
}
