package engine

import (
	"errors"
	"fmt"
)

// ErrNoBoost is returned when no attack power within the limit gives a
// flawless win.
var ErrNoBoost = errors.New("engine: no flawless attack power within limit")

// BoostResult describes the weakest attack power that wins without losses.
type BoostResult struct {
	Attack   int
	Attempts int
	Outcome  Outcome
}

// MinimumBoost searches attack powers start, start+1, ... limit for faction
// and returns the first with which it wins combat without losing a single
// unit. Each attempt runs on its own copy of w.
func MinimumBoost(w *World, rules Rules, faction Faction, start, limit int) (BoostResult, error) {
	if faction == FactionNone {
		return BoostResult{}, fmt.Errorf("boost: faction required")
	}
	if start < 1 {
		start = 1
	}
	logger := rules.logger()

	attempts := 0
	for atk := start; atk <= limit; atk++ {
		attempts++
		r := rules.WithAttack(faction, atk)
		r.ProtectFaction = faction
		r.StopOnFirstCollision = false

		outcome, err := NewSimulator(w, r).Run()
		if err != nil {
			return BoostResult{Attempts: attempts}, fmt.Errorf("boost: attack %d: %w", atk, err)
		}
		logger.Debug("boost attempt", "faction", faction, "attack", atk, "reason", outcome.Reason)

		if outcome.Reason == ReasonFactionEliminated && outcome.Winner == faction {
			return BoostResult{Attack: atk, Attempts: attempts, Outcome: outcome}, nil
		}
	}
	return BoostResult{Attempts: attempts}, fmt.Errorf("%w: %s up to %d", ErrNoBoost, faction, limit)
}
