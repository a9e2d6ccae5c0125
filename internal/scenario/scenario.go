// Package scenario loads simulation scenarios from disk and checks run
// outcomes against their recorded expectations.
// This package depends on engine but engine does not depend on scenario.
package scenario

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/gridsim/internal/engine"
	"github.com/vovakirdan/gridsim/internal/scenario/formats"
)

// ErrMismatch is returned by Check when an outcome differs from Expect.
var ErrMismatch = errors.New("scenario: outcome does not match expectation")

// Scenario is a map together with its rule overrides and expectations.
type Scenario struct {
	ID       string
	Name     string
	Map      string
	Rules    formats.Overrides
	Expect   *formats.Expect
	FilePath string // Empty for built-in presets
}

// FromFormat wraps a parsed file.
func FromFormat(p formats.Scenario, path string) Scenario {
	return Scenario{
		ID:       p.ID,
		Name:     p.Name,
		Map:      p.Map,
		Rules:    p.Rules,
		Expect:   p.Expect,
		FilePath: path,
	}
}

// Title returns the display name, falling back to the ID.
func (s Scenario) Title() string {
	if s.Name != "" {
		return s.Name
	}
	return s.ID
}

// World parses the scenario map.
func (s Scenario) World() (*engine.World, error) {
	w, err := engine.Parse(s.Map)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", s.ID, err)
	}
	return w, nil
}

// Apply layers the scenario's overrides on top of base.
func (s Scenario) Apply(base engine.Rules) engine.Rules {
	r := base
	o := s.Rules
	if o.HitPoints > 0 {
		r.HitPoints = o.HitPoints
	}
	if o.ElfAttack > 0 {
		r.ElfAttack = o.ElfAttack
	}
	if o.GoblinAttack > 0 {
		r.GoblinAttack = o.GoblinAttack
	}
	if o.MaxTicks > 0 {
		r.MaxTicks = o.MaxTicks
	}
	if o.StopOnFirstCollision != nil {
		r.StopOnFirstCollision = *o.StopOnFirstCollision
	}
	return r
}

// Check compares an outcome with the scenario's expectations and lists
// every difference. A scenario without expectations always passes.
func (s Scenario) Check(out engine.Outcome) error {
	e := s.Expect
	if e == nil {
		return nil
	}

	var diffs []string
	if e.Reason != "" && out.Reason.String() != e.Reason {
		diffs = append(diffs, fmt.Sprintf("reason %s, expected %s", out.Reason, e.Reason))
	}
	if e.Ticks != 0 && out.Ticks != e.Ticks {
		diffs = append(diffs, fmt.Sprintf("ticks %d, expected %d", out.Ticks, e.Ticks))
	}
	if e.Score != 0 && out.Score() != e.Score {
		diffs = append(diffs, fmt.Sprintf("score %d, expected %d", out.Score(), e.Score))
	}
	if e.Winner != "" && !strings.EqualFold(out.Winner.String(), e.Winner) {
		diffs = append(diffs, fmt.Sprintf("winner %s, expected %s", out.Winner, e.Winner))
	}
	if e.Survivor != "" {
		got := "none"
		if out.HasSurvivor {
			got = out.Survivor.String()
		}
		if got != normalizeCoord(e.Survivor) {
			diffs = append(diffs, fmt.Sprintf("survivor %s, expected %s", got, e.Survivor))
		}
	}
	if e.FirstCrash != "" {
		got := "none"
		if c, ok := out.FirstCollision(); ok {
			got = c.At.String()
		}
		if got != normalizeCoord(e.FirstCrash) {
			diffs = append(diffs, fmt.Sprintf("first crash %s, expected %s", got, e.FirstCrash))
		}
	}

	if len(diffs) > 0 {
		return fmt.Errorf("%w: %s: %s", ErrMismatch, s.ID, strings.Join(diffs, "; "))
	}
	return nil
}

// ParseCoord reads an "x,y" position.
func ParseCoord(s string) (engine.Coord, error) {
	xs, ys, ok := strings.Cut(strings.TrimSpace(s), ",")
	if !ok {
		return engine.Coord{}, fmt.Errorf("scenario: coordinate %q: expected x,y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return engine.Coord{}, fmt.Errorf("scenario: coordinate %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return engine.Coord{}, fmt.Errorf("scenario: coordinate %q: %w", s, err)
	}
	return engine.C(x, y), nil
}

func normalizeCoord(s string) string {
	c, err := ParseCoord(s)
	if err != nil {
		return s
	}
	return c.String()
}
