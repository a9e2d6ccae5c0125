// Package report renders simulation outcomes for the CLI in text, JSON or
// YAML.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/gridsim/internal/engine"
)

// Format selects the output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("report: unknown format %q (want text, json or yaml)", s)
}

// Collision is one crash in a report.
type Collision struct {
	Tick  int    `json:"tick" yaml:"tick"`
	At    string `json:"at" yaml:"at"`
	Carts [2]int `json:"carts" yaml:"carts,flow"`
}

// Report is the serializable summary of an Outcome.
type Report struct {
	Scenario   string      `json:"scenario" yaml:"scenario"`
	Mode       string      `json:"mode" yaml:"mode"`
	Reason     string      `json:"reason" yaml:"reason"`
	Ticks      int         `json:"ticks" yaml:"ticks"`
	HPSum      int         `json:"hp_sum,omitempty" yaml:"hp_sum,omitempty"`
	Score      int         `json:"score,omitempty" yaml:"score,omitempty"`
	Winner     string      `json:"winner,omitempty" yaml:"winner,omitempty"`
	Survivor   string      `json:"survivor,omitempty" yaml:"survivor,omitempty"`
	FirstCrash string      `json:"first_crash,omitempty" yaml:"first_crash,omitempty"`
	Collisions []Collision `json:"collisions,omitempty" yaml:"collisions,omitempty"`
	CycleStart *int        `json:"cycle_start,omitempty" yaml:"cycle_start,omitempty"`
	ElfAttack  int         `json:"elf_attack,omitempty" yaml:"elf_attack,omitempty"`
}

// New builds a report for a finished run.
func New(scenario string, out engine.Outcome) Report {
	r := Report{
		Scenario: scenario,
		Mode:     out.Mode.String(),
		Reason:   out.Reason.String(),
		Ticks:    out.Ticks,
	}
	if out.Mode == engine.ModeCombat {
		r.HPSum = out.HPSum
		r.Score = out.Score()
	}
	if out.Winner != engine.FactionNone {
		r.Winner = strings.ToLower(out.Winner.String())
	}
	if out.HasSurvivor {
		r.Survivor = out.Survivor.String()
	}
	if first, ok := out.FirstCollision(); ok {
		r.FirstCrash = first.At.String()
	}
	for _, c := range out.Collisions {
		r.Collisions = append(r.Collisions, Collision{Tick: c.Tick, At: c.At.String(), Carts: c.ActorIDs})
	}
	if out.Reason == engine.ReasonCycle {
		start := out.CycleStart
		r.CycleStart = &start
	}
	return r
}

// Write encodes r to w in the given format.
func Write(w io.Writer, r Report, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("report: json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("report: yaml: %w", err)
		}
		return enc.Close()
	case FormatText, "":
		_, err := io.WriteString(w, Text(r))
		return err
	}
	return fmt.Errorf("report: unknown format %q", f)
}

// Text renders r for humans.
func Text(r Report) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Scenario: %s (%s)\n", r.Scenario, r.Mode)
	fmt.Fprintf(&sb, "Result:   %s after %d full ticks\n", r.Reason, r.Ticks)

	if r.Winner != "" {
		fmt.Fprintf(&sb, "Winner:   %s\n", r.Winner)
	}
	if r.Mode == engine.ModeCombat.String() {
		fmt.Fprintf(&sb, "Outcome:  %d ticks x %d hp = %d\n", r.Ticks, r.HPSum, r.Score)
	}
	if r.ElfAttack > 0 {
		fmt.Fprintf(&sb, "Elf attack: %d\n", r.ElfAttack)
	}
	if r.FirstCrash != "" {
		fmt.Fprintf(&sb, "First crash: %s\n", r.FirstCrash)
	}
	if r.Survivor != "" {
		fmt.Fprintf(&sb, "Last cart:   %s\n", r.Survivor)
	}
	if r.CycleStart != nil {
		fmt.Fprintf(&sb, "State repeats the one after tick %d\n", *r.CycleStart)
	}
	if len(r.Collisions) > 1 {
		sb.WriteString("\nCollisions:\n")
		fmt.Fprintf(&sb, "  %-5s  %-8s  %s\n", "Tick", "At", "Carts")
		fmt.Fprintf(&sb, "  %-5s  %-8s  %s\n", "----", "--", "-----")
		for _, c := range r.Collisions {
			fmt.Fprintf(&sb, "  %-5d  %-8s  %d, %d\n", c.Tick, c.At, c.Carts[0], c.Carts[1])
		}
	}
	return sb.String()
}
