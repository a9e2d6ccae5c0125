// Package formats provides the scenario file parsers: raw text maps and
// YAML documents that wrap a map with rules and expectations.
package formats

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/gridsim/internal/engine"
)

// Scenario is a parsed scenario file.
type Scenario struct {
	ID     string
	Name   string
	Map    string
	Rules  Overrides
	Expect *Expect
}

// Overrides adjusts engine rules for one scenario. Zero values and nil
// pointers leave the caller's rules unchanged.
type Overrides struct {
	HitPoints            int   `yaml:"hit_points,omitempty"`
	ElfAttack            int   `yaml:"elf_attack,omitempty"`
	GoblinAttack         int   `yaml:"goblin_attack,omitempty"`
	MaxTicks             int   `yaml:"max_ticks,omitempty"`
	StopOnFirstCollision *bool `yaml:"stop_on_first_collision,omitempty"`
}

// Expect is the outcome a scenario is known to produce. Empty fields are
// not checked.
type Expect struct {
	Reason     string `yaml:"reason,omitempty"`
	Ticks      int    `yaml:"ticks,omitempty"`
	Score      int    `yaml:"score,omitempty"`
	Winner     string `yaml:"winner,omitempty"`
	Survivor   string `yaml:"survivor,omitempty"`    // "x,y"
	FirstCrash string `yaml:"first_crash,omitempty"` // "x,y"
}

// YAMLScenario is the on-disk YAML layout.
type YAMLScenario struct {
	ID     string    `yaml:"id"`
	Name   string    `yaml:"name"`
	Map    string    `yaml:"map"`
	Rules  Overrides `yaml:"rules,omitempty"`
	Expect *Expect   `yaml:"expect,omitempty"`
}

// ParseYAML parses a YAML scenario. The map field is required.
func ParseYAML(data []byte) (Scenario, error) {
	var ys YAMLScenario
	if err := yaml.Unmarshal(data, &ys); err != nil {
		return Scenario{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if strings.TrimSpace(ys.Map) == "" {
		return Scenario{}, &engine.ParseError{Msg: "missing header"}
	}
	if ys.Expect != nil && ys.Expect.Reason != "" {
		if _, ok := engine.ParseReason(ys.Expect.Reason); !ok {
			return Scenario{}, fmt.Errorf("expect: unknown reason %q", ys.Expect.Reason)
		}
	}

	return Scenario{
		ID:     ys.ID,
		Name:   ys.Name,
		Map:    ys.Map,
		Rules:  ys.Rules,
		Expect: ys.Expect,
	}, nil
}

// ParseText takes a raw map file as is. The caller supplies the ID.
func ParseText(data []byte) (Scenario, error) {
	text := string(data)
	if strings.TrimSpace(text) == "" {
		return Scenario{}, &engine.ParseError{Msg: "empty input"}
	}
	return Scenario{Map: text}, nil
}

// MarshalYAML renders a scenario in the YAML layout ParseYAML reads.
func MarshalYAML(s Scenario) ([]byte, error) {
	out, err := yaml.Marshal(YAMLScenario{
		ID:     s.ID,
		Name:   s.Name,
		Map:    s.Map,
		Rules:  s.Rules,
		Expect: s.Expect,
	})
	if err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	return out, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml", ".txt", ".map"}
}
