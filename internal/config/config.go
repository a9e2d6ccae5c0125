// Package config provides YAML-based configuration for the gridsim CLI:
// default simulation rules, the watch viewer, the run ledger and logging.
package config

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gridsim/internal/engine"
)

// Config is the complete CLI configuration.
type Config struct {
	Rules     RulesConfig   `yaml:"rules"`
	Boost     BoostConfig   `yaml:"boost"`
	Watch     WatchConfig   `yaml:"watch"`
	Storage   StorageConfig `yaml:"storage"`
	Log       LogConfig     `yaml:"log"`
	Scenarios string        `yaml:"scenarios"` // Directory searched for scenario files
}

// RulesConfig holds the default engine rules. Zero values keep what the map
// itself carries.
type RulesConfig struct {
	HitPoints            int  `yaml:"hit_points"`
	ElfAttack            int  `yaml:"elf_attack"`
	GoblinAttack         int  `yaml:"goblin_attack"`
	MaxTicks             int  `yaml:"max_ticks"`
	DetectCycles         bool `yaml:"detect_cycles"`
	StopOnFirstCollision bool `yaml:"stop_on_first_collision"`
}

// BoostConfig bounds the attack power search.
type BoostConfig struct {
	Start int `yaml:"start"`
	Limit int `yaml:"limit"`
}

// WatchConfig defines the animation speed of the terminal viewer.
type WatchConfig struct {
	TicksPerSecond int  `yaml:"ticks_per_second"`
	MaxPerSecond   int  `yaml:"max_per_second"`
	ShowActors     bool `yaml:"show_actors"` // Side table of live actors
}

// StorageConfig locates the SQLite run ledger.
type StorageConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// LogConfig selects the log level.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// EngineRules converts the configured defaults into engine rules.
func (c Config) EngineRules() engine.Rules {
	return engine.Rules{
		HitPoints:            c.Rules.HitPoints,
		ElfAttack:            c.Rules.ElfAttack,
		GoblinAttack:         c.Rules.GoblinAttack,
		MaxTicks:             c.Rules.MaxTicks,
		DetectCycles:         c.Rules.DetectCycles,
		StopOnFirstCollision: c.Rules.StopOnFirstCollision,
	}
}

// LogLevel parses the configured level.
func (c Config) LogLevel() (log.Level, error) {
	lvl, err := log.ParseLevel(strings.ToLower(c.Log.Level))
	if err != nil {
		return log.InfoLevel, fmt.Errorf("config: log level %q: %w", c.Log.Level, err)
	}
	return lvl, nil
}
