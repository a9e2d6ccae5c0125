package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/gridsim/internal/config"
)

func TestEmbeddedDefaultsMatchDefault(t *testing.T) {
	var cfg config.Config
	if err := yaml.Unmarshal(config.DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	if cfg != config.Default() {
		t.Errorf("embedded defaults = %+v\nexpected %+v", cfg, config.Default())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoadCustomPathOverridesOnlyNamedFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("rules:\n  elf_attack: 15\n  max_ticks: 0\nlog:\n  level: debug\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Rules.ElfAttack != 15 {
		t.Errorf("ElfAttack = %d, expected 15", cfg.Rules.ElfAttack)
	}
	if cfg.Rules.MaxTicks != 0 {
		t.Errorf("MaxTicks = %d, expected 0", cfg.Rules.MaxTicks)
	}
	if !cfg.Rules.DetectCycles {
		t.Error("DetectCycles should keep its default")
	}
	if cfg.Boost != config.Default().Boost {
		t.Errorf("Boost = %+v, expected defaults", cfg.Boost)
	}

	lvl, err := cfg.LogLevel()
	if err != nil || lvl != log.DebugLevel {
		t.Errorf("LogLevel() = %v, %v", lvl, err)
	}

	rules := cfg.EngineRules()
	if rules.ElfAttack != 15 || !rules.DetectCycles {
		t.Errorf("Rules() = %+v", rules)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := config.Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("rules: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := config.Load(bad); err == nil {
		t.Error("expected error for malformed yaml")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("boost:\n  start: 10\n  limit: 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := config.Load(invalid)
	var ve config.ValidationError
	if !errors.As(err, &ve) || ve.Code != "BOOST_RANGE" {
		t.Errorf("Load() error = %v, expected BOOST_RANGE", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*config.Config)
		code   string
	}{
		{"defaults", func(*config.Config) {}, ""},
		{"negative hp", func(c *config.Config) { c.Rules.HitPoints = -1 }, "NEGATIVE_STAT"},
		{"negative attack", func(c *config.Config) { c.Rules.GoblinAttack = -3 }, "NEGATIVE_STAT"},
		{"negative limit", func(c *config.Config) { c.Rules.MaxTicks = -1 }, "NEGATIVE_LIMIT"},
		{"zero boost start", func(c *config.Config) { c.Boost.Start = 0 }, "BOOST_RANGE"},
		{"zero rate", func(c *config.Config) { c.Watch.TicksPerSecond = 0 }, "WATCH_RATE"},
		{"rate above max", func(c *config.Config) { c.Watch.TicksPerSecond = 100 }, "WATCH_RATE"},
		{"storage without path", func(c *config.Config) { c.Storage.Path = " " }, "STORAGE_PATH"},
		{"storage disabled", func(c *config.Config) { c.Storage.Enabled = false; c.Storage.Path = "" }, ""},
		{"bad level", func(c *config.Config) { c.Log.Level = "loud" }, "LOG_LEVEL"},
		{"upper case level", func(c *config.Config) { c.Log.Level = "WARN" }, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.modify(&cfg)
			err := cfg.Validate()

			if tc.code == "" {
				if err != nil {
					t.Errorf("Validate() = %v, expected nil", err)
				}
				return
			}
			var ve config.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Validate() = %v, expected ValidationError", err)
			}
			if ve.Code != tc.code {
				t.Errorf("Code = %s, expected %s", ve.Code, tc.code)
			}
		})
	}
}
