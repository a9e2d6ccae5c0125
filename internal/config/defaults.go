package config

import (
	_ "embed"
)

//go:embed defaults/gridsim.yaml
var defaultYAML []byte

// Default returns the hard-coded configuration, used when even the
// embedded defaults cannot be decoded.
func Default() Config {
	return Config{
		Rules: RulesConfig{
			MaxTicks:     100000,
			DetectCycles: true,
		},
		Boost: BoostConfig{
			Start: 4,
			Limit: 200,
		},
		Watch: WatchConfig{
			TicksPerSecond: 8,
			MaxPerSecond:   60,
			ShowActors:     true,
		},
		Storage: StorageConfig{
			Enabled: true,
			Path:    "~/.gridsim/runs.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Scenarios: "scenarios",
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
