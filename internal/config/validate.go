package config

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
)

// ValidationError contains details about an invalid setting.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Validate checks ranges and returns the first problem found.
func (c Config) Validate() error {
	r := c.Rules
	if r.HitPoints < 0 || r.ElfAttack < 0 || r.GoblinAttack < 0 {
		return ValidationError{
			Code:    "NEGATIVE_STAT",
			Message: "hit_points, elf_attack and goblin_attack must not be negative",
		}
	}
	if r.MaxTicks < 0 {
		return ValidationError{
			Code:    "NEGATIVE_LIMIT",
			Message: fmt.Sprintf("max_ticks is %d", r.MaxTicks),
		}
	}

	if c.Boost.Start < 1 || c.Boost.Limit < c.Boost.Start {
		return ValidationError{
			Code:    "BOOST_RANGE",
			Message: fmt.Sprintf("boost range %d..%d is empty", c.Boost.Start, c.Boost.Limit),
		}
	}

	if c.Watch.TicksPerSecond < 1 || c.Watch.MaxPerSecond < c.Watch.TicksPerSecond {
		return ValidationError{
			Code:    "WATCH_RATE",
			Message: fmt.Sprintf("ticks_per_second %d must be within 1..%d", c.Watch.TicksPerSecond, c.Watch.MaxPerSecond),
		}
	}

	if c.Storage.Enabled && strings.TrimSpace(c.Storage.Path) == "" {
		return ValidationError{
			Code:    "STORAGE_PATH",
			Message: "storage is enabled but path is empty",
		}
	}

	if _, err := log.ParseLevel(strings.ToLower(c.Log.Level)); err != nil {
		return ValidationError{
			Code:    "LOG_LEVEL",
			Message: fmt.Sprintf("unknown log level %q", c.Log.Level),
		}
	}
	return nil
}
