package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridsim/internal/engine"
	"github.com/vovakirdan/gridsim/internal/report"
	"github.com/vovakirdan/gridsim/internal/storage"
)

var (
	flagBoostStart   int
	flagBoostLimit   int
	flagBoostFaction string
	flagBoostFormat  string
)

var boostCmd = &cobra.Command{
	Use:   "boost <scenario>",
	Short: "Find the weakest attack power that wins without losses",
	Long: `Raise one faction's attack power one step at a time until it wins
the battle without losing a single unit, then print that run's outcome.

Each attempt stops as soon as a unit of the boosted faction dies.

Examples:
  gridsim boost combat-sample
  gridsim boost ./maps/cave.txt --start 10 --limit 50
  gridsim boost combat-sample --faction goblin --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runBoost,
}

func init() {
	boostCmd.Flags().IntVar(&flagBoostStart, "start", 0, "First attack power to try (default from config)")
	boostCmd.Flags().IntVar(&flagBoostLimit, "limit", 0, "Highest attack power to try (default from config)")
	boostCmd.Flags().StringVar(&flagBoostFaction, "faction", "elf", "Faction to boost: elf or goblin")
	boostCmd.Flags().StringVarP(&flagBoostFormat, "format", "f", "text", "Output format: text, json, yaml")
}

func runBoost(cmd *cobra.Command, args []string) error {
	format, err := report.ParseFormat(flagBoostFormat)
	if err != nil {
		return err
	}
	faction, err := engine.ParseFaction(flagBoostFaction)
	if err != nil {
		return err
	}

	s, w, rules, err := prepare(args[0])
	if err != nil {
		return err
	}
	if w.Mode() != engine.ModeCombat {
		return fmt.Errorf("scenario %s has no combat units", s.ID)
	}

	start, limit := cfg.Boost.Start, cfg.Boost.Limit
	if flagBoostStart > 0 {
		start = flagBoostStart
	}
	if flagBoostLimit > 0 {
		limit = flagBoostLimit
	}

	logger.Info("searching attack power", "scenario", s.ID, "faction", faction, "start", start, "limit", limit)
	res, err := engine.MinimumBoost(w, rules, faction, start, limit)
	if err != nil {
		if errors.Is(err, engine.ErrNoBoost) {
			logger.Warn("no flawless win", "scenario", s.ID, "attempts", res.Attempts)
		} else {
			reportFailure(s.ID, err)
		}
		return err
	}
	logger.Info("found attack power", "attack", res.Attack, "attempts", res.Attempts)

	elfAttack := 0
	if faction == engine.FactionElf {
		elfAttack = res.Attack
	}

	store := openLedger()
	if store != nil {
		defer store.Close()
	}
	record(store, storage.NewRun(s.ID, "boost", res.Outcome, elfAttack))

	r := report.New(s.ID, res.Outcome)
	r.ElfAttack = elfAttack
	if err := report.Write(cmd.OutOrStdout(), r, format); err != nil {
		return err
	}
	if faction != engine.FactionElf {
		fmt.Fprintf(cmd.OutOrStdout(), "%s attack: %d\n", faction, res.Attack)
	}
	return nil
}
