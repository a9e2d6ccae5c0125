package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridsim/internal/engine"
	"github.com/vovakirdan/gridsim/internal/report"
	"github.com/vovakirdan/gridsim/internal/storage"
)

var (
	flagFormat     string
	flagTrace      bool
	flagFirstCrash bool
	flagElfAttack  int
	flagMaxTicks   int
	flagCheck      bool
)

var runCmd = &cobra.Command{
	Use:   "run <scenario>",
	Short: "Run a scenario and print the outcome",
	Long: `Run a scenario to completion and print how it ended.

The scenario may be a built-in preset ID, a path to a map file, or the ID of
a file in the scenario directory. Plain text maps and YAML scenario files are
both accepted.

Carts run until one is left; combat runs until one faction is gone. Use
--first-crash to stop at the first cart collision.

Examples:
  gridsim run combat-sample
  gridsim run carts-loops --format yaml
  gridsim run ./maps/track.txt --first-crash
  gridsim run combat-sample --elf-attack 15 --trace
  gridsim run combat-sample --check`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVarP(&flagFormat, "format", "f", "text", "Output format: text, json, yaml")
	runCmd.Flags().BoolVar(&flagTrace, "trace", false, "Print the map after every tick")
	runCmd.Flags().BoolVar(&flagFirstCrash, "first-crash", false, "Stop at the first cart collision")
	runCmd.Flags().IntVar(&flagElfAttack, "elf-attack", 0, "Override elf attack power")
	runCmd.Flags().IntVar(&flagMaxTicks, "max-ticks", 0, "Override the tick limit")
	runCmd.Flags().BoolVar(&flagCheck, "check", false, "Fail when the outcome differs from the scenario's expectations")
}

func runRun(cmd *cobra.Command, args []string) error {
	format, err := report.ParseFormat(flagFormat)
	if err != nil {
		return err
	}

	s, w, rules, err := prepare(args[0])
	if err != nil {
		return err
	}
	if flagFirstCrash {
		rules.StopOnFirstCollision = true
	}
	if flagElfAttack > 0 {
		rules.ElfAttack = flagElfAttack
	}
	if flagMaxTicks > 0 {
		rules.MaxTicks = flagMaxTicks
	}

	logger.Debug("running scenario", "scenario", s.ID, "mode", w.Mode(), "actors", len(w.Actors))

	out := cmd.OutOrStdout()
	sim := engine.NewSimulator(w, rules)
	var outcome engine.Outcome
	if flagTrace {
		outcome, err = trace(out, sim, rules.MaxTicks)
	} else {
		outcome, err = sim.Run()
	}
	if err != nil {
		reportFailure(s.ID, err)
		return err
	}

	store := openLedger()
	if store != nil {
		defer store.Close()
	}
	record(store, storage.NewRun(s.ID, "run", outcome, rules.ElfAttack))

	r := report.New(s.ID, outcome)
	r.ElfAttack = rules.ElfAttack
	if err := report.Write(out, r, format); err != nil {
		return err
	}

	if flagCheck {
		if err := s.Check(outcome); err != nil {
			return err
		}
		logger.Info("outcome matches expectations", "scenario", s.ID)
	}
	return nil
}

// trace runs sim tick by tick, writing the map before the first and after
// every tick.
func trace(out io.Writer, sim *engine.Simulator, maxTicks int) (engine.Outcome, error) {
	fmt.Fprintf(out, "Initial state:\n%s\n", sim.Render())
	for !sim.Done() {
		if maxTicks > 0 && sim.Processed() >= maxTicks {
			return engine.Outcome{}, fmt.Errorf("%w after %d ticks", engine.ErrTickLimit, sim.Processed())
		}
		res, err := sim.Tick()
		if err != nil {
			return engine.Outcome{}, err
		}
		fmt.Fprintf(out, "After tick %d:\n%s\n", res.Tick, sim.Render())
	}
	outcome, _ := sim.Outcome()
	return outcome, nil
}
