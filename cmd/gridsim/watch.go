package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/gridsim/internal/core"
	"github.com/vovakirdan/gridsim/internal/engine"
	"github.com/vovakirdan/gridsim/internal/platform/tui"
	"github.com/vovakirdan/gridsim/internal/storage"
)

var (
	flagRate     int
	flagNoActors bool
)

var watchCmd = &cobra.Command{
	Use:   "watch <scenario>",
	Short: "Animate a scenario in the terminal",
	Long: `Animate a scenario tick by tick.

Controls:
  Space/P    - Pause/resume
  N/Right    - Step one tick while paused
  +/-        - Faster/slower
  A          - Toggle the actor table
  R          - Restart
  Q/Esc      - Quit

Finished runs are recorded in the run ledger.

Examples:
  gridsim watch carts-last-cart
  gridsim watch combat-sample --rate 4
  gridsim watch ./maps/track.txt --no-actors`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().IntVar(&flagRate, "rate", 0, "Ticks per second (default from config)")
	watchCmd.Flags().BoolVar(&flagNoActors, "no-actors", false, "Hide the actor table")
}

func runWatch(cmd *cobra.Command, args []string) error {
	s, w, rules, err := prepare(args[0])
	if err != nil {
		return err
	}
	// The viewer owns the terminal; engine debug output would corrupt it.
	rules.Logger = nil

	// Get terminal size
	width, height := 80, 24 // Defaults
	if tw, th, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = tw
		height = th
	}

	rate := cfg.Watch.TicksPerSecond
	if flagRate > 0 {
		rate = core.Min(flagRate, cfg.Watch.MaxPerSecond)
	}

	store := openLedger()
	if store != nil {
		defer store.Close()
	}

	opts := tui.WatchOptions{
		Rules:          rules,
		TicksPerSecond: rate,
		MaxPerSecond:   cfg.Watch.MaxPerSecond,
		ShowActors:     cfg.Watch.ShowActors && !flagNoActors,
		OnFinish: func(out engine.Outcome) {
			record(store, storage.NewRun(s.ID, "watch", out, rules.ElfAttack))
		},
	}
	return tui.RunWatch(s, w, opts, width, height)
}
