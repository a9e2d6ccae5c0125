package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/gridsim/internal/platform/tui"
	"github.com/vovakirdan/gridsim/internal/storage"
)

var (
	flagHistoryLimit int
	flagInteractive  bool
	flagClear        bool
)

var historyCmd = &cobra.Command{
	Use:   "history [scenario]",
	Short: "Show recorded runs",
	Long: `Display the most recent runs recorded in the run ledger, optionally
for one scenario only.

Examples:
  gridsim history
  gridsim history combat-sample --limit 5
  gridsim history -i
  gridsim history carts-loops --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 20, "Number of runs to show")
	historyCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse runs in the terminal UI")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the recorded runs instead of showing them")
}

func runHistory(cmd *cobra.Command, args []string) error {
	id := ""
	if len(args) == 1 {
		id = args[0]
	}
	if !cfg.Storage.Enabled || cfg.Storage.Path == "" {
		return errors.New("run ledger is disabled (set storage.enabled or pass --db)")
	}

	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	switch {
	case flagClear:
		if err := store.ClearRuns(id); err != nil {
			return err
		}
		logger.Info("run history cleared", "scenario", id)
		return nil

	case flagInteractive:
		width, height := 80, 24 // Defaults
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		return tui.RunHistory(store, id, width, height)
	}

	runs, err := store.RecentRuns(id, flagHistoryLimit)
	if err != nil {
		return err
	}
	printRuns(cmd, id, runs)
	return nil
}

// printRuns writes runs as a plain table.
func printRuns(cmd *cobra.Command, id string, runs []storage.Run) {
	out := cmd.OutOrStdout()
	if id == "" {
		fmt.Fprintln(out, "Recent runs")
	} else {
		fmt.Fprintf(out, "Recent runs - %s\n", id)
	}
	fmt.Fprintln(out)

	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Use 'gridsim run <scenario>' to record one.")
		return
	}

	fmt.Fprintf(out, "  %-5s  %-18s  %-6s  %-18s  %-6s  %-10s  %s\n", "ID", "Scenario", "Cmd", "Reason", "Ticks", "Score", "Date")
	fmt.Fprintf(out, "  %-5s  %-18s  %-6s  %-18s  %-6s  %-10s  %s\n", "--", "--------", "---", "------", "-----", "-----", "----")
	for _, r := range runs {
		score := "-"
		if r.Mode == "combat" {
			score = fmt.Sprintf("%d", r.Score)
		} else if r.Survivor != "" {
			score = r.Survivor
		}
		fmt.Fprintf(out, "  %-5d  %-18s  %-6s  %-18s  %-6d  %-10s  %s\n",
			r.ID, r.Scenario, r.Command, r.Reason, r.Ticks, score, r.CreatedAt.Format("2006-01-02 15:04"))
	}
}
