package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridsim/internal/registry"
	"github.com/vovakirdan/gridsim/internal/scenario"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available scenarios",
	Long: `Shows the built-in scenarios and every scenario file found in the
scenario directory (--dir, or "scenarios" in the config).`,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	presets := registry.List()

	onDisk, skipped, err := scenario.NewLoader(cfg.Scenarios).LoadAll()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	for _, e := range skipped {
		logger.Warn("skipping scenario file", "err", e)
	}

	if len(presets) == 0 && len(onDisk) == 0 {
		fmt.Fprintln(out, "No scenarios available.")
		return nil
	}

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, p := range presets {
		maxIDLen = max(maxIDLen, len(p.ID))
	}
	for _, s := range onDisk {
		maxIDLen = max(maxIDLen, len(s.ID))
	}

	fmt.Fprintln(out, "Built-in scenarios:")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, p := range presets {
		fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, p.ID, p.Title)
	}

	if len(onDisk) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Scenarios in %s:\n", cfg.Scenarios)
		fmt.Fprintln(out)
		for _, s := range onDisk {
			fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, s.ID, s.Title())
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'gridsim run <id>' to run a scenario.")
	return nil
}
