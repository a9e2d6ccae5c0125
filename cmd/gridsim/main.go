// gridsim runs discrete-time simulations of actors on a 2-D grid: mine carts
// on rails and elf/goblin combat on open ground.
//
// Usage:
//
//	gridsim list                 - List built-in and on-disk scenarios
//	gridsim run <scenario>       - Run a scenario to completion and print the outcome
//	gridsim watch <scenario>     - Animate a scenario in the terminal
//	gridsim boost <scenario>     - Find the weakest flawless elf attack power
//	gridsim history [scenario]   - Show recorded runs
//	gridsim config               - Print the effective configuration
//
// Global flags:
//
//	--config <path>     - Config file (default: search ~/.gridsim and ./configs)
//	--db <path>         - Run ledger database (empty disables recording)
//	--dir <path>        - Directory searched for scenario files
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridsim/internal/config"

	// Import presets to register them
	_ "github.com/vovakirdan/gridsim/internal/presets"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagDir      string
	flagLogLevel string

	cfg    = config.Default()
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "gridsim",
	})
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gridsim",
	Short: "Grid simulations of mine carts and elf/goblin combat",
	Long: `gridsim simulates actors moving on a 2-D grid, one tick at a time.

Maps with rails run mine carts that turn at curves and intersections until
they crash. Maps with elves and goblins run a battle where every unit moves
toward its nearest enemy and attacks the weakest one in reach.

Available commands:
  list     - Show built-in and on-disk scenarios
  run      - Run a scenario and print the outcome
  watch    - Animate a scenario in the terminal
  boost    - Find the weakest elf attack power that loses no elf
  history  - Show recorded runs
  config   - Print the effective configuration

Examples:
  gridsim list
  gridsim run combat-sample
  gridsim run ./maps/loop.txt --format json
  gridsim watch carts-last-cart
  gridsim boost combat-sample
  gridsim history combat-sample`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to run ledger database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagDir, "dir", "", "Directory searched for scenario files (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (default from config)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(boostCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
}

// setup loads the configuration and applies the global flags on top of it.
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	cfg = loaded

	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if cmd.Flags().Changed("db") {
		cfg.Storage.Path = flagDBPath
		cfg.Storage.Enabled = flagDBPath != ""
	}
	if flagDir != "" {
		cfg.Scenarios = flagDir
	}

	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}
	logger.SetLevel(level)
	logger.Debug("config loaded", "path", flagConfig, "scenarios", cfg.Scenarios, "ledger", cfg.Storage.Path)
	return nil
}
