// coopsim simulates the evolution of cooperation in the Prisoner's Dilemma.
//
// Usage:
//
//	coopsim list              - List available variants
//	coopsim run <variant>     - Run a simulation
//	coopsim runs [variant]    - Show stored runs
//
// Global flags:
//
//	--seed <value>       - Set RNG seed for reproducible runs
//	--db <path>          - Set run catalogue path (default: ~/.coopsim/runs.db)
//	--log-level <level>  - Set log level (debug, info, warn, error)
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import models to register them
	_ "github.com/vovakirdan/coopsim/internal/models/spatial"
	_ "github.com/vovakirdan/coopsim/internal/models/wellmixed"
)

var (
	// Global flags
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "coopsim",
	Short: "Evolution of cooperation in the Prisoner's Dilemma",
	Long: `coopsim evolves a population of cooperators and defectors playing the
Prisoner's Dilemma and records how the fraction of cooperators changes.

Available commands:
  list     - Show all available variants
  run      - Run a simulation
  runs     - Browse the run catalogue

Examples:
  coopsim list
  coopsim run spatial --b 1.8 --c 1
  coopsim run wellmixed --n 500 --generations 20 --seed 42
  coopsim runs spatial`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.coopsim/runs.db", "Path to run catalogue database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(runsCmd)
}

// newLogger creates the stderr logger used by every command.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          "coopsim",
	})
	if level, err := log.ParseLevel(flagLogLevel); err == nil {
		logger.SetLevel(level)
	} else {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
	}
	return logger
}

// resolveSeed returns seed, or a time based seed when it is zero.
func resolveSeed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}
