// wavepilot automates wave-defense matches by reading the game's HUD and
// driving mouse and keyboard input against a registered strategy.
//
// Usage:
//
//	wavepilot list               - List registered strategies
//	wavepilot run <strategy>     - Run a strategy against the live game
//	wavepilot watch              - Watch the game state without playing
//	wavepilot probe              - One-shot OCR of a screen region
//
// Global flags:
//
//	--config <path>     - Path to config YAML (default: search order)
//	--log-level <level> - debug, info, warn, error (default: info)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/wavepilot/internal/config"

	// Import for the embedded built-in strategy registration.
	_ "github.com/vovakirdan/wavepilot/internal/script"
)

var (
	// Global flags
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "wavepilot",
	Short: "Wavepilot - HUD-reading match automation",
	Long: `Wavepilot watches a wave-defense game's HUD via OCR and plays
registered strategies against it: placing traps, waiting for wave and
gold thresholds, and winding down when the match ends.

Available commands:
  list     - Show all registered strategies
  run      - Run a strategy against the live game
  watch    - Watch the observed game state without playing
  probe    - One-shot OCR of a screen region, for calibrating configs

Examples:
  wavepilot list
  wavepilot run training-hard
  wavepilot run training-hard --hotkeys
  wavepilot watch
  wavepilot probe --region 1841,733,172,52 --digits`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(probeCmd)
}

// newLogger builds the process logger from the global log-level flag.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
	})
	if lvl, err := log.ParseLevel(flagLogLevel); err == nil {
		logger.SetLevel(lvl)
	} else {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
	}
	return logger
}

// loadConfig resolves and validates the session config, exiting on failure.
// Config errors are operator errors; nothing downstream can recover from one.
func loadConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}
