package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/wavepilot/internal/script"
	"github.com/vovakirdan/wavepilot/internal/strategy"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all registered strategies",
	Long: `Shows every strategy known to this build: compiled-in ones plus any
YAML scripts found in the configured scripts directory.`,
	Run: runList,
}

func runList(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	if cfg.Strategy.ScriptsDir != "" {
		// Best effort: a missing directory just means no extra scripts.
		//nolint:errcheck
		script.RegisterDir(cfg.Strategy.ScriptsDir)
	}

	defs := strategy.List()
	if len(defs) == 0 {
		fmt.Println("No strategies registered.")
		return
	}

	fmt.Println("Registered strategies:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, d := range defs {
		if len(d.ID) > maxIDLen {
			maxIDLen = len(d.ID)
		}
	}

	fmt.Printf("  %-*s  %-12s  %s\n", maxIDLen, "ID", "Difficulty", "Title")
	fmt.Printf("  %-*s  %-12s  %s\n", maxIDLen, "--", "----------", "-----")
	for _, d := range defs {
		diff := d.Difficulty
		if diff == "" {
			diff = "-"
		}
		fmt.Printf("  %-*s  %-12s  %s\n", maxIDLen, d.ID, diff, d.Title)
	}

	fmt.Println()
	fmt.Println("Run 'wavepilot run <id>' to start one.")
}
