package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/coopsim/internal/config"
	"github.com/vovakirdan/coopsim/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available variants",
	Long:  `Shows a list of all simulation variants and the presets they accept.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	models := registry.List()

	if len(models) == 0 {
		fmt.Println("No variants available.")
		return
	}

	fmt.Println("Available variants:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, m := range models {
		if len(m.ID) > maxIDLen {
			maxIDLen = len(m.ID)
		}
	}

	fmt.Printf("  %-*s  %-6s  %s\n", maxIDLen, "ID", "Uses k", "Title")
	fmt.Printf("  %-*s  %-6s  %s\n", maxIDLen, "--", "------", "-----")

	for _, m := range models {
		usesK := "no"
		if m.NeedsSelection {
			usesK = "yes"
		}
		fmt.Printf("  %-*s  %-6s  %s\n", maxIDLen, m.ID, usesK, m.Title)
	}

	fmt.Println()
	fmt.Printf("Presets: %v\n", config.PresetNames())
	fmt.Println("Run 'coopsim run <id>' to start a simulation.")
}
