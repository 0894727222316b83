package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List all available levels",
	Long:  `Shows the built-in levels and any extra levels named in the config.`,
	Args:  cobra.NoArgs,
	Run:   runLevels,
}

// loadLevels builds a session only to read its level list.
func loadLevels() ([]breakout.LevelInfo, error) {
	logger, logCloser, err := newLogger()
	if err != nil {
		return nil, err
	}
	defer logCloser.Close()

	cfg, _, err := loadConfig(logger)
	if err != nil {
		return nil, err
	}
	session, err := breakout.NewSession(cfg, breakout.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	return session.Levels(), nil
}

func runLevels(cmd *cobra.Command, args []string) {
	levels, err := loadLevels()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
		os.Exit(1)
	}

	// Best times are optional
	var stats map[string]*storage.LevelStats
	if store, err := storage.Open(flagDBPath); err == nil {
		stats, _ = store.AllLevelStats()
		store.Close()
	}

	fmt.Println("Available levels:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	maxNameLen := 4
	for _, l := range levels {
		maxIDLen = max(maxIDLen, len(l.ID))
		maxNameLen = max(maxNameLen, len(l.Name))
	}

	fmt.Printf("  %-3s  %-*s  %-*s  %-6s  %s\n", "#", maxIDLen, "ID", maxNameLen, "Name", "Bricks", "Best")
	fmt.Printf("  %-3s  %-*s  %-*s  %-6s  %s\n", "-", maxIDLen, "--", maxNameLen, "----", "------", "----")

	for _, l := range levels {
		best := "-"
		if st, ok := stats[l.ID]; ok {
			best = fmt.Sprintf("%.1fs", st.BestTime)
		}
		fmt.Printf("  %-3d  %-*s  %-*s  %-6d  %s\n", l.Index+1, maxIDLen, l.ID, maxNameLen, l.Name, l.Bricks, best)
	}

	fmt.Println()
	fmt.Println("Run 'breakout play --level <#>' to start on a level.")
}
