package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-breakout/internal/platform/tui"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

var (
	flagRecordsLimit int
	flagInteractive  bool
	flagReset        bool
)

var recordsCmd = &cobra.Command{
	Use:   "records [level]",
	Short: "Show the fastest clears",
	Long: `Display the fastest clears of one level, or the recent clears of all
levels when no level is given. Use --interactive to browse every level.

Examples:
  breakout records
  breakout records one
  breakout records --interactive
  breakout records two --reset`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRecords,
}

func init() {
	recordsCmd.Flags().IntVar(&flagRecordsLimit, "limit", 10, "Number of records to show")
	recordsCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse records in a full-screen view")
	recordsCmd.Flags().BoolVar(&flagReset, "reset", false, "Delete the records of the given level")
}

func runRecords(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening records database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagInteractive:
		levels, err := loadLevels()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
			os.Exit(1)
		}
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunRecords(store, levels, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case len(args) == 0:
		printRecent(store)

	default:
		levelID := args[0]
		if flagReset {
			if err := store.DeleteClears(levelID); err != nil {
				fmt.Fprintf(os.Stderr, "Error deleting records: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Records of level %q deleted.\n", levelID)
			return
		}
		printLevel(store, levelID)
	}
}

func printLevel(store *storage.Store, levelID string) {
	clears, err := store.BestClears(levelID, flagRecordsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving records: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Fastest Clears - %s\n", levelID)
	fmt.Println()

	if len(clears) == 0 {
		fmt.Println("No clears recorded yet.")
		fmt.Println()
		fmt.Println("Run 'breakout levels' to see the level ids.")
		return
	}

	fmt.Printf("  %-4s  %-9s  %-6s  %s\n", "Rank", "Time", "Mode", "Date")
	fmt.Printf("  %-4s  %-9s  %-6s  %s\n", "----", "----", "----", "----")
	for i, c := range clears {
		fmt.Printf("  %-4d  %-9s  %-6s  %s\n", i+1, fmt.Sprintf("%.2fs", c.Elapsed), c.Difficulty, c.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if best, ok, err := store.BestTime(levelID); err == nil && ok {
		fmt.Printf("Best: %.2fs (%d ticks)\n", best, clears[0].Ticks)
	}
}

func printRecent(store *storage.Store) {
	clears, err := store.RecentClears(flagRecordsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving records: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Recent Clears")
	fmt.Println()

	if len(clears) == 0 {
		fmt.Println("No clears recorded yet.")
		fmt.Println()
		fmt.Println("Run 'breakout play' to set the first time!")
		return
	}

	fmt.Printf("  %-16s  %-20s  %-9s  %s\n", "Date", "Level", "Time", "Mode")
	fmt.Printf("  %-16s  %-20s  %-9s  %s\n", "----", "-----", "----", "----")
	for _, c := range clears {
		name := c.LevelName
		if name == "" {
			name = c.LevelID
		}
		fmt.Printf("  %-16s  %-20s  %-9s  %s\n", c.CreatedAt.Format("2006-01-02 15:04"), name, fmt.Sprintf("%.2fs", c.Elapsed), c.Difficulty)
	}
}
