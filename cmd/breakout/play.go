package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/platform/tui"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

var flagLevel int

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play breakout",
	Long: `Start the game at the level menu.

Controls:
  W/S, Up/Down  - Select level (menu)
  Enter         - Start level / back to menu after a win
  A/D, Arrows   - Move paddle
  Space         - Launch ball
  P/Esc         - Pause
  Ctrl+S        - Save a screenshot
  Q/Ctrl+C      - Quit

Difficulty options:
  easy   - Wider paddle, slower ball, more frequent good power-ups
  normal - Config values unchanged
  hard   - Narrower paddle, faster ball, fewer good power-ups

Examples:
  breakout play
  breakout play --level 3
  breakout play --difficulty hard
  breakout play --config ./my-breakout.yaml --log-file /tmp/breakout.log`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Preselect a level in the menu (1-based)")
}

func runPlay(cmd *cobra.Command, args []string) {
	logger, logCloser, err := newLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	cfg, preset, err := loadConfig(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	rt := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// Open records storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open records database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(cfg, tui.Options{
		Runtime:    rt,
		Store:      store,
		Logger:     logger,
		Difficulty: string(preset),
		StartLevel: flagLevel,
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
