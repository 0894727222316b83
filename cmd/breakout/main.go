// breakout is a brick breaker for the terminal.
//
// Usage:
//
//	breakout play            - Play, starting from the level menu
//	breakout levels          - List the available levels
//	breakout records [level] - Show the fastest clears
//	breakout config          - Print the default config
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible power-up drops
//	--db <path>           - Set database path (default: ~/.breakout/records.db)
//	--config <path>       - Load a custom YAML config
//	--difficulty <preset> - easy, normal or hard
//	--log-file <path>     - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/config"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagWidth      float64
	flagHeight     float64
	flagLogFile    string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "breakout",
	Short: "Breakout - Break bricks in your terminal",
	Long: `Breakout is a terminal brick breaker with power-ups and screen effects.

Available commands:
  play     - Start the game
  levels   - Show all available levels
  records  - View the fastest level clears
  config   - Print the default config YAML

Examples:
  breakout play
  breakout play --difficulty hard --seed 42
  breakout levels --config ./my-breakout.yaml
  breakout records one`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.breakout/records.db", "Path to records database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().Float64Var(&flagWidth, "width", 0, "Playfield width in world units (0 = from config)")
	rootCmd.PersistentFlags().Float64Var(&flagHeight, "height", 0, "Playfield height in world units (0 = from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(recordsCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger creates the logger named by the log flags. The game owns the
// terminal, so logs are discarded unless a file is given.
func newLogger() (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level: %w", err)
	}
	if flagLogFile == "" {
		return log.New(io.Discard), io.NopCloser(nil), nil
	}

	if err := os.MkdirAll(filepath.Dir(flagLogFile), 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "breakout",
		Level:           level,
	})
	return logger, f, nil
}

// loadConfig loads the game config and applies the difficulty and size flags.
func loadConfig(logger *log.Logger) (config.BreakoutConfig, config.DifficultyPreset, error) {
	preset, err := config.ParseDifficulty(flagDifficulty)
	if err != nil {
		return config.BreakoutConfig{}, "", err
	}

	cfg, err := config.LoadBreakout(flagConfig)
	if err != nil {
		if flagConfig != "" {
			return cfg, preset, err
		}
		logger.Warn("using default config", "err", err)
	}

	if flagWidth > 0 {
		cfg.Window.Width = flagWidth
	}
	if flagHeight > 0 {
		cfg.Window.Height = flagHeight
	}
	config.ApplyBreakoutPreset(&cfg, preset)

	if err := cfg.Validate(); err != nil {
		return cfg, preset, err
	}
	return cfg, preset, nil
}
