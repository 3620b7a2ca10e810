// t2048 is the 2048 sliding-tile game for the terminal.
//
// Usage:
//
//	t2048 play               - Play a local game
//	t2048 serve              - Host games over SSH (plus optional HTTP side-car)
//	t2048 scores             - Show high scores and stats
//	t2048 sim                - Run headless autoplay games
//
// Global flags:
//
//	--config <path>     - Config file (default search: ~/.t2048, ./configs, embedded)
//	--db <path>         - Scores database (default: ~/.t2048/scores.db)
//	--log-level <level> - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	// Global flags
	flagConfig   string
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
	Use:   "t2048",
	Short: "2048 - Slide and merge tiles in your terminal",
	Long: `2048 is the sliding-tile puzzle: merge equal tiles to reach 2048.

Available commands:
  play     - Play a local game
  serve    - Start SSH server for remote play
  scores   - View high scores
  sim      - Run headless autoplay games

Examples:
  t2048 play
  t2048 play --seed 42
  t2048 serve --ssh :2048 --http :8080
  t2048 scores --limit 20
  t2048 sim --games 100 --strategy greedy`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
}

// loadConfig reads .env, the config file and the environment, then applies
// the global flags on top.
func loadConfig() (config.Config, string, error) {
	if err := config.LoadDotEnv(); err != nil {
		return config.Config{}, "", err
	}

	cfg, source, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, "", err
	}

	if flagDBPath != "" {
		cfg.DBPath = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	return cfg, source, nil
}

// mustLoadConfig loads the configuration or exits.
func mustLoadConfig() config.Config {
	cfg, _, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// newLogger creates a stderr logger at the configured level.
func newLogger(level, prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})

	lvl, err := log.ParseLevel(level)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", level)
		lvl = log.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}

// openStore opens the scores database, logging instead of failing so the
// game still works without it.
func openStore(path string, logger *log.Logger) *storage.Store {
	store, err := storage.Open(path)
	if err != nil {
		logger.Warn("could not open scores database", "path", path, "error", err)
		return nil
	}
	return store
}
