package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
)

var (
	flagSeed   uint64
	flagFPS    int
	flagPlayer string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a local game",
	Long: `Start a local game of 2048.

Controls:
  Arrows/WASD/hjkl - Slide tiles
  Esc              - New game
  R                - Restart (after game over)
  ?                - Toggle help
  Ctrl+S           - Save a text screenshot
  Q/Ctrl+C         - Quit

Examples:
  t2048 play
  t2048 play --seed 42
  t2048 play --player alice --fps 60`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().Uint64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	playCmd.Flags().IntVar(&flagFPS, "fps", 0, "Tick rate for animations (0 = config value)")
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Player name stored with scores (default from config)")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg := mustLoadConfig()
	logger := newLogger(cfg.LogLevel, "t2048")

	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	player := cfg.Player
	if flagPlayer != "" {
		player = flagPlayer
	}

	runtime := cfg.Runtime(flagSeed)
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		runtime.ScreenW = w
		runtime.ScreenH = h
	}

	opts := tui.ModelOptions{
		Config:        runtime,
		Keys:          tui.NewKeyMapper(cfg.Keys),
		Theme:         tui.NewTheme(cfg.ThemeColors()),
		Logger:        logger,
		Player:        player,
		ScreenshotDir: config.ExpandHome("~/.t2048/screenshots"),
	}

	// Continue without storage if it cannot be opened
	store := openStore(cfg.DBPath, logger)
	if store != nil {
		opts.Store = store
	}

	runErr := tui.Run(opts)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
