package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	flagSimGames    int
	flagSimStrategy string
	flagSimSeed     uint64
	flagSimMaxMoves int
	flagSimSave     bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run headless autoplay games",
	Long: `Play N games with a built-in strategy and print a summary.

Game i uses seed+i, so a run is reproducible.

Strategies:
  corner - prefer left and down, keeping big tiles in a corner
  greedy - pick the move with the highest immediate gain
  random - shuffle the directions every move

Examples:
  t2048 sim --games 100
  t2048 sim --strategy greedy --seed 7
  t2048 sim --games 10 --save`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimGames, "games", 100, "Number of games to play")
	simCmd.Flags().StringVar(&flagSimStrategy, "strategy", "corner", "Strategy: corner, greedy, random")
	simCmd.Flags().Uint64Var(&flagSimSeed, "seed", 1, "Seed of the first game")
	simCmd.Flags().IntVar(&flagSimMaxMoves, "max-moves", 0, "Stop each game after this many moves (0 = no limit)")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Record results in the scores database")
}

// simResult is one autoplayed game.
type simResult struct {
	Seed     uint64
	Snapshot t2048.Snapshot
}

// simSummary aggregates a batch of games.
type simSummary struct {
	Strategy   string
	Games      int
	Wins       int
	TotalScore int
	BestScore  int
	Tiles      map[t2048.Tile]int // Max tile -> games
}

func (s simSummary) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Games)
}

func (s simSummary) MeanScore() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.TotalScore) / float64(s.Games)
}

// simulate plays n games with the named strategy starting from seed.
func simulate(n int, strategy string, seed uint64, maxMoves int) ([]simResult, error) {
	if n <= 0 {
		return nil, fmt.Errorf("games must be positive, got %d", n)
	}
	if _, ok := t2048.StrategyByName(strategy, t2048.NewRand(seed)); !ok {
		return nil, fmt.Errorf("unknown strategy %q", strategy)
	}

	results := make([]simResult, 0, n)
	for i := range n {
		gameSeed := seed + uint64(i)
		s, _ := t2048.StrategyByName(strategy, t2048.NewRand(^gameSeed))
		g := t2048.NewSeeded(gameSeed)
		results = append(results, simResult{
			Seed:     gameSeed,
			Snapshot: t2048.Play(g, s, maxMoves),
		})
	}
	return results, nil
}

func summarize(strategy string, results []simResult) simSummary {
	sum := simSummary{
		Strategy: strategy,
		Games:    len(results),
		Tiles:    make(map[t2048.Tile]int),
	}
	for _, r := range results {
		snap := r.Snapshot
		if snap.Won {
			sum.Wins++
		}
		sum.TotalScore += snap.Score
		if snap.Score > sum.BestScore {
			sum.BestScore = snap.Score
		}
		sum.Tiles[snap.MaxTile]++
	}
	return sum
}

// printSummary writes win rate, mean score and a max-tile histogram.
func printSummary(w io.Writer, sum simSummary) {
	fmt.Fprintf(w, "Strategy:   %s\n", sum.Strategy)
	fmt.Fprintf(w, "Games:      %d\n", sum.Games)
	fmt.Fprintf(w, "Win rate:   %.1f%%\n", sum.WinRate()*100)
	fmt.Fprintf(w, "Mean score: %.1f\n", sum.MeanScore())
	fmt.Fprintf(w, "Best score: %d\n", sum.BestScore)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Max tile histogram:")

	tiles := make([]t2048.Tile, 0, len(sum.Tiles))
	for t := range sum.Tiles {
		tiles = append(tiles, t)
	}
	sort.Slice(tiles, func(i, j int) bool { return tiles[i] < tiles[j] })

	const barWidth = 40
	for _, t := range tiles {
		count := sum.Tiles[t]
		bar := count * barWidth / sum.Games
		if bar == 0 && count > 0 {
			bar = 1
		}
		fmt.Fprintf(w, "  %6d  %-*s %d\n", t, barWidth, strings.Repeat("#", bar), count)
	}
}

func runSim(_ *cobra.Command, _ []string) {
	results, err := simulate(flagSimGames, flagSimStrategy, flagSimSeed, flagSimMaxMoves)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	printSummary(os.Stdout, summarize(flagSimStrategy, results))

	if !flagSimSave {
		return
	}

	cfg := mustLoadConfig()
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := saveResults(store, "sim-"+flagSimStrategy, results); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving results: %v\n", err)
		store.Close()
		os.Exit(1)
	}
	fmt.Printf("\nSaved %d games to %s\n", len(results), cfg.DBPath)
}

// saveResults records every game under player.
func saveResults(store *storage.Store, player string, results []simResult) error {
	for _, r := range results {
		snap := r.Snapshot
		if _, err := store.SaveGame(storage.GameRecord{
			Player:  player,
			Score:   snap.Score,
			MaxTile: int(snap.MaxTile),
			Moves:   snap.Moves,
			Won:     snap.Won,
			Lost:    snap.Lost,
			Seed:    r.Seed,
		}); err != nil {
			return err
		}
	}
	return nil
}
