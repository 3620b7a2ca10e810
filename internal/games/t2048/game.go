package t2048

import "math/rand/v2"

// Spawn4Probability is the chance that a spawned tile is a 4 instead of a 2.
const Spawn4Probability = 0.1

// RandSource is the randomness the engine needs for spawning.
// *math/rand/v2.Rand satisfies it; tests may inject a scripted source.
type RandSource interface {
	IntN(n int) int
	Float64() float64
}

// Spawn describes a tile placed after a move or on reset.
type Spawn struct {
	Pos   Pos
	Value Tile
}

// MoveResult reports what a single Move call did.
type MoveResult struct {
	Direction Direction
	Moved     bool   // At least one row changed
	Gained    int    // Score added by merges
	Merges    []Pos  // Cells holding a merge result
	Spawned   *Spawn // Tile spawned after the move, nil if none
	State     Snapshot
}

// Game is one 2048 session. It owns its board exclusively and is not safe
// for concurrent use; each player gets their own instance.
type Game struct {
	rng   RandSource
	board Board
	score int
	moves int
	won   bool
	lost  bool
}

// New creates a game using rnd for spawns and resets it.
// Panics if rnd is nil.
func New(rnd RandSource) *Game {
	if rnd == nil {
		panic("t2048: nil random source")
	}
	g := &Game{rng: rnd}
	g.Reset()
	return g
}

// NewSeeded creates a game backed by a PCG generator seeded with seed.
func NewSeeded(seed uint64) *Game {
	return New(NewRand(seed))
}

// NewRand returns the seeded generator used by NewSeeded.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewWithBoard creates a game starting from an explicit board with zero score.
// No tiles are spawned. The lose flag is evaluated on the given board.
func NewWithBoard(b Board, rnd RandSource) (*Game, error) {
	if rnd == nil {
		panic("t2048: nil random source")
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &Game{rng: rnd, board: b, lost: !b.CanMove()}, nil
}

// Reset clears the board, score and flags, then spawns two tiles.
func (g *Game) Reset() Snapshot {
	g.board = Board{}
	g.score = 0
	g.moves = 0
	g.won = false
	g.lost = false

	g.spawnTile()
	g.spawnTile()

	return g.Snapshot()
}

// Move slides the board in dir.
//
// A game that is already won or lost ignores the move entirely. Otherwise the
// board is slid, a tile is spawned if anything changed, and the lose flag is
// re-evaluated even when nothing moved.
func (g *Game) Move(dir Direction) MoveResult {
	res := MoveResult{Direction: dir}

	if g.won || g.lost {
		res.State = g.Snapshot()
		return res
	}

	if !g.board.CanMove() {
		g.lost = true
		res.State = g.Snapshot()
		return res
	}

	slid := Slide(g.board, dir)
	if slid.Changed {
		g.board = slid.Board
		g.score += slid.Gained
		g.moves++
		if slid.Won {
			g.won = true
		}

		res.Moved = true
		res.Gained = slid.Gained
		res.Merges = slid.Merges
		res.Spawned = g.spawnTile()
	}

	g.lost = !g.board.CanMove()

	res.State = g.Snapshot()
	return res
}

// spawnTile places a 2 (90%) or 4 (10%) in a uniformly chosen empty cell.
// A full board is left untouched.
func (g *Game) spawnTile() *Spawn {
	empty := g.board.EmptyCells()
	if len(empty) == 0 {
		return nil
	}

	cell := empty[g.rng.IntN(len(empty))]

	value := Tile(2)
	if g.rng.Float64() >= 1-Spawn4Probability {
		value = 4
	}

	g.board[cell.index()] = value
	return &Spawn{Pos: cell, Value: value}
}

// CanMove returns true if any move is still possible.
func (g *Game) CanMove() bool {
	return g.board.CanMove()
}

// TileAt returns the tile at (x, y).
// Panics if the coordinate is off the board.
func (g *Game) TileAt(x, y int) Tile {
	return g.board.At(x, y)
}

// Board returns a copy of the current board.
func (g *Game) Board() Board {
	return g.board
}

// Score returns the cumulative score.
func (g *Game) Score() int {
	return g.score
}

// Moves returns the number of accepted moves since the last reset.
func (g *Game) Moves() int {
	return g.moves
}

// IsWon reports whether a merge has produced WinTile.
func (g *Game) IsWon() bool {
	return g.won
}

// IsLost reports whether no move was possible after the last move attempt.
func (g *Game) IsLost() bool {
	return g.lost
}

// Status returns the state machine position.
func (g *Game) Status() Status {
	return statusOf(g.won, g.lost)
}
