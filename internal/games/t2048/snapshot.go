package t2048

// Status represents the game state machine position.
type Status string

const (
	StatusPlaying Status = "playing"
	StatusWon     Status = "won"
	StatusLost    Status = "lost"
	// StatusWonAndLost is reached when the winning merge also locks the board.
	StatusWonAndLost Status = "won_lost"
)

// Terminal reports whether moves are suppressed in this state.
func (s Status) Terminal() bool {
	return s != StatusPlaying
}

func statusOf(won, lost bool) Status {
	switch {
	case won && lost:
		return StatusWonAndLost
	case won:
		return StatusWon
	case lost:
		return StatusLost
	default:
		return StatusPlaying
	}
}

// Snapshot is an immutable copy of the game state for collaborators.
type Snapshot struct {
	Board   Board
	Score   int
	Moves   int
	MaxTile Tile
	Won     bool
	Lost    bool
	Status  Status
}

// Snapshot returns the current game state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Board:   g.board,
		Score:   g.score,
		Moves:   g.moves,
		MaxTile: g.board.MaxTile(),
		Won:     g.won,
		Lost:    g.lost,
		Status:  g.Status(),
	}
}

// TileAt returns the tile at (x, y) of the captured board.
func (s Snapshot) TileAt(x, y int) Tile {
	return s.Board.At(x, y)
}
