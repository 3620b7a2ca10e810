package t2048

// Strategy picks the order in which directions are tried for the next move.
type Strategy interface {
	Name() string
	Order(b Board) []Direction
}

// CornerStrategy always prefers the same fixed order, which tends to pile
// large tiles into the bottom-left corner.
type CornerStrategy struct{}

// Name implements Strategy.
func (CornerStrategy) Name() string { return "corner" }

// Order implements Strategy.
func (CornerStrategy) Order(Board) []Direction {
	return []Direction{DirDown, DirLeft, DirRight, DirUp}
}

// RandomStrategy tries directions in a random order.
type RandomStrategy struct {
	Rand RandSource
}

// Name implements Strategy.
func (RandomStrategy) Name() string { return "random" }

// Order implements Strategy.
func (s RandomStrategy) Order(Board) []Direction {
	dirs := []Direction{DirLeft, DirRight, DirUp, DirDown}
	// Fisher-Yates
	for i := len(dirs) - 1; i > 0; i-- {
		j := s.Rand.IntN(i + 1)
		dirs[i], dirs[j] = dirs[j], dirs[i]
	}
	return dirs
}

// GreedyStrategy prefers the direction with the highest immediate merge gain,
// breaking ties in CornerStrategy order.
type GreedyStrategy struct{}

// Name implements Strategy.
func (GreedyStrategy) Name() string { return "greedy" }

// Order implements Strategy.
func (GreedyStrategy) Order(b Board) []Direction {
	base := CornerStrategy{}.Order(b)
	gains := make(map[Direction]int, len(base))
	for _, d := range base {
		res := Slide(b, d)
		if !res.Changed {
			gains[d] = -1
			continue
		}
		gains[d] = res.Gained
	}

	// Stable insertion sort by descending gain
	for i := 1; i < len(base); i++ {
		for j := i; j > 0 && gains[base[j]] > gains[base[j-1]]; j-- {
			base[j], base[j-1] = base[j-1], base[j]
		}
	}
	return base
}

// Play drives g with s until the game is won or lost, or maxMoves accepted
// moves have been made (maxMoves <= 0 means no limit).
func Play(g *Game, s Strategy, maxMoves int) Snapshot {
	for !g.Status().Terminal() {
		if maxMoves > 0 && g.Moves() >= maxMoves {
			break
		}

		moved := false
		for _, d := range s.Order(g.Board()) {
			res := g.Move(d)
			if res.Moved || res.State.Status.Terminal() {
				moved = true
				break
			}
		}
		if !moved {
			break
		}
	}
	return g.Snapshot()
}

// StrategyByName returns the named strategy. rnd is only used by "random".
func StrategyByName(name string, rnd RandSource) (Strategy, bool) {
	switch name {
	case "corner":
		return CornerStrategy{}, true
	case "greedy":
		return GreedyStrategy{}, true
	case "random":
		return RandomStrategy{Rand: rnd}, true
	default:
		return nil, false
	}
}
