package t2048

import "fmt"

// Direction represents a move direction.
type Direction int

const (
	DirLeft Direction = iota
	DirRight
	DirUp
	DirDown
)

// Directions lists every move direction.
var Directions = [...]Direction{DirLeft, DirRight, DirUp, DirDown}

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	default:
		return "unknown"
	}
}

// ParseDirection converts a name produced by String back to a Direction.
func ParseDirection(s string) (Direction, error) {
	for _, d := range Directions {
		if d.String() == s {
			return d, nil
		}
	}
	return 0, fmt.Errorf("t2048: unknown direction %q", s)
}

// rotation maps a direction onto the canonical left move.
// Left=0, Down=90, Right=180, Up=270.
func (d Direction) rotation() Rotation {
	switch d {
	case DirLeft:
		return Rotate0
	case DirDown:
		return Rotate90
	case DirRight:
		return Rotate180
	case DirUp:
		return Rotate270
	default:
		panic(fmt.Sprintf("t2048: unknown direction %d", int(d)))
	}
}

// LineResult is the outcome of sliding a single line to the left.
type LineResult struct {
	Line   Line
	Gained int             // Sum of merged values
	Won    bool            // A merge produced WinTile
	Merged [BoardSize]bool // Cells of Line that hold a merge result
}

// compact left-justifies the non-empty tiles of l, keeping their order.
func compact(l Line) Line {
	var out Line
	n := 0
	for _, v := range l {
		if !v.IsEmpty() {
			out[n] = v
			n++
		}
	}
	return out
}

// SlideLine compacts, merges and re-compacts a line toward index 0.
// Each tile merges at most once and merge results never cascade.
func SlideLine(l Line) LineResult {
	var res LineResult
	merged := compact(l)
	var mergedAt [BoardSize]bool

	for i := 0; i < BoardSize-1; i++ {
		if merged[i].IsEmpty() {
			break
		}
		if merged[i] == merged[i+1] {
			merged[i] *= 2
			merged[i+1] = 0
			mergedAt[i] = true
			res.Gained += int(merged[i])
			if merged[i] == WinTile {
				res.Won = true
			}
			i++ // consumed
		}
	}

	// Re-compact, carrying the merge markers along
	n := 0
	for i, v := range merged {
		if v.IsEmpty() {
			continue
		}
		res.Line[n] = v
		res.Merged[n] = mergedAt[i]
		n++
	}
	return res
}

// SlideResult is the outcome of sliding a whole board.
type SlideResult struct {
	Board   Board
	Gained  int
	Won     bool
	Changed bool
	Merges  []Pos // Cells holding a merge result, in board orientation
}

// Slide performs a move in the given direction without spawning.
// The board is rotated so the move becomes a left move, every row is slid
// independently, and the inverse rotation restores the orientation.
func Slide(b Board, dir Direction) SlideResult {
	rot := dir.rotation()
	inv := rot.Inverse()
	canon := b.Rotate(rot)

	var res SlideResult
	var out Board
	for y := range BoardSize {
		row := canon.Row(y)
		lr := SlideLine(row)
		out.SetRow(y, lr.Line)

		res.Gained += lr.Gained
		res.Won = res.Won || lr.Won
		if lr.Line != row {
			res.Changed = true
		}
		for x, m := range lr.Merged {
			if m {
				res.Merges = append(res.Merges, inv.Apply(Pos{X: x, Y: y}))
			}
		}
	}

	res.Board = out.Rotate(inv)
	return res
}
