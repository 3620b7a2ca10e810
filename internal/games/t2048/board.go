// Package t2048 implements the 2048 board engine: a pure, deterministic state
// machine over a fixed 4x4 grid. It has no rendering or input dependencies;
// the platform layer drives it through Reset and Move and re-reads its state.
package t2048

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// BoardSize is the board dimension.
	BoardSize = 4
	// CellCount is the number of cells on the board.
	CellCount = BoardSize * BoardSize
	// WinTile is the tile value that wins the game.
	WinTile Tile = 2048
)

// ErrInvalidTile is returned when a board holds a value that is neither empty
// nor a power of two >= 2.
var ErrInvalidTile = errors.New("t2048: invalid tile value")

// Tile is a single cell value. Zero is empty.
type Tile uint32

// IsEmpty reports whether the cell holds no tile.
func (t Tile) IsEmpty() bool {
	return t == 0
}

// Valid reports whether t is empty or a power of two >= 2.
func (t Tile) Valid() bool {
	return t == 0 || (t >= 2 && t&(t-1) == 0)
}

// Pos is a cell coordinate. X is the column, Y the row.
type Pos struct {
	X, Y int
}

// InBounds reports whether p lies on the board.
func (p Pos) InBounds() bool {
	return p.X >= 0 && p.X < BoardSize && p.Y >= 0 && p.Y < BoardSize
}

func (p Pos) index() int {
	return p.X + p.Y*BoardSize
}

// Line is one row of the board, read left to right.
type Line [BoardSize]Tile

// Board is the 4x4 grid in row-major order (index = x + y*4).
type Board [CellCount]Tile

// BoardFromRows builds a board from row-major rows, handy for tests and tools.
func BoardFromRows(rows [BoardSize]Line) Board {
	var b Board
	for y := range BoardSize {
		b.SetRow(y, rows[y])
	}
	return b
}

// At returns the tile at (x, y).
// Panics if the coordinate is off the board.
func (b Board) At(x, y int) Tile {
	p := Pos{X: x, Y: y}
	if !p.InBounds() {
		panic(fmt.Sprintf("t2048: tile (%d, %d) out of range", x, y))
	}
	return b[p.index()]
}

// Set stores v at (x, y).
// Panics if the coordinate is off the board.
func (b *Board) Set(x, y int, v Tile) {
	p := Pos{X: x, Y: y}
	if !p.InBounds() {
		panic(fmt.Sprintf("t2048: tile (%d, %d) out of range", x, y))
	}
	b[p.index()] = v
}

// Row returns row y.
func (b Board) Row(y int) Line {
	var l Line
	copy(l[:], b[y*BoardSize:(y+1)*BoardSize])
	return l
}

// SetRow overwrites row y.
func (b *Board) SetRow(y int, l Line) {
	copy(b[y*BoardSize:(y+1)*BoardSize], l[:])
}

// Validate checks the tile invariant for every cell.
func (b Board) Validate() error {
	for i, v := range b {
		if !v.Valid() {
			return fmt.Errorf("%w: %d at (%d, %d)", ErrInvalidTile, v, i%BoardSize, i/BoardSize)
		}
	}
	return nil
}

// EmptyCells returns the positions of all empty cells in row-major order.
func (b Board) EmptyCells() []Pos {
	cells := make([]Pos, 0, CellCount)
	for i, v := range b {
		if v.IsEmpty() {
			cells = append(cells, Pos{X: i % BoardSize, Y: i / BoardSize})
		}
	}
	return cells
}

// IsFull returns true if no cell is empty.
func (b Board) IsFull() bool {
	for _, v := range b {
		if v.IsEmpty() {
			return false
		}
	}
	return true
}

// HasPossibleMerge returns true if any horizontally or vertically adjacent
// cells hold equal values.
func (b Board) HasPossibleMerge() bool {
	for y := range BoardSize {
		for x := range BoardSize {
			val := b[x+y*BoardSize]
			// Right neighbor
			if x < BoardSize-1 && b[x+1+y*BoardSize] == val {
				return true
			}
			// Bottom neighbor
			if y < BoardSize-1 && b[x+(y+1)*BoardSize] == val {
				return true
			}
		}
	}
	return false
}

// CanMove returns true if any move is still possible.
func (b Board) CanMove() bool {
	return !b.IsFull() || b.HasPossibleMerge()
}

// MaxTile returns the highest tile value on the board.
func (b Board) MaxTile() Tile {
	var maxVal Tile
	for _, v := range b {
		if v > maxVal {
			maxVal = v
		}
	}
	return maxVal
}

// Mirror flips the board horizontally.
func (b Board) Mirror() Board {
	var out Board
	for y := range BoardSize {
		for x := range BoardSize {
			out[(BoardSize-1-x)+y*BoardSize] = b[x+y*BoardSize]
		}
	}
	return out
}

// String renders the board as space-separated rows.
func (b Board) String() string {
	var sb strings.Builder
	for y := range BoardSize {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := range BoardSize {
			if x > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strconv.FormatUint(uint64(b[x+y*BoardSize]), 10))
		}
	}
	return sb.String()
}
