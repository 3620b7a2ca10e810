package t2048

import "fmt"

// Rotation is a clockwise rotation of the board in quarter turns.
// Rotations are exact index permutations; no trigonometry is involved.
type Rotation int

const (
	Rotate0 Rotation = iota
	Rotate90
	Rotate180
	Rotate270
)

// Degrees returns the rotation angle.
func (r Rotation) Degrees() int {
	return int(r.normalize()) * 90
}

// Inverse returns the rotation that undoes r.
func (r Rotation) Inverse() Rotation {
	return (4 - r.normalize()) % 4
}

func (r Rotation) normalize() Rotation {
	return ((r % 4) + 4) % 4
}

// Apply returns where p lands after rotating the board by r.
//
//	90:  (x, y) -> (3-y, x)
//	180: (x, y) -> (3-x, 3-y)
//	270: (x, y) -> (y, 3-x)
func (r Rotation) Apply(p Pos) Pos {
	const last = BoardSize - 1
	switch r.normalize() {
	case Rotate0:
		return p
	case Rotate90:
		return Pos{X: last - p.Y, Y: p.X}
	case Rotate180:
		return Pos{X: last - p.X, Y: last - p.Y}
	case Rotate270:
		return Pos{X: p.Y, Y: last - p.X}
	}
	panic(fmt.Sprintf("t2048: unreachable rotation %d", r))
}

// Rotate returns the board rotated by r.
func (b Board) Rotate(r Rotation) Board {
	if r.normalize() == Rotate0 {
		return b
	}
	var out Board
	for i, v := range b {
		dst := r.Apply(Pos{X: i % BoardSize, Y: i / BoardSize})
		out[dst.index()] = v
	}
	return out
}
