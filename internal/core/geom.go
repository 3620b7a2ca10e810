// Package core provides the screen buffer, palette, input actions and small
// geometry helpers shared by the 2048 front ends.
// It has no terminal dependencies; Bubble Tea lives in platform/tui.
package core

// Rect is a box of cells. X and Y are the top-left corner.
type Rect struct {
	X, Y int
	W, H int
}

func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right is the first column past the box.
func (r Rect) Right() int { return r.X + r.W }

// Bottom is the first row past the box.
func (r Rect) Bottom() int { return r.Y + r.H }

// Center returns the middle cell, rounding towards the top-left.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Clamp limits val to [lo, hi]. lo wins if the range is empty.
func Clamp(val, lo, hi int) int {
	return max(lo, min(val, hi))
}

func Min(a, b int) int { return min(a, b) }

func Max(a, b int) int { return max(a, b) }
